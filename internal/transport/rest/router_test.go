package rest_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/worktrack/backend/internal"
	"github.com/worktrack/backend/internal/auth"
	"github.com/worktrack/backend/internal/customer"
	"github.com/worktrack/backend/internal/material"
	"github.com/worktrack/backend/internal/order"
	"github.com/worktrack/backend/internal/transport/rest"
	"github.com/worktrack/backend/internal/user"
)

func TestRouter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Router Suite")
}

// stubAuthService maps bearer tokens straight to callers, bypassing JWT.
type stubAuthService struct {
	callers map[string]*auth.User
}

func (s *stubAuthService) Authenticate(dto auth.LoginDTO) (auth.LoginResponse, error) {
	return auth.LoginResponse{}, internal.ErrInvalidCredentials
}

func (s *stubAuthService) ValidateAccessToken(token string) (*auth.Claims, error) {
	caller, ok := s.callers[token]
	if !ok {
		return nil, internal.ErrInvalidToken
	}
	return &auth.Claims{UserID: caller.ID, Email: caller.Email, Name: caller.Name, Role: string(caller.Role)}, nil
}

func (s *stubAuthService) GetActiveUser(userID int64) (*auth.User, error) {
	for _, caller := range s.callers {
		if caller.ID == userID {
			return caller, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

type stubOrderService struct{}

func (s *stubOrderService) CreateOrder(dto order.OrderDTO, caller *auth.User) (*order.OrderResponse, error) {
	return &order.OrderResponse{ID: 1}, nil
}
func (s *stubOrderService) GetAllOrders(caller *auth.User) ([]*order.OrderResponse, error) {
	return nil, nil
}
func (s *stubOrderService) GetOrdersByStatus(statusName string, caller *auth.User) ([]*order.OrderResponse, error) {
	return nil, nil
}
func (s *stubOrderService) GetOrderByID(id int64, caller *auth.User) (*order.OrderResponse, error) {
	return &order.OrderResponse{ID: id}, nil
}
func (s *stubOrderService) UpdateOrderStatus(id int64, dto order.StatusChangeDTO, caller *auth.User) (*order.OrderResponse, error) {
	return &order.OrderResponse{ID: id}, nil
}
func (s *stubOrderService) UpdateOrder(id int64, dto order.OrderDTO, caller *auth.User) (*order.OrderResponse, error) {
	return &order.OrderResponse{ID: id}, nil
}
func (s *stubOrderService) DeleteOrder(id int64, caller *auth.User) error { return nil }

type stubCustomerService struct{}

func (s *stubCustomerService) GetAllCustomers() ([]*customer.Customer, error) { return nil, nil }
func (s *stubCustomerService) GetCustomerByID(id int64) (*customer.Customer, error) {
	return &customer.Customer{ID: id}, nil
}
func (s *stubCustomerService) CreateCustomer(dto customer.CustomerDTO) (*customer.Customer, error) {
	return &customer.Customer{ID: 1, Name: dto.Name}, nil
}
func (s *stubCustomerService) UpdateCustomer(id int64, dto customer.CustomerDTO) (*customer.Customer, error) {
	return &customer.Customer{ID: id, Name: dto.Name}, nil
}
func (s *stubCustomerService) DeleteCustomer(id int64) error { return nil }

type stubMaterialService struct{}

func (s *stubMaterialService) GetAllMaterials() ([]*material.Material, error) { return nil, nil }
func (s *stubMaterialService) GetMaterialByID(id int64) (*material.Material, error) {
	return &material.Material{ID: id}, nil
}
func (s *stubMaterialService) CreateMaterial(dto material.MaterialDTO) (*material.Material, error) {
	return &material.Material{ID: 1, Name: dto.Name}, nil
}
func (s *stubMaterialService) UpdateMaterial(id int64, dto material.MaterialDTO) (*material.Material, error) {
	return &material.Material{ID: id, Name: dto.Name}, nil
}
func (s *stubMaterialService) DeleteMaterial(id int64) error { return nil }

type stubUserService struct{}

func (s *stubUserService) GetAllUsers() ([]user.UserResponse, error) { return nil, nil }
func (s *stubUserService) GetUserByID(id int64) (*user.UserResponse, error) {
	return &user.UserResponse{ID: id}, nil
}
func (s *stubUserService) CreateUser(dto user.CreateUserDTO) (*user.UserResponse, error) {
	return &user.UserResponse{ID: 1}, nil
}
func (s *stubUserService) UpdateUser(id int64, dto user.UpdateUserDTO) (*user.UserResponse, error) {
	return &user.UserResponse{ID: id}, nil
}
func (s *stubUserService) DeleteUser(id int64) error            { return nil }
func (s *stubUserService) Operators() ([]user.BasicUser, error) { return nil, nil }
func (s *stubUserService) Basic() ([]user.BasicUser, error)     { return nil, nil }

var _ = Describe("Route guards", func() {
	var router *chi.Mux

	send := func(method, path, token, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		authSvc := &stubAuthService{callers: map[string]*auth.User{
			"admin-token":    {ID: 1, Name: "Ada Admin", Email: "admin@worktrack.local", Role: auth.RoleAdmin},
			"manager-token":  {ID: 2, Name: "Mara Manager", Email: "manager@worktrack.local", Role: auth.RoleManager},
			"operator-token": {ID: 3, Name: "Otto Operator", Email: "operator@worktrack.local", Role: auth.RoleOperator},
		}}

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, nil, "*",
			auth.NewHandler(authSvc),
			order.NewHandler(&stubOrderService{}),
			user.NewHandler(&stubUserService{}),
			customer.NewHandler(&stubCustomerService{}),
			material.NewHandler(&stubMaterialService{}),
			logger)
	})

	It("should reject requests without a token", func() {
		Expect(send(http.MethodGet, "/api/orders", "", "").Code).To(Equal(http.StatusUnauthorized))
	})

	Describe("customer mutations", func() {
		const body = `{"name":"Jan Kowalski"}`

		It("should be admin only", func() {
			Expect(send(http.MethodPost, "/api/customers", "admin-token", body).Code).To(Equal(http.StatusCreated))
			Expect(send(http.MethodPost, "/api/customers", "manager-token", body).Code).To(Equal(http.StatusForbidden))
			Expect(send(http.MethodPost, "/api/customers", "operator-token", body).Code).To(Equal(http.StatusForbidden))

			Expect(send(http.MethodPut, "/api/customers/1", "manager-token", body).Code).To(Equal(http.StatusForbidden))
			Expect(send(http.MethodDelete, "/api/customers/1", "manager-token", "").Code).To(Equal(http.StatusForbidden))
		})

		It("should leave reads open to every role", func() {
			Expect(send(http.MethodGet, "/api/customers", "operator-token", "").Code).To(Equal(http.StatusOK))
			Expect(send(http.MethodGet, "/api/customers/1", "manager-token", "").Code).To(Equal(http.StatusOK))
		})
	})

	Describe("material mutations", func() {
		const body = `{"name":"Steel sheet 2mm","unit":"kg"}`

		It("should be admin only", func() {
			Expect(send(http.MethodPost, "/api/materials", "admin-token", body).Code).To(Equal(http.StatusCreated))
			Expect(send(http.MethodPost, "/api/materials", "manager-token", body).Code).To(Equal(http.StatusForbidden))
			Expect(send(http.MethodPut, "/api/materials/1", "manager-token", body).Code).To(Equal(http.StatusForbidden))
			Expect(send(http.MethodDelete, "/api/materials/1", "operator-token", "").Code).To(Equal(http.StatusForbidden))
		})

		It("should leave reads open to every role", func() {
			Expect(send(http.MethodGet, "/api/materials", "operator-token", "").Code).To(Equal(http.StatusOK))
		})
	})

	Describe("order mutations", func() {
		It("should gate create and delete to admins", func() {
			Expect(send(http.MethodDelete, "/api/orders/1", "manager-token", "").Code).To(Equal(http.StatusForbidden))
			Expect(send(http.MethodDelete, "/api/orders/1", "admin-token", "").Code).To(Equal(http.StatusNoContent))
		})

		It("should let managers update orders", func() {
			Expect(send(http.MethodPut, "/api/orders/1", "manager-token", `{}`).Code).To(Equal(http.StatusOK))
			Expect(send(http.MethodPut, "/api/orders/1", "operator-token", `{}`).Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("user mutations", func() {
		It("should be admin only", func() {
			Expect(send(http.MethodGet, "/api/users", "manager-token", "").Code).To(Equal(http.StatusForbidden))
			Expect(send(http.MethodGet, "/api/users", "admin-token", "").Code).To(Equal(http.StatusOK))
			Expect(send(http.MethodDelete, "/api/users/3", "operator-token", "").Code).To(Equal(http.StatusForbidden))
		})
	})
})
