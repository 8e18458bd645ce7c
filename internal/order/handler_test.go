package order_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/worktrack/backend/internal"
	"github.com/worktrack/backend/internal/auth"
	"github.com/worktrack/backend/internal/order"
)

type stubOrderService struct {
	lastCaller  *auth.User
	lastStatus  string
	lastDTO     *order.OrderDTO
	response    *order.OrderResponse
	listReturn  []*order.OrderResponse
	returnError error
}

func (s *stubOrderService) CreateOrder(dto order.OrderDTO, caller *auth.User) (*order.OrderResponse, error) {
	s.lastDTO = &dto
	s.lastCaller = caller
	return s.response, s.returnError
}

func (s *stubOrderService) GetAllOrders(caller *auth.User) ([]*order.OrderResponse, error) {
	s.lastCaller = caller
	return s.listReturn, s.returnError
}

func (s *stubOrderService) GetOrdersByStatus(statusName string, caller *auth.User) ([]*order.OrderResponse, error) {
	s.lastStatus = statusName
	s.lastCaller = caller
	return s.listReturn, s.returnError
}

func (s *stubOrderService) GetOrderByID(id int64, caller *auth.User) (*order.OrderResponse, error) {
	s.lastCaller = caller
	return s.response, s.returnError
}

func (s *stubOrderService) UpdateOrderStatus(id int64, dto order.StatusChangeDTO, caller *auth.User) (*order.OrderResponse, error) {
	s.lastCaller = caller
	return s.response, s.returnError
}

func (s *stubOrderService) UpdateOrder(id int64, dto order.OrderDTO, caller *auth.User) (*order.OrderResponse, error) {
	s.lastDTO = &dto
	s.lastCaller = caller
	return s.response, s.returnError
}

func (s *stubOrderService) DeleteOrder(id int64, caller *auth.User) error {
	s.lastCaller = caller
	return s.returnError
}

var _ = Describe("Order Handler", func() {
	var (
		handler *order.Handler
		stub    *stubOrderService
		router  *chi.Mux
		admin   *auth.User
	)

	serve := func(req *http.Request, caller *auth.User) *httptest.ResponseRecorder {
		if caller != nil {
			req = req.WithContext(auth.ContextWithUser(req.Context(), caller))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		stub = &stubOrderService{
			response:   &order.OrderResponse{ID: 1, Product: "Bracket M-42", Status: "PENDING"},
			listReturn: []*order.OrderResponse{{ID: 1, Product: "Bracket M-42", Status: "PENDING"}},
		}
		handler = order.NewHandler(stub)
		admin = &auth.User{ID: 1, Name: "Ada Admin", Role: auth.RoleAdmin}

		router = chi.NewRouter()
		router.Route("/orders", func(r chi.Router) {
			r.Get("/", handler.GetAllOrders)
			r.Post("/", handler.CreateOrder)
			r.Get("/status/{status}", handler.GetOrdersByStatus)
			r.Get("/{id}", handler.GetOrder)
			r.Put("/{id}", handler.UpdateOrder)
			r.Patch("/{id}/status", handler.UpdateOrderStatus)
			r.Delete("/{id}", handler.DeleteOrder)
		})
	})

	Describe("GET /orders", func() {
		It("should return 401 without an authenticated caller", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/orders", nil), nil)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should list orders for the caller", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/orders", nil), admin)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(stub.lastCaller).To(Equal(admin))

			var response []order.OrderResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response).To(HaveLen(1))
		})

	})

	Describe("GET /orders/status/{status}", func() {
		It("should pass the status name through", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/orders/status/IN_PROGRESS", nil), admin)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(stub.lastStatus).To(Equal("IN_PROGRESS"))
		})

		It("should map an invalid status onto 400", func() {
			stub.returnError = internal.NewInvalidArgumentError("invalid status: DONE", internal.ErrCodeInvalidStatus)

			w := serve(httptest.NewRequest(http.MethodGet, "/orders/status/DONE", nil), admin)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /orders", func() {
		It("should return 201 with the created order", func() {
			body := strings.NewReader(`{"product":"Bracket M-42","priority":"HIGH","assigned_to_id":3,"deadline":"2026-10-01"}`)
			w := serve(httptest.NewRequest(http.MethodPost, "/orders", body), admin)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(stub.lastDTO.Product).To(Equal("Bracket M-42"))
		})

		It("should return 400 on a malformed body", func() {
			body := strings.NewReader(`{"product":`)
			w := serve(httptest.NewRequest(http.MethodPost, "/orders", body), admin)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should map service errors onto their status codes", func() {
			stub.returnError = internal.ErrUserNotFound

			body := strings.NewReader(`{"product":"Bracket M-42","priority":"HIGH","assigned_to_id":99,"deadline":"2026-10-01"}`)
			w := serve(httptest.NewRequest(http.MethodPost, "/orders", body), admin)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /orders/{id}", func() {
		It("should return 400 for a non-numeric id", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/orders/abc", nil), admin)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 403 when the service denies access", func() {
			stub.returnError = internal.ErrPermissionDenied

			w := serve(httptest.NewRequest(http.MethodGet, "/orders/1", nil), admin)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("PATCH /orders/{id}/status", func() {
		It("should return the updated order", func() {
			stub.response = &order.OrderResponse{ID: 1, Status: "IN_PROGRESS"}

			body := strings.NewReader(`{"new_status":"IN_PROGRESS","machine":"CNC-7"}`)
			w := serve(httptest.NewRequest(http.MethodPatch, "/orders/1/status", body), admin)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response order.OrderResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Status).To(Equal("IN_PROGRESS"))
		})
	})

	Describe("DELETE /orders/{id}", func() {
		It("should return 204 on success", func() {
			w := serve(httptest.NewRequest(http.MethodDelete, "/orders/1", nil), admin)
			Expect(w.Code).To(Equal(http.StatusNoContent))
		})

		It("should return 404 when the service reports a missing order", func() {
			stub.returnError = internal.ErrOrderNotFound

			w := serve(httptest.NewRequest(http.MethodDelete, "/orders/1", nil), admin)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
