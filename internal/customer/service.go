package customer

import (
	"log/slog"
	"time"

	"github.com/worktrack/backend/internal"
)

// Repository defines the data access methods for customers.
type Repository interface {
	GetAll() ([]*Customer, error)
	GetByID(id int64) (*Customer, error)
	ExistsByEmail(email string) (bool, error)
	Create(c *Customer) error
	Update(c *Customer) error
	Delete(id int64) error
	Exists(id int64) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllCustomers() ([]*Customer, error) {
	customers, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list customers", "error", err)
		return nil, err
	}
	return customers, nil
}

func (s *Service) GetCustomerByID(id int64) (*Customer, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrCustomerNotFound
	}
	return c, nil
}

func (s *Service) CreateCustomer(dto CustomerDTO) (*Customer, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.Email != "" {
		taken, err := s.repo.ExistsByEmail(dto.Email)
		if err != nil {
			s.logger.Error("failed to check customer email", "error", err)
			return nil, err
		}
		if taken {
			return nil, internal.ErrEmailTaken
		}
	}

	now := time.Now()
	c := &Customer{
		Name:      dto.Name,
		Company:   dto.Company,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Address:   dto.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create customer", "error", err)
		return nil, err
	}

	s.logger.Info("customer created", "customer_id", c.ID)
	return c, nil
}

func (s *Service) UpdateCustomer(id int64, dto CustomerDTO) (*Customer, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrCustomerNotFound
	}

	// conflict check excludes the customer's own current email
	if dto.Email != "" && dto.Email != c.Email {
		taken, err := s.repo.ExistsByEmail(dto.Email)
		if err != nil {
			s.logger.Error("failed to check customer email", "error", err)
			return nil, err
		}
		if taken {
			return nil, internal.ErrEmailTaken
		}
	}

	c.Name = dto.Name
	c.Company = dto.Company
	c.Email = dto.Email
	c.Phone = dto.Phone
	c.Address = dto.Address
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update customer", "error", err, "customer_id", id)
		return nil, err
	}

	return c, nil
}

// DeleteCustomer hard-deletes the row. Orders referencing the customer keep
// working; the database clears their customer_id.
func (s *Service) DeleteCustomer(id int64) error {
	exists, err := s.repo.Exists(id)
	if err != nil {
		s.logger.Error("failed to check customer existence", "error", err, "customer_id", id)
		return err
	}
	if !exists {
		return internal.ErrCustomerNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete customer", "error", err, "customer_id", id)
		return err
	}

	s.logger.Info("customer deleted", "customer_id", id)
	return nil
}
