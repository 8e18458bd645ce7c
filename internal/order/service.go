package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/worktrack/backend/internal"
	"github.com/worktrack/backend/internal/auth"
	"github.com/worktrack/backend/internal/core/events"
	"github.com/worktrack/backend/internal/customer"
	"github.com/worktrack/backend/internal/material"
	"github.com/worktrack/backend/internal/user"
)

// Repository defines the data access methods for orders and their status
// logs. UpdateStatusWithLog must persist both rows in a single transaction.
type Repository interface {
	GetAll() ([]*Order, error)
	GetByAssignee(userID int64) ([]*Order, error)
	GetByStatus(status Status) ([]*Order, error)
	GetByID(id int64) (*Order, error)
	Create(o *Order) error
	Update(o *Order) error
	UpdateStatusWithLog(o *Order, log *StatusLog) error
	Delete(id int64) error
	GetStatusLogs(orderID int64) ([]*StatusLog, error)
}

// The resolver interfaces are satisfied by the user, customer and material
// repositories; the order service only needs single-row lookups from them.
type UserResolver interface {
	GetByID(id int64) (*user.User, error)
}

type CustomerResolver interface {
	GetByID(id int64) (*customer.Customer, error)
}

type MaterialResolver interface {
	GetByID(id int64) (*material.Material, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      Repository
	users     UserResolver
	customers CustomerResolver
	materials MaterialResolver
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(repo Repository, users UserResolver, customers CustomerResolver, materials MaterialResolver, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		customers: customers,
		materials: materials,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateOrder always starts the order at PENDING and stamps the caller as
// creator, regardless of anything in the payload.
func (s *Service) CreateOrder(dto OrderDTO, caller *auth.User) (*OrderResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	assignee, err := s.resolveAssignee(dto.AssignedToID, true)
	if err != nil {
		return nil, err
	}
	cust, err := s.resolveCustomer(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	mat, err := s.resolveMaterial(dto.MaterialID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	o := &Order{
		Product:      dto.Product,
		Description:  dto.Description,
		Priority:     Priority(dto.Priority),
		Status:       StatusPending,
		AssignedToID: dto.AssignedToID,
		CreatedByID:  caller.ID,
		CustomerID:   dto.CustomerID,
		MaterialID:   dto.MaterialID,
		Quantity:     dto.Quantity,
		Deadline:     dto.deadline(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(o); err != nil {
		s.logger.Error("failed to create order", "error", err)
		return nil, err
	}

	o.AssignedTo = assignee
	o.CreatedBy = &UserRef{ID: caller.ID, Name: caller.Name, Email: caller.Email}
	o.Customer = cust
	o.Material = mat

	s.logger.Info("order created",
		"order_id", o.ID,
		"product", o.Product,
		"created_by", caller.ID,
		"assigned_to", o.AssignedToID,
	)
	return toResponse(o), nil
}

// GetAllOrders returns every order for admins and managers; operators only
// see orders assigned to them.
func (s *Service) GetAllOrders(caller *auth.User) ([]*OrderResponse, error) {
	var (
		orders []*Order
		err    error
	)
	if caller.IsOperator() {
		orders, err = s.repo.GetByAssignee(caller.ID)
	} else {
		orders, err = s.repo.GetAll()
	}
	if err != nil {
		s.logger.Error("failed to list orders", "error", err)
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toResponse(o)
	}
	return responses, nil
}

// GetOrdersByStatus filters by lifecycle state; operators are additionally
// restricted to their own assignments.
func (s *Service) GetOrdersByStatus(statusName string, caller *auth.User) ([]*OrderResponse, error) {
	status, err := ParseStatus(statusName)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.GetByStatus(status)
	if err != nil {
		s.logger.Error("failed to list orders by status", "error", err, "status", status)
		return nil, err
	}

	responses := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		if caller.IsOperator() && o.AssignedToID != caller.ID {
			continue
		}
		responses = append(responses, toResponse(o))
	}
	return responses, nil
}

// GetOrderByID returns the order with its full status history, newest entry
// first.
func (s *Service) GetOrderByID(id int64, caller *auth.User) (*OrderResponse, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrOrderNotFound
	}
	if caller.IsOperator() && o.AssignedToID != caller.ID {
		return nil, internal.ErrPermissionDenied
	}

	resp := toResponse(o)
	logs, err := s.repo.GetStatusLogs(o.ID)
	if err != nil {
		s.logger.Error("failed to load status logs", "error", err, "order_id", o.ID)
		return nil, err
	}
	resp.StatusLogs = make([]StatusLogResponse, len(logs))
	for i, l := range logs {
		resp.StatusLogs[i] = toLogResponse(l)
	}
	return resp, nil
}

// UpdateOrderStatus records the transition in the status log and applies it
// to the order in one transaction. The previous status is whatever the order
// held when it was read; identical old and new statuses still produce a log
// entry. The machine is stored only when the order moves into IN_PROGRESS
// and a non-empty machine was sent.
func (s *Service) UpdateOrderStatus(id int64, dto StatusChangeDTO, caller *auth.User) (*OrderResponse, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrOrderNotFound
	}
	if caller.IsOperator() && o.AssignedToID != caller.ID {
		return nil, internal.ErrPermissionDenied
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	newStatus := Status(dto.NewStatus)
	now := time.Now()
	log := &StatusLog{
		OrderID:        o.ID,
		PreviousStatus: o.Status,
		NewStatus:      newStatus,
		Comment:        dto.Comment,
		ChangedByID:    caller.ID,
		CreatedAt:      now,
	}

	o.Status = newStatus
	if newStatus == StatusInProgress && dto.Machine != "" {
		machine := dto.Machine
		o.Machine = &machine
	}
	o.UpdatedAt = now

	if err := s.repo.UpdateStatusWithLog(o, log); err != nil {
		s.logger.Error("failed to update order status", "error", err, "order_id", o.ID)
		return nil, err
	}

	s.logger.Info("order status changed",
		"order_id", o.ID,
		"previous_status", log.PreviousStatus,
		"new_status", log.NewStatus,
		"changed_by", caller.ID,
	)

	if s.publisher != nil {
		event := events.NewOrderStatusChangedEvent(o.ID, string(log.PreviousStatus), string(log.NewStatus), caller.ID)
		if err := s.publisher.Publish(context.Background(), event); err != nil {
			s.logger.Warn("failed to publish status change event", "error", err, "order_id", o.ID)
		}
	}

	return s.GetOrderByID(o.ID, caller)
}

// UpdateOrder replaces the editable fields. Omitted customer and material
// ids clear the references rather than keeping the old values.
func (s *Service) UpdateOrder(id int64, dto OrderDTO, caller *auth.User) (*OrderResponse, error) {
	if !caller.IsAdmin() && !caller.IsManager() {
		return nil, internal.ErrPermissionDenied
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	o, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrOrderNotFound
	}

	assignee, err := s.resolveAssignee(dto.AssignedToID, false)
	if err != nil {
		return nil, err
	}
	cust, err := s.resolveCustomer(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	mat, err := s.resolveMaterial(dto.MaterialID)
	if err != nil {
		return nil, err
	}

	o.Product = dto.Product
	o.Description = dto.Description
	o.Priority = Priority(dto.Priority)
	o.AssignedToID = dto.AssignedToID
	o.CustomerID = dto.CustomerID
	o.MaterialID = dto.MaterialID
	o.Quantity = dto.Quantity
	o.Deadline = dto.deadline()
	o.UpdatedAt = time.Now()

	if err := s.repo.Update(o); err != nil {
		s.logger.Error("failed to update order", "error", err, "order_id", o.ID)
		return nil, err
	}

	o.AssignedTo = assignee
	o.Customer = cust
	o.Material = mat

	return toResponse(o), nil
}

// DeleteOrder removes the order; its status logs go with it.
func (s *Service) DeleteOrder(id int64, caller *auth.User) error {
	if !caller.IsAdmin() {
		return internal.ErrPermissionDenied
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete order", "error", err, "order_id", id)
		return err
	}
	s.logger.Info("order deleted", "order_id", id)
	return nil
}

// resolveAssignee looks up the assignee. New orders require an active user;
// updates only need the id to resolve.
func (s *Service) resolveAssignee(id int64, mustBeActive bool) (*UserRef, error) {
	u, err := s.users.GetByID(id)
	if err != nil || (mustBeActive && !u.IsActiveUser()) {
		return nil, internal.ErrUserNotFound
	}
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

func (s *Service) resolveCustomer(id *int64) (*CustomerRef, error) {
	if id == nil {
		return nil, nil
	}
	c, err := s.customers.GetByID(*id)
	if err != nil {
		return nil, internal.ErrCustomerNotFound
	}
	return &CustomerRef{ID: c.ID, Name: c.Name, Company: c.Company}, nil
}

func (s *Service) resolveMaterial(id *int64) (*MaterialRef, error) {
	if id == nil {
		return nil, nil
	}
	m, err := s.materials.GetByID(*id)
	if err != nil {
		return nil, internal.ErrMaterialNotFound
	}
	return &MaterialRef{ID: m.ID, Name: m.Name, Unit: m.Unit}, nil
}
