package order

import (
	"time"

	"github.com/worktrack/backend/internal"
)

const deadlineLayout = "2006-01-02"

// OrderDTO is the payload for creating or updating an order. Status is never
// part of it: creation always starts at PENDING and later changes go through
// the dedicated status endpoint.
type OrderDTO struct {
	Product      string   `json:"product"`
	Description  string   `json:"description"`
	Priority     string   `json:"priority"`
	AssignedToID int64    `json:"assigned_to_id"`
	CustomerID   *int64   `json:"customer_id"`
	MaterialID   *int64   `json:"material_id"`
	Quantity     *float64 `json:"quantity"`
	Deadline     string   `json:"deadline"`
}

func (dto OrderDTO) Validate() error {
	if dto.Product == "" {
		return internal.NewValidationError("product is required", internal.ErrCodeValidationFailed)
	}
	if dto.AssignedToID <= 0 {
		return internal.NewValidationError("assigned_to_id is required", internal.ErrCodeValidationFailed)
	}
	if _, err := ParsePriority(dto.Priority); err != nil {
		return err
	}
	if dto.Deadline == "" {
		return internal.NewValidationError("deadline is required", internal.ErrCodeValidationFailed)
	}
	if _, err := time.Parse(deadlineLayout, dto.Deadline); err != nil {
		return internal.NewValidationError("deadline must be formatted as YYYY-MM-DD", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (dto OrderDTO) deadline() time.Time {
	t, _ := time.Parse(deadlineLayout, dto.Deadline)
	return t
}

// StatusChangeDTO is the payload for the status endpoint. Machine is only
// honored when the new status is IN_PROGRESS.
type StatusChangeDTO struct {
	NewStatus string  `json:"new_status"`
	Comment   *string `json:"comment"`
	Machine   string  `json:"machine"`
}

func (dto StatusChangeDTO) Validate() error {
	if dto.NewStatus == "" {
		return internal.NewValidationError("new_status is required", internal.ErrCodeValidationFailed)
	}
	_, err := ParseStatus(dto.NewStatus)
	return err
}

type StatusLogResponse struct {
	ID             int64    `json:"id"`
	PreviousStatus string   `json:"previous_status"`
	NewStatus      string   `json:"new_status"`
	Comment        *string  `json:"comment"`
	ChangedBy      *UserRef `json:"changed_by"`
	CreatedAt      string   `json:"created_at"`
}

type OrderResponse struct {
	ID          int64        `json:"id"`
	Product     string       `json:"product"`
	Description string       `json:"description"`
	Priority    string       `json:"priority"`
	Status      string       `json:"status"`
	AssignedTo  *UserRef     `json:"assigned_to"`
	CreatedBy   *UserRef     `json:"created_by"`
	Customer    *CustomerRef `json:"customer"`
	Material    *MaterialRef `json:"material"`
	Quantity    *float64     `json:"quantity"`
	Deadline    string       `json:"deadline"`
	Machine     *string      `json:"machine"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	StatusLogs []StatusLogResponse `json:"status_logs,omitempty"`
}

func toResponse(o *Order) *OrderResponse {
	return &OrderResponse{
		ID:          o.ID,
		Product:     o.Product,
		Description: o.Description,
		Priority:    string(o.Priority),
		Status:      string(o.Status),
		AssignedTo:  o.AssignedTo,
		CreatedBy:   o.CreatedBy,
		Customer:    o.Customer,
		Material:    o.Material,
		Quantity:    o.Quantity,
		Deadline:    o.Deadline.Format(deadlineLayout),
		Machine:     o.Machine,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toLogResponse(l *StatusLog) StatusLogResponse {
	return StatusLogResponse{
		ID:             l.ID,
		PreviousStatus: string(l.PreviousStatus),
		NewStatus:      string(l.NewStatus),
		Comment:        l.Comment,
		ChangedBy:      l.ChangedBy,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
}
