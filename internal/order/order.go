package order

import (
	"time"

	"github.com/worktrack/backend/internal"
	orderDatamodel "github.com/worktrack/backend/internal/core/datamodel/order"
)

// Status is the order lifecycle state. Any status may be set from any other
// status; the transition graph is deliberately unconstrained and every change
// is recorded in the status log instead.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusDelivered  Status = "DELIVERED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusDelivered:
		return Status(s), nil
	}
	return "", internal.NewInvalidArgumentError("invalid status: "+s, internal.ErrCodeInvalidStatus)
}

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

func ParsePriority(p string) (Priority, error) {
	switch Priority(p) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(p), nil
	}
	return "", internal.NewInvalidArgumentError("invalid priority: "+p, internal.ErrCodeInvalidPriority)
}

// UserRef, CustomerRef and MaterialRef are the flattened relation summaries
// materialized into order responses.
type UserRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CustomerRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

type MaterialRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

type Order struct {
	ID           int64
	Product      string
	Description  string
	Priority     Priority
	Status       Status
	AssignedToID int64
	CreatedByID  int64
	CustomerID   *int64
	MaterialID   *int64
	Quantity     *float64
	Deadline     time.Time
	Machine      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// relation summaries, resolved by the repository with explicit
	// follow-up fetches
	AssignedTo *UserRef
	CreatedBy  *UserRef
	Customer   *CustomerRef
	Material   *MaterialRef
}

// StatusLog is one immutable audit record of a status transition.
type StatusLog struct {
	ID             int64
	OrderID        int64
	PreviousStatus Status
	NewStatus      Status
	Comment        *string
	ChangedByID    int64
	CreatedAt      time.Time

	ChangedBy *UserRef
}

func ToDataModel(o *Order) *orderDatamodel.Order {
	return &orderDatamodel.Order{
		ID:           o.ID,
		Product:      o.Product,
		Description:  o.Description,
		Priority:     string(o.Priority),
		Status:       string(o.Status),
		AssignedToID: o.AssignedToID,
		CreatedByID:  o.CreatedByID,
		CustomerID:   o.CustomerID,
		MaterialID:   o.MaterialID,
		Quantity:     o.Quantity,
		Deadline:     o.Deadline,
		Machine:      o.Machine,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func FromDataModel(o *orderDatamodel.Order) *Order {
	return &Order{
		ID:           o.ID,
		Product:      o.Product,
		Description:  o.Description,
		Priority:     Priority(o.Priority),
		Status:       Status(o.Status),
		AssignedToID: o.AssignedToID,
		CreatedByID:  o.CreatedByID,
		CustomerID:   o.CustomerID,
		MaterialID:   o.MaterialID,
		Quantity:     o.Quantity,
		Deadline:     o.Deadline,
		Machine:      o.Machine,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func LogToDataModel(l *StatusLog) *orderDatamodel.StatusLog {
	return &orderDatamodel.StatusLog{
		ID:             l.ID,
		OrderID:        l.OrderID,
		PreviousStatus: string(l.PreviousStatus),
		NewStatus:      string(l.NewStatus),
		Comment:        l.Comment,
		ChangedByID:    l.ChangedByID,
		CreatedAt:      l.CreatedAt,
	}
}

func LogFromDataModel(l *orderDatamodel.StatusLog) *StatusLog {
	return &StatusLog{
		ID:             l.ID,
		OrderID:        l.OrderID,
		PreviousStatus: Status(l.PreviousStatus),
		NewStatus:      Status(l.NewStatus),
		Comment:        l.Comment,
		ChangedByID:    l.ChangedByID,
		CreatedAt:      l.CreatedAt,
	}
}
