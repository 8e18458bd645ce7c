package events

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeOrderStatusChanged = "order.status_changed"

type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID        int64  `json:"order_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	ChangedByID    int64  `json:"changed_by_id"`
}

func NewOrderStatusChangedEvent(orderID int64, previousStatus, newStatus string, changedByID int64) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id":        orderID,
				"previous_status": previousStatus,
				"new_status":      newStatus,
				"changed_by_id":   changedByID,
			},
		},
		OrderID:        orderID,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
		ChangedByID:    changedByID,
	}
}
