package order

import "time"

type Order struct {
	ID           int64     `gorm:"primaryKey"`
	Product      string    `gorm:"column:product;not null"`
	Description  string    `gorm:"column:description"`
	Priority     string    `gorm:"column:priority;not null"`
	Status       string    `gorm:"column:status;not null;default:PENDING"`
	AssignedToID int64     `gorm:"column:assigned_to_id;not null"`
	CreatedByID  int64     `gorm:"column:created_by_id;not null"`
	CustomerID   *int64    `gorm:"column:customer_id"`
	MaterialID   *int64    `gorm:"column:material_id"`
	Quantity     *float64  `gorm:"column:quantity"`
	Deadline     time.Time `gorm:"column:deadline;type:date"`
	Machine      *string   `gorm:"column:machine"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

type StatusLog struct {
	ID             int64     `gorm:"primaryKey"`
	OrderID        int64     `gorm:"column:order_id;not null"`
	PreviousStatus string    `gorm:"column:previous_status;not null"`
	NewStatus      string    `gorm:"column:new_status;not null"`
	Comment        *string   `gorm:"column:comment"`
	ChangedByID    int64     `gorm:"column:changed_by_id;not null"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (StatusLog) TableName() string {
	return "status_logs"
}
