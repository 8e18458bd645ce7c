package material

import "time"

type Material struct {
	ID            int64     `gorm:"primaryKey"`
	Name          string    `gorm:"column:name;uniqueIndex;not null"`
	Description   string    `gorm:"column:description"`
	Unit          string    `gorm:"column:unit"`
	StockQuantity float64   `gorm:"column:stock_quantity"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (Material) TableName() string {
	return "materials"
}
