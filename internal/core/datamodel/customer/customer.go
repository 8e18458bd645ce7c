package customer

import "time"

type Customer struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Company   string    `gorm:"column:company"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	Address   string    `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}
