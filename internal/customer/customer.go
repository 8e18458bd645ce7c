package customer

import (
	"time"

	customerDatamodel "github.com/worktrack/backend/internal/core/datamodel/customer"
)

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BasicCustomer is the summary embedded in order responses.
type BasicCustomer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

func (c *Customer) ToBasic() BasicCustomer {
	return BasicCustomer{ID: c.ID, Name: c.Name, Company: c.Company}
}

func ToDataModel(c *Customer) *customerDatamodel.Customer {
	return &customerDatamodel.Customer{
		ID:        c.ID,
		Name:      c.Name,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(c *customerDatamodel.Customer) *Customer {
	return &Customer{
		ID:        c.ID,
		Name:      c.Name,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModelSlice(customers []*customerDatamodel.Customer) []*Customer {
	result := make([]*Customer, len(customers))
	for i, c := range customers {
		result[i] = FromDataModel(c)
	}
	return result
}
