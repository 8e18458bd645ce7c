package customer

import "github.com/worktrack/backend/internal"

// CustomerDTO is the payload for creating or updating a customer.
type CustomerDTO struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (dto CustomerDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
