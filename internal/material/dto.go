package material

import "github.com/worktrack/backend/internal"

// MaterialDTO is the payload for creating or updating a material.
type MaterialDTO struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Unit          string  `json:"unit"`
	StockQuantity float64 `json:"stock_quantity"`
}

func (dto MaterialDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.StockQuantity < 0 {
		return internal.NewValidationError("stock quantity cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}
