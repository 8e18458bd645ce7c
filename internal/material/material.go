package material

import (
	"time"

	materialDatamodel "github.com/worktrack/backend/internal/core/datamodel/material"
)

type Material struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Unit          string    `json:"unit"`
	StockQuantity float64   `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BasicMaterial is the summary embedded in order responses.
type BasicMaterial struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

func (m *Material) ToBasic() BasicMaterial {
	return BasicMaterial{ID: m.ID, Name: m.Name, Unit: m.Unit}
}

func ToDataModel(m *Material) *materialDatamodel.Material {
	return &materialDatamodel.Material{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Unit:          m.Unit,
		StockQuantity: m.StockQuantity,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func FromDataModel(m *materialDatamodel.Material) *Material {
	return &Material{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Unit:          m.Unit,
		StockQuantity: m.StockQuantity,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func FromDataModelSlice(materials []*materialDatamodel.Material) []*Material {
	result := make([]*Material, len(materials))
	for i, m := range materials {
		result[i] = FromDataModel(m)
	}
	return result
}
