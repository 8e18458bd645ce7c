package postgres

import (
	"gorm.io/gorm"

	"github.com/worktrack/backend/internal"
	materialDatamodel "github.com/worktrack/backend/internal/core/datamodel/material"
	"github.com/worktrack/backend/internal/material"
)

// MaterialRepository implements material.Repository using GORM
type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) material.Repository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) GetAll() ([]*material.Material, error) {
	var materials []*materialDatamodel.Material
	if err := r.db.Order("name ASC").Find(&materials).Error; err != nil {
		return nil, err
	}
	return material.FromDataModelSlice(materials), nil
}

func (r *MaterialRepository) GetByID(id int64) (*material.Material, error) {
	var m materialDatamodel.Material
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrMaterialNotFound
		}
		return nil, err
	}
	return material.FromDataModel(&m), nil
}

func (r *MaterialRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&materialDatamodel.Material{}).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (r *MaterialRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&materialDatamodel.Material{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *MaterialRepository) Create(m *material.Material) error {
	dm := material.ToDataModel(m)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	m.ID = dm.ID
	return nil
}

func (r *MaterialRepository) Update(m *material.Material) error {
	return r.db.Save(material.ToDataModel(m)).Error
}

func (r *MaterialRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&materialDatamodel.Material{}).Error
}
