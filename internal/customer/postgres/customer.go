package postgres

import (
	"gorm.io/gorm"

	"github.com/worktrack/backend/internal"
	"github.com/worktrack/backend/internal/customer"
	customerDatamodel "github.com/worktrack/backend/internal/core/datamodel/customer"
)

// CustomerRepository implements customer.Repository using GORM
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetAll() ([]*customer.Customer, error) {
	var customers []*customerDatamodel.Customer
	if err := r.db.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customer.FromDataModelSlice(customers), nil
}

func (r *CustomerRepository) GetByID(id int64) (*customer.Customer, error) {
	var c customerDatamodel.Customer
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer.FromDataModel(&c), nil
}

func (r *CustomerRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&customerDatamodel.Customer{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *CustomerRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&customerDatamodel.Customer{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *CustomerRepository) Create(c *customer.Customer) error {
	dm := customer.ToDataModel(c)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	c.ID = dm.ID
	return nil
}

func (r *CustomerRepository) Update(c *customer.Customer) error {
	return r.db.Save(customer.ToDataModel(c)).Error
}

func (r *CustomerRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&customerDatamodel.Customer{}).Error
}
