package postgres

import (
	"gorm.io/gorm"

	"github.com/worktrack/backend/internal"
	userDatamodel "github.com/worktrack/backend/internal/core/datamodel/user"
	"github.com/worktrack/backend/internal/user"
)

// UserRepository implements user.Repository using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var users []*userDatamodel.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(users), nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&u), nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&u), nil
}

func (r *UserRepository) GetActiveByRole(role string) ([]*user.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("role = ? AND active = true", role).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(users), nil
}

func (r *UserRepository) GetActive() ([]*user.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("active = true").
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(users), nil
}

func (r *UserRepository) Create(u *user.User) error {
	dm := user.ToDataModel(u)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	u.ID = dm.ID
	return nil
}

func (r *UserRepository) Update(u *user.User) error {
	return r.db.Save(user.ToDataModel(u)).Error
}
