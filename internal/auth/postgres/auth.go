package postgres

import (
	"database/sql"

	"gorm.io/gorm"

	"github.com/worktrack/backend/internal"
	"github.com/worktrack/backend/internal/auth"
)

// Repository implements auth.UserRepository over the users table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentialsByEmail(email string) (*auth.User, string, error) {
	var (
		user auth.User
		hash string
		role string
	)

	query := `SELECT id, name, email, role, password_hash FROM users WHERE email = ? AND active = true`
	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &role, &hash); err != nil {
		if err == sql.ErrNoRows {
			return nil, "", internal.ErrUserNotFound
		}
		return nil, "", err
	}

	user.Role = auth.Role(role)
	return &user, hash, nil
}

func (r *Repository) GetActiveByID(userID int64) (*auth.User, error) {
	var (
		user   auth.User
		role   string
		active bool
	)

	query := `SELECT id, name, email, role, active FROM users WHERE id = ?`
	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &role, &active); err != nil {
		if err == sql.ErrNoRows {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	if !active {
		return nil, internal.ErrUserInactive
	}

	user.Role = auth.Role(role)
	return &user, nil
}
