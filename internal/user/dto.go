package user

import (
	"strings"
	"time"

	"github.com/worktrack/backend/internal"
	"github.com/worktrack/backend/internal/auth"
)

// CreateUserDTO is the payload for creating a user account.
type CreateUserDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (dto CreateUserDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Email == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if dto.Password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeValidationFailed)
	}
	if _, err := ParseRole(dto.Role); err != nil {
		return err
	}
	return nil
}

// UpdateUserDTO is the payload for updating a user. Password is optional;
// when empty the stored hash is kept.
type UpdateUserDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Email == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if _, err := ParseRole(dto.Role); err != nil {
		return err
	}
	return nil
}

// ParseRole normalizes and validates a role string against the fixed enum.
func ParseRole(role string) (auth.Role, error) {
	parsed := auth.Role(strings.ToUpper(role))
	if !parsed.Valid() {
		return "", internal.NewInvalidArgumentError("invalid role: "+role, internal.ErrCodeInvalidRole)
	}
	return parsed, nil
}

// UserResponse is the management view of a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
