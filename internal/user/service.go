package user

import (
	"log/slog"
	"time"

	"github.com/worktrack/backend/internal"
	"github.com/worktrack/backend/internal/auth"
)

// Repository defines the data access methods for users.
type Repository interface {
	GetAll() ([]*User, error)
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetActiveByRole(role string) ([]*User, error)
	GetActive() ([]*User, error)
	Create(u *User) error
	Update(u *User) error
}

// PasswordHasher hashes plaintext passwords before they reach storage.
// Satisfied by the auth service.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) GetAllUsers() ([]UserResponse, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *Service) GetUserByID(id int64) (*UserResponse, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	resp := u.ToResponse()
	return &resp, nil
}

func (s *Service) CreateUser(dto CreateUserDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.ErrEmailTaken
	}

	role, err := ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	u := &User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         string(role),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "role", u.Role)

	resp := u.ToResponse()
	return &resp, nil
}

func (s *Service) UpdateUser(id int64, dto UpdateUserDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	if dto.Email != u.Email {
		if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
			return nil, internal.ErrEmailTaken
		}
	}

	role, err := ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	u.Name = dto.Name
	u.Email = dto.Email
	u.Role = string(role)

	// only replace the hash when a new password was supplied
	if dto.Password != "" {
		hash, err := s.hasher.HashPassword(dto.Password)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err)
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		u.PasswordHash = hash
	}

	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	resp := u.ToResponse()
	return &resp, nil
}

// DeleteUser deactivates the account. User rows are never hard-deleted
// because orders keep references to them.
func (s *Service) DeleteUser(id int64) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrUserNotFound
	}

	u.Deactivate()

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user deactivated", "user_id", id)
	return nil
}

// Operators returns active operator summaries for assignment pickers.
func (s *Service) Operators() ([]BasicUser, error) {
	users, err := s.repo.GetActiveByRole(string(auth.RoleOperator))
	if err != nil {
		s.logger.Error("failed to list operators", "error", err)
		return nil, err
	}

	basics := make([]BasicUser, len(users))
	for i, u := range users {
		basics[i] = u.ToBasic()
	}
	return basics, nil
}

// Basic returns summaries of every active user.
func (s *Service) Basic() ([]BasicUser, error) {
	users, err := s.repo.GetActive()
	if err != nil {
		s.logger.Error("failed to list active users", "error", err)
		return nil, err
	}

	basics := make([]BasicUser, len(users))
	for i, u := range users {
		basics[i] = u.ToBasic()
	}
	return basics, nil
}
