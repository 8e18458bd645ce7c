package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the coarse access level attached to every user. Order visibility
// restrictions apply to RoleOperator only; RoleAdmin and RoleManager differ
// in which mutations the route guards allow.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleOperator Role = "OPERATOR"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleOperator:
		return true
	}
	return false
}

// User is the caller identity resolved from a bearer token. Services receive
// it as an explicit argument; it is never read from ambient state.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) IsOperator() bool {
	return u.Role == RoleOperator
}

// Claims represents JWT token claims.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates bearer tokens.
type TokenGenerator interface {
	GenerateToken(user *User) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type ctxKey string

const contextUserKey ctxKey = "currentUser"

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextUserKey).(*User)
	return u, ok
}
