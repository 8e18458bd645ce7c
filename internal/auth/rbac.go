package auth

import (
	"log/slog"
	"net/http"
)

// RBACAuthorization provides chi route guards based on the caller's role.
// Ownership restrictions for operators are not handled here; those are
// explicit checks inside the order service.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

func (ra *RBACAuthorization) requireRoles(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
				"user_id", user.ID,
				"user_role", user.Role,
				"required_roles", roles)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}

// RequireAdmin allows ADMIN callers only.
func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.requireRoles(RoleAdmin)
}

// RequireManager allows ADMIN and MANAGER callers.
func (ra *RBACAuthorization) RequireManager() func(http.Handler) http.Handler {
	return ra.requireRoles(RoleAdmin, RoleManager)
}
