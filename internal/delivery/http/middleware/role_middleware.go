package middleware

import (
	"net/http"

	"medical-appointment-api/internal/authctx"
	"medical-appointment-api/internal/domain/entity"
	"medical-appointment-api/pkg/response"
)

// RequireRole checks that the authenticated user holds one of the allowed
// roles. The role is read from context, set by AuthMiddleware from the
// JWT claims.
func RequireRole(allowedRoles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := authctx.Role(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRole := range allowedRoles {
				if entity.UserRole(role) == allowedRole {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireStaff allows both staff and admin accounts
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleStaff)(next)
}
