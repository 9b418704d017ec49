package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/handler/http/response"
)

// AdminOnly requires the admin role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claimRole(r) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireHR requires hr or admin.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := claimRole(r)
		if role != user.RoleHR && role != user.RoleAdmin {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func claimRole(r *http.Request) user.Role {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	roleStr, _ := claims["role"].(string)
	return user.Role(roleStr)
}
