package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/stafftrack/hr-backend-go/internal/domain/employee"
	"github.com/stafftrack/hr-backend-go/internal/handler/http/response"
)

// RequireHR requires the HR role
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "HR access required")
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok || employee.Role(roleStr) != employee.RoleHR {
			response.Forbidden(w, "HR access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
