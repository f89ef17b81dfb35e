package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/stafftrack/hr-backend-go/internal/domain/auth"
	"github.com/stafftrack/hr-backend-go/internal/handler/http/response"
)

type contextKey string

// EmployeeIDKey carries the authenticated employee's ID through the request
// context after AuthRequired has run.
const EmployeeIDKey contextKey = "employee_id"

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			employeeID, ok := claims["employee_id"].(string)
			if !ok || employeeID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), EmployeeIDKey, employeeID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// EmployeeIDFromContext returns the authenticated employee ID, or "" when the
// request did not pass through AuthRequired.
func EmployeeIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(EmployeeIDKey).(string)
	return id
}
