package response

import (
	"errors"
	"net/http"

	"github.com/stafftrack/hr-backend-go/internal/domain/auth"
	"github.com/stafftrack/hr-backend-go/internal/domain/checkin"
	"github.com/stafftrack/hr-backend-go/internal/domain/employee"
	"github.com/stafftrack/hr-backend-go/internal/domain/notification"
	"github.com/stafftrack/hr-backend-go/internal/pkg/database"
	"github.com/stafftrack/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// Attendance domain errors
	case errors.Is(err, checkin.ErrAlreadyCheckedIn):
		Conflict(w, "Employee is already checked in")
	case errors.Is(err, checkin.ErrNoActiveCheckIn):
		Conflict(w, "No active check-in found")
	case errors.Is(err, checkin.ErrNotCheckedIn):
		Conflict(w, "Employee is not checked in")
	case errors.Is(err, checkin.ErrCheckInNotFound):
		NotFound(w, "Check-in record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Persistence failures
	case errors.Is(err, database.ErrStoreUnavailable):
		ServiceUnavailable(w, "Storage is temporarily unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
