package employee

import (
	"context"
)

// EmployeeService defines business logic for employee profile and
// attendance aggregate operations.
type EmployeeService interface {
	// GetProfile returns the employee profile with the trailing-30-day
	// attendance percentage.
	GetProfile(ctx context.Context, employeeID string) (ProfileResponse, error)

	// AttendancePercentage computes check-in events over weekday count for
	// the trailing 30 calendar days.
	AttendancePercentage(ctx context.Context, employeeID string) (int, error)

	// ListCheckedIn returns all currently checked-in employees with their
	// live locations (HR view).
	ListCheckedIn(ctx context.Context) ([]CheckedInEmployeeResponse, error)
}
