package employee

import (
	"context"
)

// StatusUpdate carries a partial update of an employee's tracking state.
// Nil Status leaves the status untouched; ClearCurrentLocation wins over
// CurrentLocation when both are set.
type StatusUpdate struct {
	Status               *Status
	CurrentLocation      *TrackedLocation
	ClearCurrentLocation bool
	DefaultLocation      *DefaultLocation
}

// EmployeeRepository is the employee directory contract.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)

	// UpdateTracking applies a partial tracking-state update and returns the
	// updated employee.
	UpdateTracking(ctx context.Context, id string, update StatusUpdate) (Employee, error)

	// SetDefaultLocation unconditionally overwrites the default work location.
	SetDefaultLocation(ctx context.Context, id string, loc DefaultLocation) (Employee, error)

	// ListCheckedIn returns all employees currently checked in with a known
	// live location.
	ListCheckedIn(ctx context.Context) ([]Employee, error)

	// ListIDsByRole returns employee IDs holding the given role.
	ListIDsByRole(ctx context.Context, role Role) ([]string, error)
}
