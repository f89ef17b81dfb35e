package checkin

import (
	"context"
	"time"
)

// CheckInRepository is the check-in ledger contract. Records are created on
// check-in, mutated once on check-out, and never deleted here.
type CheckInRepository interface {
	// Create inserts a new open session. The store enforces at most one open
	// session per employee (partial unique index on employee_id where
	// check_out_time is null); a conflicting insert returns
	// ErrAlreadyCheckedIn.
	Create(ctx context.Context, record CheckIn) (CheckIn, error)

	// GetOpenByEmployee returns the employee's open session, or
	// ErrNoActiveCheckIn when none exists.
	GetOpenByEmployee(ctx context.Context, employeeID string) (CheckIn, error)

	// Close sets the check-out time and derived duration on an open session.
	Close(ctx context.Context, id string, checkOutTime time.Time, durationMinutes int) (CheckIn, error)

	// ListByEmployee returns the employee's sessions, optionally bounded by
	// check-in time, sorted check-in time descending.
	ListByEmployee(ctx context.Context, employeeID string, start, end *time.Time) ([]CheckIn, error)

	// CountSince counts sessions whose check-in time is at or after since.
	CountSince(ctx context.Context, employeeID string, since time.Time) (int, error)
}
