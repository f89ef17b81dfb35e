package checkin

import (
	"context"
)

// CheckInService defines business logic for attendance and location tracking.
type CheckInService interface {
	// CheckIn opens a new attendance session at the given location. Fails
	// with ErrAlreadyCheckedIn when an open session exists.
	CheckIn(ctx context.Context, employeeID string, req LocationRequest) (CheckInResponse, error)

	// CheckOut closes the open session. Fails with ErrNoActiveCheckIn when
	// none exists.
	CheckOut(ctx context.Context, employeeID string) (CheckInResponse, error)

	// UpdateLocation overwrites the employee's live location. The session's
	// check-in snapshot is left untouched.
	UpdateLocation(ctx context.Context, employeeID string, req LocationRequest) (UpdateLocationResponse, error)

	// MonitorLocation updates the live location and evaluates drift from the
	// default work location.
	MonitorLocation(ctx context.Context, employeeID string, req LocationRequest) (MonitorLocationResponse, error)

	// SetDefaultLocation overwrites the employee's default work location
	// (HR override, no precondition on status).
	SetDefaultLocation(ctx context.Context, employeeID string, req LocationRequest) (SetDefaultLocationResponse, error)

	// GetStatus returns the current tracking snapshot.
	GetStatus(ctx context.Context, employeeID string) (StatusResponse, error)

	// GetHistory lists sessions, optionally bounded by check-in date.
	GetHistory(ctx context.Context, employeeID string, filter HistoryFilter) ([]CheckInResponse, error)

	// GetTodayDetails lists today's sessions with the summed hours of the
	// closed ones.
	GetTodayDetails(ctx context.Context, employeeID string) (TodayDetailsResponse, error)

	// GetTodayStats returns hours worked today, counting an open session up
	// to now.
	GetTodayStats(ctx context.Context, employeeID string) (TodayStatsResponse, error)
}
