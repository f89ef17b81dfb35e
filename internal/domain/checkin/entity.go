package checkin

import (
	"time"

	"github.com/stafftrack/hr-backend-go/internal/domain/employee"
)

// CheckIn is one attendance session. Location is the snapshot taken at
// check-in time and is never rewritten by later location updates.
type CheckIn struct {
	ID              string
	EmployeeID      string
	CheckInTime     time.Time
	CheckOutTime    *time.Time
	Location        employee.Location
	DurationMinutes *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOpen reports whether the session has not been checked out yet.
func (c CheckIn) IsOpen() bool {
	return c.CheckOutTime == nil
}
