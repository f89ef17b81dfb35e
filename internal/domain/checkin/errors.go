package checkin

import "errors"

// Check-in domain errors
var (
	ErrAlreadyCheckedIn = errors.New("employee is already checked in")
	ErrNoActiveCheckIn  = errors.New("no active check-in found")
	ErrNotCheckedIn     = errors.New("employee is not checked in")
	ErrCheckInNotFound  = errors.New("check-in record not found")
)
