package employee

import (
	"time"
)

type Employee struct {
	ID              string
	FullName        string
	Email           string
	PasswordHash    string
	Job             *string
	Role            Role
	Status          Status
	CurrentLocation *TrackedLocation
	DefaultLocation *DefaultLocation
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Role string

const (
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

type Status string

const (
	StatusCheckedIn  Status = "checkedIn"
	StatusCheckedOut Status = "checkedOut"
	StatusOnLeave    Status = "onLeave"
)

// Location is a raw GPS coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TrackedLocation is the employee's live location while checked in.
type TrackedLocation struct {
	Location
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultLocation is the employee's baseline work site. It is bootstrapped
// from the first-ever check-in and may be overridden by HR at any time.
// A nil DefaultLocation disables drift monitoring.
type DefaultLocation struct {
	Location
	SetAt time.Time `json:"set_at"`
}
