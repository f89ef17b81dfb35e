package employee

import (
	"time"
)

// ========================================
// EMPLOYEE DTOs
// ========================================

type ProfileResponse struct {
	ID              string           `json:"id"`
	FullName        string           `json:"full_name"`
	Email           string           `json:"email"`
	Job             *string          `json:"job,omitempty"`
	Role            Role             `json:"role"`
	Status          Status           `json:"status"`
	CurrentLocation *TrackedLocation `json:"current_location,omitempty"`
	Attendance      int              `json:"attendance"`
	CreatedAt       time.Time        `json:"created_at"`
}

type CheckedInEmployeeResponse struct {
	ID         string          `json:"id"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Job        *string         `json:"job,omitempty"`
	Status     Status          `json:"status"`
	Location   TrackedLocation `json:"location"`
	LastUpdate time.Time       `json:"last_update"`
}

type AttendanceResponse struct {
	Percentage int `json:"percentage"`
}
