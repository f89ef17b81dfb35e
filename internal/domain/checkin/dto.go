package checkin

import (
	"time"

	"github.com/stafftrack/hr-backend-go/internal/domain/employee"
	"github.com/stafftrack/hr-backend-go/internal/pkg/validator"
)

// ========================================
// CHECK-IN DTOs
// ========================================

type LocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *LocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *LocationRequest) Location() employee.Location {
	return employee.Location{Latitude: r.Latitude, Longitude: r.Longitude}
}

type HistoryFilter struct {
	StartDate *string
	EndDate   *string
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && !validator.IsValidDate(*f.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if f.EndDate != nil && !validator.IsValidDate(*f.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckInResponse struct {
	ID              string            `json:"id"`
	EmployeeID      string            `json:"employee_id"`
	CheckInTime     time.Time         `json:"check_in_time"`
	CheckOutTime    *time.Time        `json:"check_out_time,omitempty"`
	Location        employee.Location `json:"location"`
	DurationMinutes *int              `json:"duration_minutes,omitempty"`
}

type StatusResponse struct {
	Status                 employee.Status           `json:"status"`
	CurrentLocation        *employee.TrackedLocation `json:"current_location,omitempty"`
	DefaultCheckInLocation *employee.DefaultLocation `json:"default_check_in_location,omitempty"`
	LastCheckIn            *time.Time                `json:"last_check_in,omitempty"`
	CheckInSessionLocation *employee.Location        `json:"check_in_session_location,omitempty"`
}

type UpdateLocationResponse struct {
	Location        employee.Location         `json:"location"`
	DefaultLocation *employee.DefaultLocation `json:"default_location,omitempty"`
}

type MonitorLocationResponse struct {
	LocationChanged bool                      `json:"location_changed"`
	CurrentLocation employee.Location         `json:"current_location"`
	DefaultLocation *employee.DefaultLocation `json:"default_location,omitempty"`
	Distance        *float64                  `json:"distance,omitempty"`
}

type TodayDetailsResponse struct {
	CheckIns      []CheckInResponse `json:"checkins"`
	TotalHours    float64           `json:"total_hours"`
	CurrentStatus StatusResponse    `json:"current_status"`
}

type TodayStatsResponse struct {
	HoursToday  float64    `json:"hours_today"`
	IsCheckedIn bool       `json:"is_checked_in"`
	CheckInTime *time.Time `json:"check_in_time,omitempty"`
}

type SetDefaultLocationResponse struct {
	DefaultCheckInLocation employee.DefaultLocation `json:"default_check_in_location"`
}
