package checkin

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/hr-backend-go/internal/domain/checkin"
	"github.com/stafftrack/hr-backend-go/internal/domain/employee"
	"github.com/stafftrack/hr-backend-go/internal/domain/notification"
	"github.com/stafftrack/hr-backend-go/internal/pkg/database"
	"github.com/stafftrack/hr-backend-go/internal/pkg/geo"
	"github.com/stafftrack/hr-backend-go/internal/repository/postgresql"
)

// driftThresholdKm is the distance from the default work location beyond
// which a location change is reported.
const driftThresholdKm = 0.1

type CheckInServiceImpl struct {
	db *database.DB
	checkin.CheckInRepository
	employee.EmployeeRepository
	dispatcher notification.Dispatcher
}

func NewCheckInService(
	db *database.DB,
	checkInRepo checkin.CheckInRepository,
	employeeRepo employee.EmployeeRepository,
	dispatcher notification.Dispatcher,
) checkin.CheckInService {
	return &CheckInServiceImpl{
		db:                 db,
		CheckInRepository:  checkInRepo,
		EmployeeRepository: employeeRepo,
		dispatcher:         dispatcher,
	}
}

// runInTx executes fn inside a single database transaction; repositories pick
// the transaction up from the context. A nil db executes fn directly.
func (s *CheckInServiceImpl) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(postgresql.ContextWithTx(ctx, tx))
	})
}

// CheckIn implements checkin.CheckInService.
func (s *CheckInServiceImpl) CheckIn(ctx context.Context, employeeID string, req checkin.LocationRequest) (checkin.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return checkin.CheckInResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return checkin.CheckInResponse{}, err
	}

	now := time.Now()
	loc := req.Location()

	var record checkin.CheckIn
	err = s.runInTx(ctx, func(ctx context.Context) error {
		// The ledger's partial unique index rejects a second open session,
		// so concurrent check-ins cannot both succeed.
		record, err = s.CheckInRepository.Create(ctx, checkin.CheckIn{
			EmployeeID:  employeeID,
			CheckInTime: now,
			Location:    loc,
		})
		if err != nil {
			return err
		}

		status := employee.StatusCheckedIn
		update := employee.StatusUpdate{
			Status: &status,
			CurrentLocation: &employee.TrackedLocation{
				Location:  loc,
				UpdatedAt: now,
			},
		}

		// First-ever check-in bootstraps the default work location.
		if emp.DefaultLocation == nil {
			update.DefaultLocation = &employee.DefaultLocation{
				Location: loc,
				SetAt:    now,
			}
		}

		if _, err := s.EmployeeRepository.UpdateTracking(ctx, employeeID, update); err != nil {
			return fmt.Errorf("failed to update employee tracking state: %w", err)
		}
		return nil
	})
	if err != nil {
		return checkin.CheckInResponse{}, err
	}

	s.dispatcher.NotifyEmployeeAndHR(ctx, notification.EmployeeAndHRRequest{
		EmployeeID: employeeID,
		Type:       notification.TypeCheckIn,
		Title:      "Check In Successful",
		Message:    fmt.Sprintf("You have successfully checked in at %s", now.Format("15:04:05")),
		HRTitle:    "Employee Check In",
		HRMessage:  fmt.Sprintf("%s has checked in at %s", emp.FullName, now.Format("15:04:05")),
		Data:       map[string]interface{}{"check_in_id": record.ID},
	})

	return mapCheckInToResponse(record), nil
}

// CheckOut implements checkin.CheckInService.
func (s *CheckInServiceImpl) CheckOut(ctx context.Context, employeeID string) (checkin.CheckInResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return checkin.CheckInResponse{}, err
	}

	open, err := s.CheckInRepository.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return checkin.CheckInResponse{}, err
	}

	now := time.Now()
	durationMinutes := int(math.Round(now.Sub(open.CheckInTime).Minutes()))

	var closed checkin.CheckIn
	err = s.runInTx(ctx, func(ctx context.Context) error {
		closed, err = s.CheckInRepository.Close(ctx, open.ID, now, durationMinutes)
		if err != nil {
			return err
		}

		status := employee.StatusCheckedOut
		_, err = s.EmployeeRepository.UpdateTracking(ctx, employeeID, employee.StatusUpdate{
			Status:               &status,
			ClearCurrentLocation: true,
		})
		if err != nil {
			return fmt.Errorf("failed to update employee tracking state: %w", err)
		}
		return nil
	})
	if err != nil {
		return checkin.CheckInResponse{}, err
	}

	s.dispatcher.NotifyEmployeeAndHR(ctx, notification.EmployeeAndHRRequest{
		EmployeeID: employeeID,
		Type:       notification.TypeCheckOut,
		Title:      "Check Out Successful",
		Message:    fmt.Sprintf("You have successfully checked out at %s", now.Format("15:04:05")),
		HRTitle:    "Employee Check Out",
		HRMessage:  fmt.Sprintf("%s has checked out at %s", emp.FullName, now.Format("15:04:05")),
		Data:       map[string]interface{}{"check_in_id": closed.ID},
	})

	return mapCheckInToResponse(closed), nil
}

// UpdateLocation implements checkin.CheckInService.
//
// Only the employee's live location moves; the session's check-in snapshot is
// the historical record and stays untouched.
func (s *CheckInServiceImpl) UpdateLocation(ctx context.Context, employeeID string, req checkin.LocationRequest) (checkin.UpdateLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return checkin.UpdateLocationResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return checkin.UpdateLocationResponse{}, err
	}
	if emp.Status != employee.StatusCheckedIn {
		return checkin.UpdateLocationResponse{}, checkin.ErrNotCheckedIn
	}

	loc := req.Location()
	updated, err := s.EmployeeRepository.UpdateTracking(ctx, employeeID, employee.StatusUpdate{
		CurrentLocation: &employee.TrackedLocation{
			Location:  loc,
			UpdatedAt: time.Now(),
		},
	})
	if err != nil {
		return checkin.UpdateLocationResponse{}, fmt.Errorf("failed to update location: %w", err)
	}

	return checkin.UpdateLocationResponse{
		Location:        loc,
		DefaultLocation: updated.DefaultLocation,
	}, nil
}

// MonitorLocation implements checkin.CheckInService.
func (s *CheckInServiceImpl) MonitorLocation(ctx context.Context, employeeID string, req checkin.LocationRequest) (checkin.MonitorLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return checkin.MonitorLocationResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return checkin.MonitorLocationResponse{}, err
	}
	if emp.Status != employee.StatusCheckedIn {
		return checkin.MonitorLocationResponse{}, checkin.ErrNotCheckedIn
	}

	loc := req.Location()
	if _, err := s.EmployeeRepository.UpdateTracking(ctx, employeeID, employee.StatusUpdate{
		CurrentLocation: &employee.TrackedLocation{
			Location:  loc,
			UpdatedAt: time.Now(),
		},
	}); err != nil {
		return checkin.MonitorLocationResponse{}, fmt.Errorf("failed to update location: %w", err)
	}

	// Drift is only evaluated against a known default work location.
	if emp.DefaultLocation == nil {
		return checkin.MonitorLocationResponse{
			LocationChanged: false,
			CurrentLocation: loc,
		}, nil
	}

	distanceKm := geo.DistanceKm(
		emp.DefaultLocation.Latitude, emp.DefaultLocation.Longitude,
		loc.Latitude, loc.Longitude,
	)

	if distanceKm > driftThresholdKm {
		rounded := math.Round(distanceKm*100) / 100

		s.dispatcher.NotifyEmployeeAndHR(ctx, notification.EmployeeAndHRRequest{
			EmployeeID: employeeID,
			Type:       notification.TypeLocationDrift,
			Title:      "Location Change Detected",
			Message:    fmt.Sprintf("Your current location is %.2f km from your default work location", rounded),
			HRTitle:    "Employee Location Change",
			HRMessage:  fmt.Sprintf("%s has moved %.2f km from their default work location", emp.FullName, rounded),
			Data:       map[string]interface{}{"distance_km": rounded},
		})

		return checkin.MonitorLocationResponse{
			LocationChanged: true,
			CurrentLocation: loc,
			DefaultLocation: emp.DefaultLocation,
			Distance:        &rounded,
		}, nil
	}

	return checkin.MonitorLocationResponse{
		LocationChanged: false,
		CurrentLocation: loc,
	}, nil
}

// SetDefaultLocation implements checkin.CheckInService.
func (s *CheckInServiceImpl) SetDefaultLocation(ctx context.Context, employeeID string, req checkin.LocationRequest) (checkin.SetDefaultLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return checkin.SetDefaultLocationResponse{}, err
	}

	updated, err := s.EmployeeRepository.SetDefaultLocation(ctx, employeeID, employee.DefaultLocation{
		Location: req.Location(),
		SetAt:    time.Now(),
	})
	if err != nil {
		return checkin.SetDefaultLocationResponse{}, err
	}

	return checkin.SetDefaultLocationResponse{
		DefaultCheckInLocation: *updated.DefaultLocation,
	}, nil
}

// GetStatus implements checkin.CheckInService.
func (s *CheckInServiceImpl) GetStatus(ctx context.Context, employeeID string) (checkin.StatusResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return checkin.StatusResponse{}, err
	}

	resp := checkin.StatusResponse{
		Status:                 emp.Status,
		CurrentLocation:        emp.CurrentLocation,
		DefaultCheckInLocation: emp.DefaultLocation,
	}

	open, err := s.CheckInRepository.GetOpenByEmployee(ctx, employeeID)
	switch {
	case err == nil:
		resp.LastCheckIn = &open.CheckInTime
		resp.CheckInSessionLocation = &open.Location
	case errors.Is(err, checkin.ErrNoActiveCheckIn):
		// No open session: the session fields stay null.
	default:
		return checkin.StatusResponse{}, err
	}

	return resp, nil
}

// GetHistory implements checkin.CheckInService.
func (s *CheckInServiceImpl) GetHistory(ctx context.Context, employeeID string, filter checkin.HistoryFilter) ([]checkin.CheckInResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var start, end *time.Time
	if filter.StartDate != nil {
		t, _ := time.ParseInLocation("2006-01-02", *filter.StartDate, time.Local)
		start = &t
	}
	if filter.EndDate != nil {
		t, _ := time.ParseInLocation("2006-01-02", *filter.EndDate, time.Local)
		// End bound is inclusive of the whole end day.
		t = t.AddDate(0, 0, 1)
		end = &t
	}

	records, err := s.CheckInRepository.ListByEmployee(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]checkin.CheckInResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapCheckInToResponse(rec))
	}

	return responses, nil
}

// GetTodayDetails implements checkin.CheckInService.
func (s *CheckInServiceImpl) GetTodayDetails(ctx context.Context, employeeID string) (checkin.TodayDetailsResponse, error) {
	start, end := todayBounds(time.Now())

	records, err := s.CheckInRepository.ListByEmployee(ctx, employeeID, &start, &end)
	if err != nil {
		return checkin.TodayDetailsResponse{}, err
	}

	var totalHours float64
	responses := make([]checkin.CheckInResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapCheckInToResponse(rec))
		// Only closed sessions contribute to the daily total.
		if rec.CheckOutTime != nil && rec.DurationMinutes != nil {
			totalHours += float64(*rec.DurationMinutes) / 60.0
		}
	}

	status, err := s.GetStatus(ctx, employeeID)
	if err != nil {
		return checkin.TodayDetailsResponse{}, err
	}

	return checkin.TodayDetailsResponse{
		CheckIns:      responses,
		TotalHours:    math.Round(totalHours*100) / 100,
		CurrentStatus: status,
	}, nil
}

// GetTodayStats implements checkin.CheckInService.
//
// Hours are summed across all of today's sessions: closed ones from their
// stored duration, an open one live up to now.
func (s *CheckInServiceImpl) GetTodayStats(ctx context.Context, employeeID string) (checkin.TodayStatsResponse, error) {
	now := time.Now()
	start, end := todayBounds(now)

	records, err := s.CheckInRepository.ListByEmployee(ctx, employeeID, &start, &end)
	if err != nil {
		return checkin.TodayStatsResponse{}, err
	}

	if len(records) == 0 {
		return checkin.TodayStatsResponse{HoursToday: 0, IsCheckedIn: false}, nil
	}

	var hoursToday float64
	var isCheckedIn bool
	for _, rec := range records {
		switch {
		case rec.CheckOutTime != nil && rec.DurationMinutes != nil:
			hoursToday += float64(*rec.DurationMinutes) / 60.0
		case rec.IsOpen():
			isCheckedIn = true
			hoursToday += now.Sub(rec.CheckInTime).Hours()
		}
	}

	// Records are sorted check-in time descending; report the first
	// check-in of the day.
	checkInTime := records[len(records)-1].CheckInTime

	return checkin.TodayStatsResponse{
		HoursToday:  math.Round(hoursToday*10) / 10,
		IsCheckedIn: isCheckedIn,
		CheckInTime: &checkInTime,
	}, nil
}

// todayBounds returns the local [00:00, 24:00) window containing t.
func todayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// mapCheckInToResponse converts a CheckIn entity to CheckInResponse
func mapCheckInToResponse(rec checkin.CheckIn) checkin.CheckInResponse {
	return checkin.CheckInResponse{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		CheckInTime:     rec.CheckInTime,
		CheckOutTime:    rec.CheckOutTime,
		Location:        rec.Location,
		DurationMinutes: rec.DurationMinutes,
	}
}
