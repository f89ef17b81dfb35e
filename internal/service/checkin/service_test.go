package checkin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/hr-backend-go/internal/domain/checkin"
	"github.com/stafftrack/hr-backend-go/internal/domain/employee"
	"github.com/stafftrack/hr-backend-go/internal/domain/notification"
)

// ===== IN-MEMORY FAKES =====

type fakeCheckInRepo struct {
	mu      sync.Mutex
	nextID  int
	records []checkin.CheckIn
}

func (f *fakeCheckInRepo) Create(_ context.Context, record checkin.CheckIn) (checkin.CheckIn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.EmployeeID == record.EmployeeID && rec.CheckOutTime == nil {
			return checkin.CheckIn{}, checkin.ErrAlreadyCheckedIn
		}
	}
	f.nextID++
	record.ID = time.Now().Format("20060102") + "-" + string(rune('a'+f.nextID))
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeCheckInRepo) GetOpenByEmployee(_ context.Context, employeeID string) (checkin.CheckIn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.CheckOutTime == nil {
			return rec, nil
		}
	}
	return checkin.CheckIn{}, checkin.ErrNoActiveCheckIn
}

func (f *fakeCheckInRepo) Close(_ context.Context, id string, checkOutTime time.Time, durationMinutes int) (checkin.CheckIn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, rec := range f.records {
		if rec.ID == id && rec.CheckOutTime == nil {
			f.records[i].CheckOutTime = &checkOutTime
			f.records[i].DurationMinutes = &durationMinutes
			return f.records[i], nil
		}
	}
	return checkin.CheckIn{}, checkin.ErrNoActiveCheckIn
}

func (f *fakeCheckInRepo) ListByEmployee(_ context.Context, employeeID string, start, end *time.Time) ([]checkin.CheckIn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []checkin.CheckIn
	for _, rec := range f.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if start != nil && rec.CheckInTime.Before(*start) {
			continue
		}
		if end != nil && !rec.CheckInTime.Before(*end) {
			continue
		}
		out = append(out, rec)
	}
	// check-in time descending
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CheckInTime.After(out[i].CheckInTime) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeCheckInRepo) CountSince(_ context.Context, employeeID string, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.CheckInTime.Before(since) {
			count++
		}
	}
	return count, nil
}

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, emp := range f.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) UpdateTracking(_ context.Context, id string, update employee.StatusUpdate) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if update.Status != nil {
		emp.Status = *update.Status
	}
	switch {
	case update.ClearCurrentLocation:
		emp.CurrentLocation = nil
	case update.CurrentLocation != nil:
		emp.CurrentLocation = update.CurrentLocation
	}
	if update.DefaultLocation != nil {
		emp.DefaultLocation = update.DefaultLocation
	}
	f.employees[id] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) SetDefaultLocation(_ context.Context, id string, loc employee.DefaultLocation) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	emp.DefaultLocation = &loc
	f.employees[id] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) ListCheckedIn(_ context.Context) ([]employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.Status == employee.StatusCheckedIn && emp.CurrentLocation != nil {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListIDsByRole(_ context.Context, role employee.Role) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id, emp := range f.employees {
		if emp.Role == role {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []notification.EmployeeAndHRRequest
}

func (f *fakeDispatcher) NotifyEmployeeAndHR(_ context.Context, req notification.EmployeeAndHRRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
}

func (f *fakeDispatcher) last() *notification.EmployeeAndHRRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return nil
	}
	return &f.sent[len(f.sent)-1]
}

// ===== TEST SETUP =====

const testEmployeeID = "emp-1"

func newTestService(t *testing.T) (checkin.CheckInService, *fakeCheckInRepo, *fakeEmployeeRepo, *fakeDispatcher) {
	t.Helper()
	checkInRepo := &fakeCheckInRepo{}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {
			ID:       testEmployeeID,
			FullName: "Dana Haddad",
			Email:    "dana@example.com",
			Role:     employee.RoleEmployee,
			Status:   employee.StatusCheckedOut,
		},
	}}
	dispatcher := &fakeDispatcher{}
	svc := NewCheckInService(nil, checkInRepo, employeeRepo, dispatcher)
	return svc, checkInRepo, employeeRepo, dispatcher
}

var beirut = checkin.LocationRequest{Latitude: 33.8938, Longitude: 35.5018}

// ===== CHECK-IN / CHECK-OUT =====

func TestCheckIn_Success(t *testing.T) {
	svc, _, employeeRepo, dispatcher := newTestService(t)
	ctx := context.Background()

	resp, err := svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)
	assert.Equal(t, testEmployeeID, resp.EmployeeID)
	assert.Nil(t, resp.CheckOutTime)
	assert.Equal(t, beirut.Latitude, resp.Location.Latitude)

	emp, err := employeeRepo.GetByID(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusCheckedIn, emp.Status)
	require.NotNil(t, emp.CurrentLocation)
	assert.Equal(t, beirut.Latitude, emp.CurrentLocation.Latitude)

	sent := dispatcher.last()
	require.NotNil(t, sent)
	assert.Equal(t, notification.TypeCheckIn, sent.Type)
}

func TestCheckIn_FirstTimeBootstrapsDefaultLocation(t *testing.T) {
	svc, _, employeeRepo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)

	emp, err := employeeRepo.GetByID(ctx, testEmployeeID)
	require.NoError(t, err)
	require.NotNil(t, emp.DefaultLocation)
	require.NotNil(t, emp.CurrentLocation)
	assert.Equal(t, emp.CurrentLocation.Location, emp.DefaultLocation.Location)
}

func TestCheckIn_DoesNotOverwriteExistingDefaultLocation(t *testing.T) {
	svc, _, employeeRepo, _ := newTestService(t)
	ctx := context.Background()

	existing := employee.DefaultLocation{
		Location: employee.Location{Latitude: 40.0, Longitude: -74.0},
		SetAt:    time.Now().Add(-24 * time.Hour),
	}
	_, err := employeeRepo.SetDefaultLocation(ctx, testEmployeeID, existing)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)

	emp, err := employeeRepo.GetByID(ctx, testEmployeeID)
	require.NoError(t, err)
	require.NotNil(t, emp.DefaultLocation)
	assert.Equal(t, existing.Location, emp.DefaultLocation.Location)
}

func TestCheckIn_TwiceFails(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, testEmployeeID, beirut)
	assert.ErrorIs(t, err, checkin.ErrAlreadyCheckedIn)
}

func TestCheckIn_ConcurrentOnlyOneWins(t *testing.T) {
	svc, checkInRepo, _, _ := newTestService(t)
	ctx := context.Background()

	const racers = 16
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(ctx, testEmployeeID, beirut)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, checkin.ErrAlreadyCheckedIn):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, racers-1, rejected)

	open, err := checkInRepo.GetOpenByEmployee(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Nil(t, open.CheckOutTime)
}

func TestCheckIn_UnknownEmployee(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.CheckIn(context.Background(), "missing", beirut)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCheckIn_InvalidCoordinates(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.CheckIn(context.Background(), testEmployeeID, checkin.LocationRequest{Latitude: 120, Longitude: 35})
	assert.Error(t, err)
}

func TestCheckOut_WithoutCheckInFails(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.CheckOut(context.Background(), testEmployeeID)
	assert.ErrorIs(t, err, checkin.ErrNoActiveCheckIn)
}

func TestCheckOut_RoundTrip(t *testing.T) {
	svc, _, employeeRepo, dispatcher := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)

	resp, err := svc.CheckOut(ctx, testEmployeeID)
	require.NoError(t, err)
	require.NotNil(t, resp.CheckOutTime)
	require.NotNil(t, resp.DurationMinutes)
	// Immediate checkout rounds to zero minutes.
	assert.Equal(t, 0, *resp.DurationMinutes)

	emp, err := employeeRepo.GetByID(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusCheckedOut, emp.Status)
	assert.Nil(t, emp.CurrentLocation)

	sent := dispatcher.last()
	require.NotNil(t, sent)
	assert.Equal(t, notification.TypeCheckOut, sent.Type)
}

// ===== LOCATION UPDATES & DRIFT =====

func TestUpdateLocation_NotCheckedInFails(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.UpdateLocation(context.Background(), testEmployeeID, beirut)
	assert.ErrorIs(t, err, checkin.ErrNotCheckedIn)
}

func TestUpdateLocation_LeavesSessionSnapshotUntouched(t *testing.T) {
	svc, checkInRepo, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)

	moved := checkin.LocationRequest{Latitude: 33.90, Longitude: 35.52}
	resp, err := svc.UpdateLocation(ctx, testEmployeeID, moved)
	require.NoError(t, err)
	assert.Equal(t, moved.Latitude, resp.Location.Latitude)

	open, err := checkInRepo.GetOpenByEmployee(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, beirut.Latitude, open.Location.Latitude)
	assert.Equal(t, beirut.Longitude, open.Location.Longitude)
}

func TestMonitorLocation_DriftBeyondThreshold(t *testing.T) {
	svc, _, _, dispatcher := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)

	// ~0.93 km east of the bootstrapped default location.
	moved := checkin.LocationRequest{Latitude: 33.8938, Longitude: 35.5118}
	resp, err := svc.MonitorLocation(ctx, testEmployeeID, moved)
	require.NoError(t, err)

	assert.True(t, resp.LocationChanged)
	require.NotNil(t, resp.Distance)
	// Raw distance is 0.9230 km, rounded to two decimals in the payload.
	assert.InDelta(t, 0.92, *resp.Distance, 0.001)
	require.NotNil(t, resp.DefaultLocation)

	sent := dispatcher.last()
	require.NotNil(t, sent)
	assert.Equal(t, notification.TypeLocationDrift, sent.Type)
	assert.InDelta(t, 0.92, sent.Data["distance_km"].(float64), 0.001)
}

func TestMonitorLocation_BelowThreshold(t *testing.T) {
	svc, _, _, dispatcher := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)
	sentBefore := len(dispatcher.sent)

	// ~0.05 km east, below the 100m threshold.
	near := checkin.LocationRequest{Latitude: 33.8938, Longitude: 35.5023}
	resp, err := svc.MonitorLocation(ctx, testEmployeeID, near)
	require.NoError(t, err)

	assert.False(t, resp.LocationChanged)
	assert.Nil(t, resp.Distance)
	assert.Len(t, dispatcher.sent, sentBefore)
}

func TestMonitorLocation_NoDefaultLocationIsSilent(t *testing.T) {
	svc, _, employeeRepo, dispatcher := newTestService(t)
	ctx := context.Background()

	// Checked in but without any default location on record.
	status := employee.StatusCheckedIn
	_, err := employeeRepo.UpdateTracking(ctx, testEmployeeID, employee.StatusUpdate{
		Status: &status,
		CurrentLocation: &employee.TrackedLocation{
			Location:  beirut.Location(),
			UpdatedAt: time.Now(),
		},
	})
	require.NoError(t, err)

	resp, err := svc.MonitorLocation(ctx, testEmployeeID, checkin.LocationRequest{Latitude: 34.5, Longitude: 36.0})
	require.NoError(t, err)
	assert.False(t, resp.LocationChanged)
	assert.Nil(t, dispatcher.last())
}

func TestSetDefaultLocation_OverridesUnconditionally(t *testing.T) {
	svc, _, employeeRepo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)

	override := checkin.LocationRequest{Latitude: 34.0, Longitude: 36.0}
	resp, err := svc.SetDefaultLocation(ctx, testEmployeeID, override)
	require.NoError(t, err)
	assert.Equal(t, override.Latitude, resp.DefaultCheckInLocation.Latitude)

	emp, err := employeeRepo.GetByID(ctx, testEmployeeID)
	require.NoError(t, err)
	require.NotNil(t, emp.DefaultLocation)
	assert.Equal(t, override.Longitude, emp.DefaultLocation.Longitude)
}

// ===== STATUS, HISTORY & AGGREGATES =====

func TestGetStatus_NoOpenSession(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	resp, err := svc.GetStatus(context.Background(), testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusCheckedOut, resp.Status)
	assert.Nil(t, resp.LastCheckIn)
	assert.Nil(t, resp.CheckInSessionLocation)
}

func TestGetStatus_WithOpenSession(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)

	resp, err := svc.GetStatus(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusCheckedIn, resp.Status)
	require.NotNil(t, resp.LastCheckIn)
	require.NotNil(t, resp.CheckInSessionLocation)
	assert.Equal(t, beirut.Latitude, resp.CheckInSessionLocation.Latitude)
}

func TestGetHistory_SortedDescending(t *testing.T) {
	svc, checkInRepo, _, _ := newTestService(t)
	ctx := context.Background()

	older := time.Now().Add(-48 * time.Hour)
	olderOut := older.Add(8 * time.Hour)
	olderDur := 480
	checkInRepo.records = append(checkInRepo.records, checkin.CheckIn{
		ID: "old", EmployeeID: testEmployeeID, CheckInTime: older,
		CheckOutTime: &olderOut, DurationMinutes: &olderDur,
		Location: beirut.Location(),
	})

	_, err := svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)

	history, err := svc.GetHistory(ctx, testEmployeeID, checkin.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].CheckInTime.After(history[1].CheckInTime))
}

func TestGetHistory_DateBounds(t *testing.T) {
	svc, checkInRepo, _, _ := newTestService(t)
	ctx := context.Background()

	old := time.Now().AddDate(0, 0, -10)
	checkInRepo.records = append(checkInRepo.records, checkin.CheckIn{
		ID: "old", EmployeeID: testEmployeeID, CheckInTime: old,
		Location: beirut.Location(),
	})

	start := time.Now().AddDate(0, 0, -3).Format("2006-01-02")
	history, err := svc.GetHistory(ctx, testEmployeeID, checkin.HistoryFilter{StartDate: &start})
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestGetTodayStats_NoRecordsToday(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	resp, err := svc.GetTodayStats(context.Background(), testEmployeeID)
	require.NoError(t, err)
	assert.Zero(t, resp.HoursToday)
	assert.False(t, resp.IsCheckedIn)
	assert.Nil(t, resp.CheckInTime)
}

func TestGetTodayStats_OpenSessionCountedLive(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)

	resp, err := svc.GetTodayStats(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.True(t, resp.IsCheckedIn)
	require.NotNil(t, resp.CheckInTime)
	assert.GreaterOrEqual(t, resp.HoursToday, 0.0)
}

func TestGetTodayDetails_SumsClosedSessionsOnly(t *testing.T) {
	svc, checkInRepo, _, _ := newTestService(t)
	ctx := context.Background()

	// A closed morning session of 90 minutes.
	start, _ := todayBounds(time.Now())
	morningIn := start.Add(9 * time.Hour)
	morningOut := morningIn.Add(90 * time.Minute)
	morningDur := 90
	checkInRepo.records = append(checkInRepo.records, checkin.CheckIn{
		ID: "morning", EmployeeID: testEmployeeID, CheckInTime: morningIn,
		CheckOutTime: &morningOut, DurationMinutes: &morningDur,
		Location: beirut.Location(),
	})

	// An open afternoon session.
	_, err := svc.CheckIn(ctx, testEmployeeID, beirut)
	require.NoError(t, err)

	resp, err := svc.GetTodayDetails(ctx, testEmployeeID)
	require.NoError(t, err)
	require.Len(t, resp.CheckIns, 2)
	assert.Equal(t, 1.5, resp.TotalHours)
	assert.Equal(t, employee.StatusCheckedIn, resp.CurrentStatus.Status)
}
