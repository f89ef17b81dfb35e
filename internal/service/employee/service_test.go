package employee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/hr-backend-go/internal/domain/checkin"
	"github.com/stafftrack/hr-backend-go/internal/domain/employee"
)

type stubEmployeeRepo struct {
	employee.EmployeeRepository
	getByID       func(ctx context.Context, id string) (employee.Employee, error)
	listCheckedIn func(ctx context.Context) ([]employee.Employee, error)
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return s.getByID(ctx, id)
}

func (s *stubEmployeeRepo) ListCheckedIn(ctx context.Context) ([]employee.Employee, error) {
	return s.listCheckedIn(ctx)
}

type stubCheckInRepo struct {
	checkin.CheckInRepository
	countSince func(ctx context.Context, employeeID string, since time.Time) (int, error)
}

func (s *stubCheckInRepo) CountSince(ctx context.Context, employeeID string, since time.Time) (int, error) {
	return s.countSince(ctx, employeeID, since)
}

// A Monday, so the trailing 30 days contain a fixed weekday count.
var fixedNow = time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)

func newTestService(counted int) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		EmployeeRepository: &stubEmployeeRepo{
			getByID: func(_ context.Context, id string) (employee.Employee, error) {
				if id != "emp-1" {
					return employee.Employee{}, employee.ErrEmployeeNotFound
				}
				return employee.Employee{
					ID:       "emp-1",
					FullName: "Dana Haddad",
					Email:    "dana@example.com",
					Role:     employee.RoleEmployee,
					Status:   employee.StatusCheckedOut,
				}, nil
			},
		},
		checkInRepo: &stubCheckInRepo{
			countSince: func(_ context.Context, _ string, _ time.Time) (int, error) {
				return counted, nil
			},
		},
		now: func() time.Time { return fixedNow },
	}
}

func TestCountWeekdays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "single full week",
			start: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), // Sunday
			end:   time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC), // next Sunday
			want:  5,
		},
		{
			name:  "weekend only",
			start: time.Date(2025, time.June, 6, 0, 0, 0, 0, time.UTC), // Friday
			end:   time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC), // Sunday
			want:  0,
		},
		{
			name:  "empty range",
			start: fixedNow,
			end:   fixedNow,
			want:  0,
		},
		{
			name:  "trailing 30 days from a monday",
			start: fixedNow.AddDate(0, 0, -30),
			end:   fixedNow,
			want:  21,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countWeekdays(tt.start, tt.end))
		})
	}
}

func TestAttendancePercentage(t *testing.T) {
	// 21 weekdays in the fixed window; 14 events rounds to 67.
	svc := newTestService(14)

	got, err := svc.AttendancePercentage(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 67, got)
}

func TestAttendancePercentage_NoEvents(t *testing.T) {
	svc := newTestService(0)

	got, err := svc.AttendancePercentage(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestAttendancePercentage_EventsCanExceedWorkdays(t *testing.T) {
	// Double check-ins inflate the event count past the weekday count.
	svc := newTestService(42)

	got, err := svc.AttendancePercentage(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 200, got)
}

func TestGetProfile(t *testing.T) {
	svc := newTestService(21)

	profile, err := svc.GetProfile(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", profile.ID)
	assert.Equal(t, "Dana Haddad", profile.FullName)
	assert.Equal(t, 100, profile.Attendance)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := newTestService(0)

	_, err := svc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListCheckedIn_SkipsEmployeesWithoutLocation(t *testing.T) {
	updatedAt := fixedNow.Add(-5 * time.Minute)
	svc := &EmployeeServiceImpl{
		EmployeeRepository: &stubEmployeeRepo{
			listCheckedIn: func(_ context.Context) ([]employee.Employee, error) {
				return []employee.Employee{
					{
						ID:       "emp-1",
						FullName: "Dana Haddad",
						Status:   employee.StatusCheckedIn,
						CurrentLocation: &employee.TrackedLocation{
							Location:  employee.Location{Latitude: 33.89, Longitude: 35.50},
							UpdatedAt: updatedAt,
						},
					},
					{
						ID:       "emp-2",
						FullName: "Sami Khoury",
						Status:   employee.StatusCheckedIn,
					},
				}, nil
			},
		},
		now: func() time.Time { return fixedNow },
	}

	got, err := svc.ListCheckedIn(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "emp-1", got[0].ID)
	assert.Equal(t, updatedAt, got[0].LastUpdate)
}
