package employee

import (
	"context"
	"math"
	"time"

	"github.com/stafftrack/hr-backend-go/internal/domain/checkin"
	"github.com/stafftrack/hr-backend-go/internal/domain/employee"
)

// attendanceWindowDays is the trailing window over which attendance is
// computed.
const attendanceWindowDays = 30

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	checkInRepo checkin.CheckInRepository
	now         func() time.Time
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	checkInRepo checkin.CheckInRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
		checkInRepo:        checkInRepo,
		now:                time.Now,
	}
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, employeeID string) (employee.ProfileResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	attendance, err := s.AttendancePercentage(ctx, employeeID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	return employee.ProfileResponse{
		ID:              emp.ID,
		FullName:        emp.FullName,
		Email:           emp.Email,
		Job:             emp.Job,
		Role:            emp.Role,
		Status:          emp.Status,
		CurrentLocation: emp.CurrentLocation,
		Attendance:      attendance,
		CreatedAt:       emp.CreatedAt,
	}, nil
}

// AttendancePercentage implements employee.EmployeeService.
//
// The ratio counts check-in events, not distinct days, so multiple
// check-ins on one day can push the percentage above 100. Kept as-is
// pending product clarification.
func (s *EmployeeServiceImpl) AttendancePercentage(ctx context.Context, employeeID string) (int, error) {
	now := s.now()
	since := now.AddDate(0, 0, -attendanceWindowDays)

	events, err := s.checkInRepo.CountSince(ctx, employeeID, since)
	if err != nil {
		return 0, err
	}

	workdays := countWeekdays(since, now)
	if workdays == 0 {
		return 0, nil
	}

	return int(math.Round(float64(events) / float64(workdays) * 100)), nil
}

// ListCheckedIn implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListCheckedIn(ctx context.Context) ([]employee.CheckedInEmployeeResponse, error) {
	employees, err := s.EmployeeRepository.ListCheckedIn(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.CheckedInEmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		if emp.CurrentLocation == nil {
			continue
		}
		responses = append(responses, employee.CheckedInEmployeeResponse{
			ID:         emp.ID,
			FullName:   emp.FullName,
			Email:      emp.Email,
			Job:        emp.Job,
			Status:     emp.Status,
			Location:   *emp.CurrentLocation,
			LastUpdate: emp.CurrentLocation.UpdatedAt,
		})
	}

	return responses, nil
}

// countWeekdays counts Monday through Friday dates in (start, end],
// stepping by calendar day in the local zone.
func countWeekdays(start, end time.Time) int {
	count := 0
	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}
