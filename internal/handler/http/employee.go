package http

import (
	"net/http"

	"github.com/stafftrack/hr-backend-go/internal/domain/employee"
	"github.com/stafftrack/hr-backend-go/internal/handler/http/middleware"
	"github.com/stafftrack/hr-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Profile(w http.ResponseWriter, r *http.Request)
	Attendance(w http.ResponseWriter, r *http.Request)
	CheckedIn(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// Profile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Profile(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeIDFromContext(r.Context())

	result, err := h.employeeService.GetProfile(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Attendance implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeIDFromContext(r.Context())

	percentage, err := h.employeeService.AttendancePercentage(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.AttendanceResponse{Percentage: percentage})
}

// CheckedIn implements EmployeeHandler. HR only.
func (h *EmployeeHandlerImpl) CheckedIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.ListCheckedIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
