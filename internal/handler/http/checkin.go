package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stafftrack/hr-backend-go/internal/domain/checkin"
	"github.com/stafftrack/hr-backend-go/internal/handler/http/middleware"
	"github.com/stafftrack/hr-backend-go/internal/handler/http/response"
)

type CheckInHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	UpdateLocation(w http.ResponseWriter, r *http.Request)
	MonitorLocation(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	TodayStats(w http.ResponseWriter, r *http.Request)
	SetDefaultLocation(w http.ResponseWriter, r *http.Request)
}

type CheckInHandlerImpl struct {
	checkInService checkin.CheckInService
}

func NewCheckInHandler(checkInService checkin.CheckInService) CheckInHandler {
	return &CheckInHandlerImpl{checkInService: checkInService}
}

// CheckIn implements CheckInHandler.
func (h *CheckInHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeIDFromContext(r.Context())

	var req checkin.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checkInService.CheckIn(r.Context(), employeeID, req)
	if err != nil {
		slog.Error("CheckIn service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee checked in", "employee_id", employeeID, "check_in_id", result.ID)
	response.Created(w, "Checked in successfully", result)
}

// CheckOut implements CheckInHandler.
func (h *CheckInHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeIDFromContext(r.Context())

	result, err := h.checkInService.CheckOut(r.Context(), employeeID)
	if err != nil {
		slog.Error("CheckOut service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee checked out", "employee_id", employeeID, "check_in_id", result.ID)
	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// UpdateLocation implements CheckInHandler.
func (h *CheckInHandlerImpl) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeIDFromContext(r.Context())

	var req checkin.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateLocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checkInService.UpdateLocation(r.Context(), employeeID, req)
	if err != nil {
		slog.Error("UpdateLocation service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonitorLocation implements CheckInHandler.
func (h *CheckInHandlerImpl) MonitorLocation(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeIDFromContext(r.Context())

	var req checkin.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MonitorLocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checkInService.MonitorLocation(r.Context(), employeeID, req)
	if err != nil {
		slog.Error("MonitorLocation service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Status implements CheckInHandler.
func (h *CheckInHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeIDFromContext(r.Context())

	result, err := h.checkInService.GetStatus(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements CheckInHandler.
func (h *CheckInHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeIDFromContext(r.Context())

	var filter checkin.HistoryFilter
	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	result, err := h.checkInService.GetHistory(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Today implements CheckInHandler.
func (h *CheckInHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeIDFromContext(r.Context())

	result, err := h.checkInService.GetTodayDetails(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TodayStats implements CheckInHandler.
func (h *CheckInHandlerImpl) TodayStats(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeIDFromContext(r.Context())

	result, err := h.checkInService.GetTodayStats(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetDefaultLocation implements CheckInHandler. HR only.
func (h *CheckInHandlerImpl) SetDefaultLocation(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req checkin.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetDefaultLocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checkInService.SetDefaultLocation(r.Context(), employeeID, req)
	if err != nil {
		slog.Error("SetDefaultLocation service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Default location updated", "employee_id", employeeID)
	response.SuccessWithMessage(w, "Default location updated", result)
}
