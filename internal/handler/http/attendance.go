package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/hrms-core/hrms-backend-go/internal/handler/http/response"
	attendancesvc "github.com/hrms-core/hrms-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ManualEntry(w http.ResponseWriter, r *http.Request)
	ListMonthly(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService *attendancesvc.Service
}

func NewAttendanceHandler(attendanceService *attendancesvc.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Check-in decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	resp, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Checked in", resp)
}

func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.CheckOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *AttendanceHandlerImpl) ManualEntry(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Manual attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.attendanceService.ManualEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *AttendanceHandlerImpl) ListMonthly(w http.ResponseWriter, r *http.Request) {
	month, year := periodParams(r)
	employeeID := r.URL.Query().Get("employee_id")

	resp, err := h.attendanceService.ListMonthly(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *AttendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	month, year := periodParams(r)
	employeeID := r.URL.Query().Get("employee_id")

	resp, err := h.attendanceService.Summary(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *AttendanceHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *AttendanceHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Attendance settings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.attendanceService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
