package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-core/hrms-backend-go/internal/domain/payroll"
	"github.com/hrms-core/hrms-backend-go/internal/handler/http/response"
	payrollsvc "github.com/hrms-core/hrms-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	ProcessBatch(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	ListBatches(w http.ResponseWriter, r *http.Request)
	GetBatch(w http.ResponseWriter, r *http.Request)
	ListSlipsByBatch(w http.ResponseWriter, r *http.Request)
	ListSlipsByEmployee(w http.ResponseWriter, r *http.Request)
	GetSlip(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService *payrollsvc.Service
}

func NewPayrollHandler(payrollService *payrollsvc.Service) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

func (h *PayrollHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Payroll settings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	var req payroll.ProcessBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Process payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.ProcessBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payroll batch processed", resp)
}

func (h *PayrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Batch ID is required", nil)
		return
	}

	resp, err := h.payrollService.MarkPaid(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) ListBatches(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.ListBatches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) GetBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Batch ID is required", nil)
		return
	}

	resp, err := h.payrollService.GetBatch(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) ListSlipsByBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Batch ID is required", nil)
		return
	}

	resp, err := h.payrollService.ListSlipsByBatch(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) ListSlipsByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")

	resp, err := h.payrollService.ListSlipsByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) GetSlip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Slip ID is required", nil)
		return
	}

	resp, err := h.payrollService.GetSlip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
