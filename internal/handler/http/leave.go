package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-core/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-core/hrms-backend-go/internal/handler/http/response"
	leavesvc "github.com/hrms-core/hrms-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Balances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leavesvc.Service
}

func NewLeaveHandler(leaveService *leavesvc.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func (h *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create leave type decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.CreateType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave type created", resp)
}

func (h *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	resp, err := h.leaveService.ListTypes(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave type ID is required", nil)
		return
	}

	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update leave type decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := h.leaveService.UpdateType(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type updated", nil)
}

func (h *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave type ID is required", nil)
		return
	}

	if err := h.leaveService.DeleteType(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type deleted", nil)
}

func (h *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", resp)
}

func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, ok := h.processRequest(w, r)
	if !ok {
		return
	}

	if err := h.leaveService.Approve(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved", nil)
}

func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, ok := h.processRequest(w, r)
	if !ok {
		return
	}

	if err := h.leaveService.Reject(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected", nil)
}

func (h *LeaveHandlerImpl) Withdraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	if err := h.leaveService.Withdraw(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request withdrawn", nil)
}

func (h *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	resp, err := h.leaveService.GetRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *leave.RequestStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := leave.RequestStatus(raw)
		status = &s
	}

	resp, err := h.leaveService.ListRequests(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *LeaveHandlerImpl) Balances(w http.ResponseWriter, r *http.Request) {
	_, year := periodParams(r)
	employeeID := r.URL.Query().Get("employee_id")

	resp, err := h.leaveService.Balances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *LeaveHandlerImpl) processRequest(w http.ResponseWriter, r *http.Request) (leave.ProcessLeaveRequest, bool) {
	var req leave.ProcessLeaveRequest

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return req, false
	}

	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Process leave decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return req, false
		}
	}
	req.ID = id
	return req, true
}
