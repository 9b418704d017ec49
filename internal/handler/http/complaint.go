package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-core/hrms-backend-go/internal/domain/complaint"
	"github.com/hrms-core/hrms-backend-go/internal/handler/http/response"
	complaintsvc "github.com/hrms-core/hrms-backend-go/internal/service/complaint"
)

type ComplaintHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Respond(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type ComplaintHandlerImpl struct {
	complaintService *complaintsvc.Service
}

func NewComplaintHandler(complaintService *complaintsvc.Service) ComplaintHandler {
	return &ComplaintHandlerImpl{complaintService: complaintService}
}

func (h *ComplaintHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req complaint.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit complaint decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.complaintService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Complaint submitted", resp)
}

func (h *ComplaintHandlerImpl) Respond(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Complaint ID is required", nil)
		return
	}

	var req complaint.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Respond complaint decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.complaintService.Respond(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *ComplaintHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Complaint ID is required", nil)
		return
	}

	if err := h.complaintService.Close(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Complaint closed", nil)
}

func (h *ComplaintHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Complaint ID is required", nil)
		return
	}

	resp, err := h.complaintService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *ComplaintHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *complaint.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := complaint.Status(raw)
		status = &s
	}

	resp, err := h.complaintService.List(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
