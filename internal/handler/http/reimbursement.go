package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-core/hrms-backend-go/internal/domain/reimbursement"
	"github.com/hrms-core/hrms-backend-go/internal/handler/http/response"
	reimbursementsvc "github.com/hrms-core/hrms-backend-go/internal/service/reimbursement"
)

type ReimbursementHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type ReimbursementHandlerImpl struct {
	reimbursementService *reimbursementsvc.Service
}

func NewReimbursementHandler(reimbursementService *reimbursementsvc.Service) ReimbursementHandler {
	return &ReimbursementHandlerImpl{reimbursementService: reimbursementService}
}

func (h *ReimbursementHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req reimbursement.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit reimbursement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.reimbursementService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Reimbursement submitted", resp)
}

func (h *ReimbursementHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Reimbursement ID is required", nil)
		return
	}

	var req reimbursement.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Process reimbursement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.reimbursementService.Process(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Reimbursement processed", nil)
}

func (h *ReimbursementHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Reimbursement ID is required", nil)
		return
	}

	resp, err := h.reimbursementService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *ReimbursementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *reimbursement.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := reimbursement.Status(raw)
		status = &s
	}

	resp, err := h.reimbursementService.List(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
