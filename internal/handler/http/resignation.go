package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-core/hrms-backend-go/internal/domain/resignation"
	"github.com/hrms-core/hrms-backend-go/internal/handler/http/response"
	resignationsvc "github.com/hrms-core/hrms-backend-go/internal/service/resignation"
)

type ResignationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type ResignationHandlerImpl struct {
	resignationService *resignationsvc.Service
}

func NewResignationHandler(resignationService *resignationsvc.Service) ResignationHandler {
	return &ResignationHandlerImpl{resignationService: resignationService}
}

func (h *ResignationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req resignation.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit resignation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.resignationService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Resignation submitted", resp)
}

func (h *ResignationHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	var req resignation.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Process resignation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.resignationService.Process(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Resignation processed", nil)
}

func (h *ResignationHandlerImpl) Withdraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	if err := h.resignationService.Withdraw(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Resignation withdrawn", nil)
}

func (h *ResignationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	resp, err := h.resignationService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *ResignationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *resignation.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := resignation.Status(raw)
		status = &s
	}

	resp, err := h.resignationService.List(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
