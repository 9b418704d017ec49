package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-core/hrms-backend-go/internal/domain/regularization"
	"github.com/hrms-core/hrms-backend-go/internal/handler/http/response"
	regularizationsvc "github.com/hrms-core/hrms-backend-go/internal/service/regularization"
)

type RegularizationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type RegularizationHandlerImpl struct {
	regularizationService *regularizationsvc.Service
}

func NewRegularizationHandler(regularizationService *regularizationsvc.Service) RegularizationHandler {
	return &RegularizationHandlerImpl{regularizationService: regularizationService}
}

func (h *RegularizationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req regularization.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit regularization decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.regularizationService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Regularization request submitted", resp)
}

func (h *RegularizationHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Regularization request ID is required", nil)
		return
	}

	var req regularization.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Process regularization decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.regularizationService.Process(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *RegularizationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Regularization request ID is required", nil)
		return
	}

	resp, err := h.regularizationService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *RegularizationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *regularization.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := regularization.Status(raw)
		status = &s
	}

	resp, err := h.regularizationService.List(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
