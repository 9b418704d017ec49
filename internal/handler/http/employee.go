package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/handler/http/response"
	employeesvc "github.com/hrms-core/hrms-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService *employeesvc.Service
}

func NewEmployeeHandler(employeeService *employeesvc.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created", resp)
}

func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	resp, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *employee.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := employee.Status(raw)
		status = &s
	}

	resp, err := h.employeeService.List(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
