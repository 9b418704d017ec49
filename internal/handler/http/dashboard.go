package http

import (
	"net/http"

	"github.com/hrms-core/hrms-backend-go/internal/handler/http/response"
	dashboardsvc "github.com/hrms-core/hrms-backend-go/internal/service/dashboard"
)

type DashboardHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService *dashboardsvc.Service
}

func NewDashboardHandler(dashboardService *dashboardsvc.Service) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

func (h *DashboardHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	resp, err := h.dashboardService.Summary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
