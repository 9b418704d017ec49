package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/handler/http/response"
	auditsvc "github.com/hrms-core/hrms-backend-go/internal/service/audit"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type AuditHandlerImpl struct {
	auditService *auditsvc.Service
}

func NewAuditHandler(auditService *auditsvc.Service) AuditHandler {
	return &AuditHandlerImpl{auditService: auditService}
}

func (h *AuditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f audit.Filter
	if raw := q.Get("module"); raw != "" {
		f.Module = &raw
	}
	if raw := q.Get("action"); raw != "" {
		f.Action = &raw
	}
	if raw := q.Get("performed_by"); raw != "" {
		f.PerformedBy = &raw
	}
	if raw := q.Get("from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			f.From = &t
		}
	}
	if raw := q.Get("to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			f.To = &t
		}
	}
	if raw := q.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			f.Page = v
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			f.Limit = v
		}
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}

	entries, total, err := h.auditService.List(r.Context(), f)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, entries, &response.Meta{Page: f.Page, Limit: f.Limit, TotalItems: total})
}
