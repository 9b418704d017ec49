package dashboard

import (
	"context"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/dashboard"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/requestctx"
)

type Service struct {
	repo dashboard.Repository
}

func NewService(repo dashboard.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Summary(ctx context.Context) (dashboard.Summary, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return dashboard.Summary{}, err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return dashboard.Summary{}, user.ErrHRAccessRequired
	}
	return s.repo.GetSummary(ctx, time.Now().UTC())
}
