package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/requestctx"
)

type Service struct {
	repo audit.Repository
}

func NewService(repo audit.Repository) *Service {
	return &Service{repo: repo}
}

// Record writes an audit entry without blocking the caller. A failed
// write is logged and discarded; audit persistence never fails the
// business operation it describes.
func (s *Service) Record(ctx context.Context, e audit.Entry) {
	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.Create(writeCtx, e); err != nil {
			slog.Error("failed to write audit entry",
				"module", e.Module,
				"action", e.Action,
				"entity_id", e.EntityID,
				"error", err,
			)
		}
	}()
}

func (s *Service) List(ctx context.Context, f audit.Filter) ([]audit.Entry, int64, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return nil, 0, err
	}
	if actor.Role != user.RoleAdmin {
		return nil, 0, user.ErrAdminPrivilegeRequired
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	return s.repo.List(ctx, f)
}
