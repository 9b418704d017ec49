package dashboard

import (
	"context"
	"time"
)

type Repository interface {
	GetSummary(ctx context.Context, today time.Time) (Summary, error)
}
