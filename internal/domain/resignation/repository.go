package resignation

import "context"

type Repository interface {
	Create(ctx context.Context, r Resignation) (Resignation, error)
	GetByID(ctx context.Context, id string) (Resignation, error)
	GetActiveByEmployee(ctx context.Context, employeeID string) (Resignation, error)
	List(ctx context.Context, status *Status) ([]Resignation, error)
	UpdateStatus(ctx context.Context, id string, status Status, processedBy *string, remarks *string) error
}
