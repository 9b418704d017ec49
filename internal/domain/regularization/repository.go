package regularization

import "context"

type Repository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	List(ctx context.Context, status *Status, excludeAdminSubjects bool) ([]Request, error)
	Update(ctx context.Context, r Request) (Request, error)
}
