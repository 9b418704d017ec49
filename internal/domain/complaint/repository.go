package complaint

import "context"

type Repository interface {
	Create(ctx context.Context, c Complaint) (Complaint, error)
	GetByID(ctx context.Context, id string) (Complaint, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Complaint, error)
	List(ctx context.Context, status *Status, excludeAdminSubjects bool) ([]Complaint, error)
	Update(ctx context.Context, c Complaint) error
}
