package reimbursement

import "context"

type Repository interface {
	Create(ctx context.Context, r Reimbursement) (Reimbursement, error)
	GetByID(ctx context.Context, id string) (Reimbursement, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Reimbursement, error)
	List(ctx context.Context, status *Status) ([]Reimbursement, error)
	UpdateStatus(ctx context.Context, id string, status Status, processedBy *string, remarks *string) error
	// ApprovedUnpaidByEmployee returns approved reimbursements not yet
	// settled by any batch; the payroll coordinator folds them into the
	// slip and marks them paid.
	ApprovedUnpaidByEmployee(ctx context.Context, employeeID string) ([]Reimbursement, error)
	MarkPaid(ctx context.Context, ids []string, batchID string) error
}
