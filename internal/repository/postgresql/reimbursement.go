package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrms-core/hrms-backend-go/internal/domain/reimbursement"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reimbursementRepositoryImpl struct {
	db *database.DB
}

func NewReimbursementRepository(db *database.DB) reimbursement.Repository {
	return &reimbursementRepositoryImpl{db: db}
}

const reimbursementColumns = `r.id, r.employee_id, r.category, r.amount, r.description, r.receipt_date,
	r.status, r.processed_by, r.remarks, r.batch_id, r.created_at, r.updated_at, e.full_name, u.role`

const reimbursementJoins = `
	FROM reimbursements r
	JOIN employees e ON e.id = r.employee_id
	LEFT JOIN users u ON u.employee_id = e.id`

func (rp *reimbursementRepositoryImpl) Create(ctx context.Context, r reimbursement.Reimbursement) (reimbursement.Reimbursement, error) {
	q := GetQuerier(ctx, rp.db)

	query := `
		INSERT INTO reimbursements (employee_id, category, amount, description, receipt_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	created := r
	err := q.QueryRow(ctx, query,
		r.EmployeeID, r.Category, r.Amount, r.Description, r.ReceiptDate, r.Status,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return reimbursement.Reimbursement{}, fmt.Errorf("failed to create reimbursement: %w", err)
	}
	return created, nil
}

func (rp *reimbursementRepositoryImpl) GetByID(ctx context.Context, id string) (reimbursement.Reimbursement, error) {
	q := GetQuerier(ctx, rp.db)

	r, err := scanReimbursement(q.QueryRow(ctx, `SELECT `+reimbursementColumns+reimbursementJoins+` WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return reimbursement.Reimbursement{}, reimbursement.ErrNotFound
	}
	if err != nil {
		return reimbursement.Reimbursement{}, fmt.Errorf("failed to get reimbursement: %w", err)
	}
	return r, nil
}

func (rp *reimbursementRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]reimbursement.Reimbursement, error) {
	query := `SELECT ` + reimbursementColumns + reimbursementJoins + ` WHERE r.employee_id = $1 ORDER BY r.created_at DESC`
	return rp.list(ctx, query, employeeID)
}

func (rp *reimbursementRepositoryImpl) List(ctx context.Context, status *reimbursement.Status) ([]reimbursement.Reimbursement, error) {
	query := `SELECT ` + reimbursementColumns + reimbursementJoins
	var args []interface{}
	if status != nil {
		query += ` WHERE r.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY r.created_at DESC`
	return rp.list(ctx, query, args...)
}

func (rp *reimbursementRepositoryImpl) UpdateStatus(ctx context.Context, id string, status reimbursement.Status, processedBy *string, remarks *string) error {
	q := GetQuerier(ctx, rp.db)

	tag, err := q.Exec(ctx, `
		UPDATE reimbursements
		SET status = $1, processed_by = $2, remarks = $3, updated_at = NOW()
		WHERE id = $4`, status, processedBy, remarks, id)
	if err != nil {
		return fmt.Errorf("failed to update reimbursement status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return reimbursement.ErrNotFound
	}
	return nil
}

func (rp *reimbursementRepositoryImpl) ApprovedUnpaidByEmployee(ctx context.Context, employeeID string) ([]reimbursement.Reimbursement, error) {
	query := `SELECT ` + reimbursementColumns + reimbursementJoins + `
		WHERE r.employee_id = $1 AND r.status = $2 AND r.batch_id IS NULL
		ORDER BY r.receipt_date`
	return rp.list(ctx, query, employeeID, reimbursement.StatusApproved)
}

func (rp *reimbursementRepositoryImpl) MarkPaid(ctx context.Context, ids []string, batchID string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, rp.db)

	_, err := q.Exec(ctx, `
		UPDATE reimbursements
		SET status = $1, batch_id = $2, updated_at = NOW()
		WHERE id = ANY($3)`, reimbursement.StatusPaid, batchID, ids)
	if err != nil {
		return fmt.Errorf("failed to mark reimbursements paid: %w", err)
	}
	return nil
}

func (rp *reimbursementRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]reimbursement.Reimbursement, error) {
	q := GetQuerier(ctx, rp.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []reimbursement.Reimbursement
	for rows.Next() {
		r, err := scanReimbursement(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, r)
	}
	return claims, rows.Err()
}

func scanReimbursement(row pgx.Row) (reimbursement.Reimbursement, error) {
	var r reimbursement.Reimbursement
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Category, &r.Amount, &r.Description, &r.ReceiptDate,
		&r.Status, &r.ProcessedBy, &r.Remarks, &r.BatchID, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName, &r.EmployeeRole,
	)
	return r, err
}
