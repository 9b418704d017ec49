package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrms-core/hrms-backend-go/internal/domain/resignation"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type resignationRepositoryImpl struct {
	db *database.DB
}

func NewResignationRepository(db *database.DB) resignation.Repository {
	return &resignationRepositoryImpl{db: db}
}

const resignationColumns = `r.id, r.employee_id, r.notice_date, r.last_working_day, r.reason,
	r.status, r.processed_by, r.remarks, r.created_at, r.updated_at, e.full_name, u.role`

const resignationJoins = `
	FROM resignations r
	JOIN employees e ON e.id = r.employee_id
	LEFT JOIN users u ON u.employee_id = e.id`

func (rp *resignationRepositoryImpl) Create(ctx context.Context, r resignation.Resignation) (resignation.Resignation, error) {
	q := GetQuerier(ctx, rp.db)

	query := `
		INSERT INTO resignations (employee_id, notice_date, last_working_day, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	created := r
	err := q.QueryRow(ctx, query,
		r.EmployeeID, r.NoticeDate, r.LastWorkingDay, r.Reason, r.Status,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return resignation.Resignation{}, fmt.Errorf("failed to create resignation: %w", err)
	}
	return created, nil
}

func (rp *resignationRepositoryImpl) GetByID(ctx context.Context, id string) (resignation.Resignation, error) {
	q := GetQuerier(ctx, rp.db)

	r, err := scanResignation(q.QueryRow(ctx, `SELECT `+resignationColumns+resignationJoins+` WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return resignation.Resignation{}, resignation.ErrNotFound
	}
	if err != nil {
		return resignation.Resignation{}, fmt.Errorf("failed to get resignation: %w", err)
	}
	return r, nil
}

func (rp *resignationRepositoryImpl) GetActiveByEmployee(ctx context.Context, employeeID string) (resignation.Resignation, error) {
	q := GetQuerier(ctx, rp.db)

	r, err := scanResignation(q.QueryRow(ctx, `
		SELECT `+resignationColumns+resignationJoins+`
		WHERE r.employee_id = $1 AND r.status IN ($2, $3)
		ORDER BY r.created_at DESC
		LIMIT 1`, employeeID, resignation.StatusPending, resignation.StatusApproved))
	if errors.Is(err, pgx.ErrNoRows) {
		return resignation.Resignation{}, resignation.ErrNotFound
	}
	if err != nil {
		return resignation.Resignation{}, fmt.Errorf("failed to get active resignation: %w", err)
	}
	return r, nil
}

func (rp *resignationRepositoryImpl) List(ctx context.Context, status *resignation.Status) ([]resignation.Resignation, error) {
	q := GetQuerier(ctx, rp.db)

	query := `SELECT ` + resignationColumns + resignationJoins
	var args []interface{}
	if status != nil {
		query += ` WHERE r.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resignations []resignation.Resignation
	for rows.Next() {
		r, err := scanResignation(rows)
		if err != nil {
			return nil, err
		}
		resignations = append(resignations, r)
	}
	return resignations, rows.Err()
}

func (rp *resignationRepositoryImpl) UpdateStatus(ctx context.Context, id string, status resignation.Status, processedBy *string, remarks *string) error {
	q := GetQuerier(ctx, rp.db)

	tag, err := q.Exec(ctx, `
		UPDATE resignations
		SET status = $1, processed_by = $2, remarks = $3, updated_at = NOW()
		WHERE id = $4`, status, processedBy, remarks, id)
	if err != nil {
		return fmt.Errorf("failed to update resignation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return resignation.ErrNotFound
	}
	return nil
}

func scanResignation(row pgx.Row) (resignation.Resignation, error) {
	var r resignation.Resignation
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.NoticeDate, &r.LastWorkingDay, &r.Reason,
		&r.Status, &r.ProcessedBy, &r.Remarks, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName, &r.EmployeeRole,
	)
	return r, err
}
