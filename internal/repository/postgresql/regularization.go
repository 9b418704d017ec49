package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrms-core/hrms-backend-go/internal/domain/regularization"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type regularizationRepositoryImpl struct {
	db *database.DB
}

func NewRegularizationRepository(db *database.DB) regularization.Repository {
	return &regularizationRepositoryImpl{db: db}
}

const regularizationColumns = `rr.id, rr.employee_id, rr.attendance_date, rr.type, rr.new_check_in, rr.new_check_out,
	rr.new_status, rr.reason, rr.status, rr.remarks, rr.approved_by, rr.created_at, rr.updated_at,
	e.full_name, u.role`

const regularizationJoins = `
	FROM regularization_requests rr
	JOIN employees e ON e.id = rr.employee_id
	LEFT JOIN users u ON u.employee_id = e.id`

func (r *regularizationRepositoryImpl) Create(ctx context.Context, req regularization.Request) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO regularization_requests (employee_id, attendance_date, type, new_check_in, new_check_out, new_status, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	created := req
	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.AttendanceDate, req.Type, req.NewCheckIn, req.NewCheckOut, req.NewStatus, req.Reason, req.Status,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return regularization.Request{}, fmt.Errorf("failed to create regularization request: %w", err)
	}
	return created, nil
}

func (r *regularizationRepositoryImpl) GetByID(ctx context.Context, id string) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)

	req, err := scanRegularization(q.QueryRow(ctx, `SELECT `+regularizationColumns+regularizationJoins+` WHERE rr.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return regularization.Request{}, regularization.ErrRequestNotFound
	}
	if err != nil {
		return regularization.Request{}, fmt.Errorf("failed to get regularization request: %w", err)
	}
	return req, nil
}

func (r *regularizationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]regularization.Request, error) {
	query := `SELECT ` + regularizationColumns + regularizationJoins + ` WHERE rr.employee_id = $1 ORDER BY rr.created_at DESC`
	return r.list(ctx, query, employeeID)
}

// List with excludeAdminSubjects hides requests submitted by admin
// accounts; the HR queue never shows them.
func (r *regularizationRepositoryImpl) List(ctx context.Context, status *regularization.Status, excludeAdminSubjects bool) ([]regularization.Request, error) {
	query := `SELECT ` + regularizationColumns + regularizationJoins
	var clauses []string
	var args []interface{}

	if status != nil {
		args = append(args, *status)
		clauses = append(clauses, fmt.Sprintf("rr.status = $%d", len(args)))
	}
	if excludeAdminSubjects {
		args = append(args, user.RoleAdmin)
		clauses = append(clauses, fmt.Sprintf("(u.role IS NULL OR u.role <> $%d)", len(args)))
	}
	for i, c := range clauses {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += ` ORDER BY rr.created_at DESC`
	return r.list(ctx, query, args...)
}

func (r *regularizationRepositoryImpl) Update(ctx context.Context, req regularization.Request) (regularization.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE regularization_requests
		SET status = $1, remarks = $2, approved_by = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	updated := req
	err := q.QueryRow(ctx, query, req.Status, req.Remarks, req.ApprovedBy, req.ID).Scan(&updated.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return regularization.Request{}, regularization.ErrRequestNotFound
	}
	if err != nil {
		return regularization.Request{}, fmt.Errorf("failed to update regularization request %s: %w", req.ID, err)
	}
	return updated, nil
}

func (r *regularizationRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]regularization.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []regularization.Request
	for rows.Next() {
		req, err := scanRegularization(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func scanRegularization(row pgx.Row) (regularization.Request, error) {
	var req regularization.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.AttendanceDate, &req.Type, &req.NewCheckIn, &req.NewCheckOut,
		&req.NewStatus, &req.Reason, &req.Status, &req.Remarks, &req.ApprovedBy, &req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.EmployeeRole,
	)
	return req, err
}
