package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date, lr.days,
	lr.reason, lr.status, lr.processed_by, lr.remarks, lr.created_at, lr.updated_at,
	e.full_name, u.role, lt.name, lt.is_paid`

const leaveRequestJoins = `
	FROM leave_requests lr
	JOIN employees e ON e.id = lr.employee_id
	LEFT JOIN users u ON u.employee_id = e.id
	JOIN leave_types lt ON lt.id = lr.leave_type_id`

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, lr leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date, days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	created := lr
	err := q.QueryRow(ctx, query,
		lr.EmployeeID, lr.LeaveTypeID, lr.StartDate, lr.EndDate, lr.Days, lr.Reason, lr.Status,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, `SELECT `+leaveRequestColumns+leaveRequestJoins+` WHERE lr.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	query := `SELECT ` + leaveRequestColumns + leaveRequestJoins + ` WHERE lr.employee_id = $1 ORDER BY lr.created_at DESC`
	return r.list(ctx, query, employeeID)
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, status *leave.RequestStatus) ([]leave.Request, error) {
	query := `SELECT ` + leaveRequestColumns + leaveRequestJoins
	var args []interface{}
	if status != nil {
		query += ` WHERE lr.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY lr.created_at DESC`
	return r.list(ctx, query, args...)
}

func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, processedBy *string, remarks *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $1, processed_by = $2, remarks = $3, updated_at = NOW()
		WHERE id = $4`, status, processedBy, remarks, id)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

// ApprovedDatesInRange expands each approved request into one row per
// calendar day so the aggregator can consume plain dates.
func (r *leaveRequestRepositoryImpl) ApprovedDatesInRange(ctx context.Context, employeeID string, start, end time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d::date
		FROM leave_requests lr,
			generate_series(GREATEST(lr.start_date, $2::date), LEAST(lr.end_date, $3::date), interval '1 day') AS d
		WHERE lr.employee_id = $1 AND lr.status = 'approved'
			AND lr.start_date <= $3 AND lr.end_date >= $2
		ORDER BY d
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate, &lr.Days,
		&lr.Reason, &lr.Status, &lr.ProcessedBy, &lr.Remarks, &lr.CreatedAt, &lr.UpdatedAt,
		&lr.EmployeeName, &lr.EmployeeRole, &lr.LeaveTypeName, &lr.IsPaid,
	)
	return lr, err
}
