package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrms-core/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `lb.id, lb.employee_id, lb.leave_type_id, lb.year, lb.total, lb.used, lb.remaining,
	lb.created_at, lb.updated_at`

func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	return r.getOne(ctx, `
		SELECT `+leaveBalanceColumns+`
		FROM leave_balances lb
		WHERE lb.employee_id = $1 AND lb.leave_type_id = $2 AND lb.year = $3`,
		employeeID, leaveTypeID, year)
}

func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYearForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	return r.getOne(ctx, `
		SELECT `+leaveBalanceColumns+`
		FROM leave_balances lb
		WHERE lb.employee_id = $1 AND lb.leave_type_id = $2 AND lb.year = $3
		FOR UPDATE`,
		employeeID, leaveTypeID, year)
}

func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type_id, year, total, used, remaining)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	created := b
	err := q.QueryRow(ctx, query,
		b.EmployeeID, b.LeaveTypeID, b.Year, b.Total, b.Used, b.Remaining,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}
	return created, nil
}

func (r *leaveBalanceRepositoryImpl) Update(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET total = $1, used = $2, remaining = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	updated := b
	err := q.QueryRow(ctx, query, b.Total, b.Used, b.Remaining, b.ID).Scan(&updated.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to update leave balance %s: %w", b.ID, err)
	}
	return updated, nil
}

func (r *leaveBalanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveBalanceColumns + `, lt.name
		FROM leave_balances lb
		JOIN leave_types lt ON lt.id = lb.leave_type_id
		WHERE lb.employee_id = $1 AND lb.year = $2
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year, &b.Total, &b.Used, &b.Remaining,
			&b.CreatedAt, &b.UpdatedAt, &b.LeaveTypeName,
		)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

func (r *leaveBalanceRepositoryImpl) getOne(ctx context.Context, query string, args ...interface{}) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	var b leave.Balance
	err := q.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year, &b.Total, &b.Used, &b.Remaining,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}
