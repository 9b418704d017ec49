package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hrms-core/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `id, name, description, is_paid, default_days_per_year, is_active, created_at, updated_at`

func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (name, description, is_paid, default_days_per_year, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + leaveTypeColumns

	var created leave.LeaveType
	err := q.QueryRow(ctx, query,
		lt.Name, lt.Description, lt.IsPaid, lt.DefaultDaysPerYear, lt.IsActive,
	).Scan(
		&created.ID, &created.Name, &created.Description, &created.IsPaid,
		&created.DefaultDaysPerYear, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
		}
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return created, nil
}

func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	var lt leave.LeaveType
	err := q.QueryRow(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types WHERE id = $1`, id).Scan(
		&lt.ID, &lt.Name, &lt.Description, &lt.IsPaid,
		&lt.DefaultDaysPerYear, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	return lt, nil
}

func (r *leaveTypeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveTypeColumns + ` FROM leave_types`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		err := rows.Scan(
			&lt.ID, &lt.Name, &lt.Description, &lt.IsPaid,
			&lt.DefaultDaysPerYear, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, req leave.UpdateLeaveTypeRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsPaid != nil {
		updates["is_paid"] = *req.IsPaid
	}
	if req.DefaultDaysPerYear != nil {
		updates["default_days_per_year"] = *req.DefaultDaysPerYear
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return nil
	}

	setClauses := make([]string, 0, len(updates)+1)
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	sql := fmt.Sprintf("UPDATE leave_types SET %s WHERE id = $%d RETURNING id", strings.Join(setClauses, ", "), i)
	args = append(args, req.ID)

	var updatedID string
	err := q.QueryRow(ctx, sql, args...).Scan(&updatedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.ErrLeaveTypeNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return leave.ErrLeaveTypeNameExists
		}
		return fmt.Errorf("failed to update leave type %s: %w", req.ID, err)
	}
	return nil
}

func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_types WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return leave.ErrLeaveTypeInUse
		}
		return fmt.Errorf("failed to delete leave type %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}
