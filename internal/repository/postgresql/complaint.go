package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrms-core/hrms-backend-go/internal/domain/complaint"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type complaintRepositoryImpl struct {
	db *database.DB
}

func NewComplaintRepository(db *database.DB) complaint.Repository {
	return &complaintRepositoryImpl{db: db}
}

const complaintColumns = `c.id, c.employee_id, c.subject, c.description, c.category, c.priority,
	c.is_anonymous, c.status, c.response, c.responded_by, c.responded_at, c.created_at, c.updated_at,
	e.full_name, u.role`

const complaintJoins = `
	FROM complaints c
	JOIN employees e ON e.id = c.employee_id
	LEFT JOIN users u ON u.employee_id = e.id`

func (cp *complaintRepositoryImpl) Create(ctx context.Context, c complaint.Complaint) (complaint.Complaint, error) {
	q := GetQuerier(ctx, cp.db)

	query := `
		INSERT INTO complaints (employee_id, subject, description, category, priority, is_anonymous, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	created := c
	err := q.QueryRow(ctx, query,
		c.EmployeeID, c.Subject, c.Description, c.Category, c.Priority, c.IsAnonymous, c.Status,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return complaint.Complaint{}, fmt.Errorf("failed to create complaint: %w", err)
	}
	return created, nil
}

func (cp *complaintRepositoryImpl) GetByID(ctx context.Context, id string) (complaint.Complaint, error) {
	q := GetQuerier(ctx, cp.db)

	c, err := scanComplaint(q.QueryRow(ctx, `SELECT `+complaintColumns+complaintJoins+` WHERE c.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return complaint.Complaint{}, complaint.ErrNotFound
	}
	if err != nil {
		return complaint.Complaint{}, fmt.Errorf("failed to get complaint: %w", err)
	}
	return c, nil
}

func (cp *complaintRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]complaint.Complaint, error) {
	query := `SELECT ` + complaintColumns + complaintJoins + ` WHERE c.employee_id = $1 ORDER BY c.created_at DESC`
	return cp.list(ctx, query, employeeID)
}

func (cp *complaintRepositoryImpl) List(ctx context.Context, status *complaint.Status, excludeAdminSubjects bool) ([]complaint.Complaint, error) {
	query := `SELECT ` + complaintColumns + complaintJoins
	var conditions []string
	var args []interface{}

	if status != nil {
		args = append(args, *status)
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if excludeAdminSubjects {
		args = append(args, user.RoleAdmin)
		conditions = append(conditions, fmt.Sprintf("(u.role IS NULL OR u.role <> $%d)", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += ` ORDER BY c.created_at DESC`
	return cp.list(ctx, query, args...)
}

func (cp *complaintRepositoryImpl) Update(ctx context.Context, c complaint.Complaint) error {
	q := GetQuerier(ctx, cp.db)

	tag, err := q.Exec(ctx, `
		UPDATE complaints
		SET status = $1, response = $2, responded_by = $3, responded_at = $4, updated_at = NOW()
		WHERE id = $5`, c.Status, c.Response, c.RespondedBy, c.RespondedAt, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update complaint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return complaint.ErrNotFound
	}
	return nil
}

func (cp *complaintRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]complaint.Complaint, error) {
	q := GetQuerier(ctx, cp.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []complaint.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

func scanComplaint(row pgx.Row) (complaint.Complaint, error) {
	var c complaint.Complaint
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.Subject, &c.Description, &c.Category, &c.Priority,
		&c.IsAnonymous, &c.Status, &c.Response, &c.RespondedBy, &c.RespondedAt, &c.CreatedAt, &c.UpdatedAt,
		&c.EmployeeName, &c.EmployeeRole,
	)
	return c, err
}
