package postgresql

import (
	"context"
	"fmt"

	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
)

type auditLogRepositoryImpl struct {
	db *database.DB
}

func NewAuditLogRepository(db *database.DB) audit.Repository {
	return &auditLogRepositoryImpl{db: db}
}

func (r *auditLogRepositoryImpl) Create(ctx context.Context, e audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO audit_logs (action, module, entity_type, entity_id, performed_by, old_value, new_value, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.Action, e.Module, e.EntityType, e.EntityID, e.PerformedBy, e.OldValue, e.NewValue, e.IPAddress, e.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

func (r *auditLogRepositoryImpl) List(ctx context.Context, f audit.Filter) ([]audit.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	var args []interface{}
	addClause := func(clause string, val interface{}) {
		args = append(args, val)
		where += fmt.Sprintf(clause, len(args))
	}
	if f.Module != nil {
		addClause(" AND module = $%d", *f.Module)
	}
	if f.Action != nil {
		addClause(" AND action = $%d", *f.Action)
	}
	if f.PerformedBy != nil {
		addClause(" AND performed_by = $%d", *f.PerformedBy)
	}
	if f.From != nil {
		addClause(" AND created_at >= $%d", *f.From)
	}
	if f.To != nil {
		addClause(" AND created_at <= $%d", *f.To)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := fmt.Sprintf(`
		SELECT id, action, module, entity_type, entity_id, performed_by, old_value, new_value, ip_address, user_agent, created_at
		FROM audit_logs`+where+`
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		err := rows.Scan(
			&e.ID, &e.Action, &e.Module, &e.EntityType, &e.EntityID, &e.PerformedBy,
			&e.OldValue, &e.NewValue, &e.IPAddress, &e.UserAgent, &e.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
