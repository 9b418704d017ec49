package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrms-core/hrms-backend-go/internal/domain/payroll"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollSettingsRepositoryImpl struct {
	db *database.DB
}

func NewPayrollSettingsRepository(db *database.DB) payroll.SettingsRepository {
	return &payrollSettingsRepositoryImpl{db: db}
}

func (r *payrollSettingsRepositoryImpl) Get(ctx context.Context) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	var s payroll.Settings
	err := q.QueryRow(ctx, `
		SELECT id, default_pf_percentage, default_esi_percentage, default_absent_deduction_type,
			default_absent_deduction_value, created_at, updated_at
		FROM payroll_settings
		LIMIT 1`).Scan(
		&s.ID, &s.DefaultPFPercentage, &s.DefaultESIPercentage, &s.DefaultAbsentDeductionType,
		&s.DefaultAbsentDeductionValue, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.Settings{}, payroll.ErrSettingsNotFound
	}
	if err != nil {
		return payroll.Settings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}
	return s, nil
}

func (r *payrollSettingsRepositoryImpl) Upsert(ctx context.Context, s payroll.Settings) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_settings (slot, default_pf_percentage, default_esi_percentage,
			default_absent_deduction_type, default_absent_deduction_value)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (slot) DO UPDATE SET
			default_pf_percentage = EXCLUDED.default_pf_percentage,
			default_esi_percentage = EXCLUDED.default_esi_percentage,
			default_absent_deduction_type = EXCLUDED.default_absent_deduction_type,
			default_absent_deduction_value = EXCLUDED.default_absent_deduction_value,
			updated_at = NOW()
		RETURNING id, default_pf_percentage, default_esi_percentage, default_absent_deduction_type,
			default_absent_deduction_value, created_at, updated_at
	`

	var saved payroll.Settings
	err := q.QueryRow(ctx, query,
		s.DefaultPFPercentage, s.DefaultESIPercentage, s.DefaultAbsentDeductionType, s.DefaultAbsentDeductionValue,
	).Scan(
		&saved.ID, &saved.DefaultPFPercentage, &saved.DefaultESIPercentage, &saved.DefaultAbsentDeductionType,
		&saved.DefaultAbsentDeductionValue, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return payroll.Settings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}
	return saved, nil
}

type payrollBatchRepositoryImpl struct {
	db *database.DB
}

func NewPayrollBatchRepository(db *database.DB) payroll.BatchRepository {
	return &payrollBatchRepositoryImpl{db: db}
}

const batchColumns = `id, period_month, period_year, status, total_employees, total_amount,
	processed_by, processed_at, paid_by, paid_at, created_at, updated_at`

func (r *payrollBatchRepositoryImpl) Create(ctx context.Context, b payroll.Batch) (payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_batches (period_month, period_year, status, total_employees, total_amount, processed_by, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	created := b
	err := q.QueryRow(ctx, query,
		b.PeriodMonth, b.PeriodYear, b.Status, b.TotalEmployees, b.TotalAmount, b.ProcessedBy, b.ProcessedAt,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Batch{}, payroll.ErrBatchExists
		}
		return payroll.Batch{}, fmt.Errorf("failed to create payroll batch: %w", err)
	}
	return created, nil
}

func (r *payrollBatchRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Batch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM payroll_batches WHERE id = $1`, id)
}

func (r *payrollBatchRepositoryImpl) GetByPeriod(ctx context.Context, month, year int) (payroll.Batch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM payroll_batches WHERE period_month = $1 AND period_year = $2`, month, year)
}

func (r *payrollBatchRepositoryImpl) List(ctx context.Context) ([]payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+batchColumns+` FROM payroll_batches ORDER BY period_year DESC, period_month DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []payroll.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func (r *payrollBatchRepositoryImpl) Update(ctx context.Context, b payroll.Batch) (payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_batches
		SET status = $1, total_employees = $2, total_amount = $3,
			processed_by = $4, processed_at = $5, paid_by = $6, paid_at = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	updated := b
	err := q.QueryRow(ctx, query,
		b.Status, b.TotalEmployees, b.TotalAmount, b.ProcessedBy, b.ProcessedAt, b.PaidBy, b.PaidAt, b.ID,
	).Scan(&updated.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.Batch{}, payroll.ErrBatchNotFound
	}
	if err != nil {
		return payroll.Batch{}, fmt.Errorf("failed to update payroll batch %s: %w", b.ID, err)
	}
	return updated, nil
}

func (r *payrollBatchRepositoryImpl) DeleteSlips(ctx context.Context, batchID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM salary_slips WHERE batch_id = $1`, batchID); err != nil {
		return fmt.Errorf("failed to delete slips for batch %s: %w", batchID, err)
	}
	return nil
}

const slipColumns = `s.id, s.batch_id, s.employee_id, s.basic, s.hra, s.allowances, s.reimbursed, s.gross_salary,
	s.pf, s.esi, s.tax, s.absence_deduction, s.other_deductions, s.net_salary,
	s.present_days, s.absent_days, s.half_days, s.on_leave_days, s.created_at, e.full_name, e.employee_code`

func (r *payrollBatchRepositoryImpl) CreateSlip(ctx context.Context, s payroll.Slip) (payroll.Slip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_slips (batch_id, employee_id, basic, hra, allowances, reimbursed, gross_salary,
			pf, esi, tax, absence_deduction, other_deductions, net_salary,
			present_days, absent_days, half_days, on_leave_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at
	`

	created := s
	err := q.QueryRow(ctx, query,
		s.BatchID, s.EmployeeID, s.Basic, s.HRA, s.Allowances, s.Reimbursed, s.GrossSalary,
		s.PF, s.ESI, s.Tax, s.AbsenceDeduction, s.OtherDeductions, s.NetSalary,
		s.PresentDays, s.AbsentDays, s.HalfDays, s.OnLeaveDays,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Slip{}, payroll.ErrSlipExists
		}
		return payroll.Slip{}, fmt.Errorf("failed to create salary slip: %w", err)
	}
	return created, nil
}

func (r *payrollBatchRepositoryImpl) GetSlipByID(ctx context.Context, id string) (payroll.Slip, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSlip(q.QueryRow(ctx, `
		SELECT `+slipColumns+`
		FROM salary_slips s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.Slip{}, payroll.ErrSlipNotFound
	}
	if err != nil {
		return payroll.Slip{}, fmt.Errorf("failed to get salary slip: %w", err)
	}
	return s, nil
}

func (r *payrollBatchRepositoryImpl) ListSlipsByBatch(ctx context.Context, batchID string) ([]payroll.Slip, error) {
	return r.listSlips(ctx, `
		SELECT `+slipColumns+`
		FROM salary_slips s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.batch_id = $1
		ORDER BY e.employee_code`, batchID)
}

func (r *payrollBatchRepositoryImpl) ListSlipsByEmployee(ctx context.Context, employeeID string) ([]payroll.Slip, error) {
	return r.listSlips(ctx, `
		SELECT `+slipColumns+`
		FROM salary_slips s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1
		ORDER BY s.created_at DESC`, employeeID)
}

func (r *payrollBatchRepositoryImpl) getOne(ctx context.Context, query string, args ...interface{}) (payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBatch(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.Batch{}, payroll.ErrBatchNotFound
	}
	if err != nil {
		return payroll.Batch{}, fmt.Errorf("failed to get payroll batch: %w", err)
	}
	return b, nil
}

func (r *payrollBatchRepositoryImpl) listSlips(ctx context.Context, query string, args ...interface{}) ([]payroll.Slip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slips []payroll.Slip
	for rows.Next() {
		s, err := scanSlip(rows)
		if err != nil {
			return nil, err
		}
		slips = append(slips, s)
	}
	return slips, rows.Err()
}

func scanBatch(row pgx.Row) (payroll.Batch, error) {
	var b payroll.Batch
	err := row.Scan(
		&b.ID, &b.PeriodMonth, &b.PeriodYear, &b.Status, &b.TotalEmployees, &b.TotalAmount,
		&b.ProcessedBy, &b.ProcessedAt, &b.PaidBy, &b.PaidAt, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func scanSlip(row pgx.Row) (payroll.Slip, error) {
	var s payroll.Slip
	err := row.Scan(
		&s.ID, &s.BatchID, &s.EmployeeID, &s.Basic, &s.HRA, &s.Allowances, &s.Reimbursed, &s.GrossSalary,
		&s.PF, &s.ESI, &s.Tax, &s.AbsenceDeduction, &s.OtherDeductions, &s.NetSalary,
		&s.PresentDays, &s.AbsentDays, &s.HalfDays, &s.OnLeaveDays, &s.CreatedAt, &s.EmployeeName, &s.EmployeeCode,
	)
	return s, err
}
