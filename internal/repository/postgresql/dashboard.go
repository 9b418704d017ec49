package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/dashboard"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.Repository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) GetSummary(ctx context.Context, today time.Time) (dashboard.Summary, error) {
	q := GetQuerier(ctx, r.db)

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var s dashboard.Summary
	err := q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM employees),
			(SELECT COUNT(*) FROM employees WHERE status = 'active'),
			(SELECT COUNT(*) FROM attendance_records WHERE date = $1 AND status = 'present'),
			(SELECT COUNT(*) FROM attendance_records WHERE date = $1 AND status = 'absent'),
			(SELECT COUNT(*) FROM attendance_records WHERE date = $1 AND status = 'on_leave'),
			(SELECT COUNT(*) FROM leave_requests WHERE status = 'pending'),
			(SELECT COUNT(*) FROM regularization_requests WHERE status = 'pending'),
			(SELECT COUNT(*) FROM reimbursements WHERE status = 'pending'),
			(SELECT COUNT(*) FROM resignations WHERE status = 'pending')`, day).Scan(
		&s.TotalEmployees, &s.ActiveEmployees, &s.PresentToday, &s.AbsentToday, &s.OnLeaveToday,
		&s.PendingLeaveRequests, &s.PendingRegularizations, &s.PendingReimbursements, &s.PendingResignations,
	)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to get dashboard summary: %w", err)
	}

	var totalAmount decimal.Decimal
	var status string
	err = q.QueryRow(ctx, `
		SELECT total_amount, status FROM payroll_batches
		WHERE period_month = $1 AND period_year = $2`,
		int(day.Month()), day.Year()).Scan(&totalAmount, &status)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		s.CurrentMonthPayroll = decimal.Zero
	case err != nil:
		return dashboard.Summary{}, fmt.Errorf("failed to get current month batch: %w", err)
	default:
		s.CurrentMonthPayroll = totalAmount
		s.CurrentMonthBatchStatus = &status
	}

	return s, nil
}
