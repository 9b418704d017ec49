package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `a.id, a.employee_id, a.date, a.check_in, a.check_out, a.status, a.work_hours,
	a.edited_by, a.edit_reason, a.created_at, a.updated_at, e.full_name`

func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (employee_id, date, check_in, check_out, status, work_hours, edited_by, edit_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	created := rec
	err := q.QueryRow(ctx, query,
		rec.EmployeeID, rec.Date, rec.CheckIn, rec.CheckOut, rec.Status, rec.WorkHours, rec.EditedBy, rec.EditReason,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrRecordExists
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return created, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date
	`
	return r.list(ctx, query, employeeID, start, end)
}

func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date = $1
		ORDER BY e.full_name
	`
	return r.list(ctx, query, date)
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_in = $1, check_out = $2, status = $3, work_hours = $4,
			edited_by = $5, edit_reason = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	updated := rec
	err := q.QueryRow(ctx, query,
		rec.CheckIn, rec.CheckOut, rec.Status, rec.WorkHours, rec.EditedBy, rec.EditReason, rec.ID,
	).Scan(&updated.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to update attendance record %s: %w", rec.ID, err)
	}
	return updated, nil
}

func (r *attendanceRepositoryImpl) EmployeeIDsWithOpenCheckIn(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT employee_id FROM attendance_records
		WHERE date = $1 AND check_in IS NOT NULL AND check_out IS NULL`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status, &rec.WorkHours,
		&rec.EditedBy, &rec.EditReason, &rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
	)
	return rec, err
}

type attendanceSettingsRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceSettingsRepository(db *database.DB) attendance.SettingsRepository {
	return &attendanceSettingsRepositoryImpl{db: db}
}

func (r *attendanceSettingsRepositoryImpl) Get(ctx context.Context) (attendance.Settings, error) {
	q := GetQuerier(ctx, r.db)

	var s attendance.Settings
	err := q.QueryRow(ctx, `
		SELECT id, standard_work_hours, half_day_threshold, allow_self_clock_in, auto_half_day_time, created_at, updated_at
		FROM attendance_settings
		LIMIT 1`).Scan(
		&s.ID, &s.StandardWorkHours, &s.HalfDayThreshold, &s.AllowSelfClockIn, &s.AutoHalfDayTime, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Settings{}, attendance.ErrSettingsNotFound
	}
	if err != nil {
		return attendance.Settings{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}
	return s, nil
}

func (r *attendanceSettingsRepositoryImpl) Upsert(ctx context.Context, s attendance.Settings) (attendance.Settings, error) {
	q := GetQuerier(ctx, r.db)

	// Single configuration row, keyed by a fixed slot.
	query := `
		INSERT INTO attendance_settings (slot, standard_work_hours, half_day_threshold, allow_self_clock_in, auto_half_day_time)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (slot) DO UPDATE SET
			standard_work_hours = EXCLUDED.standard_work_hours,
			half_day_threshold = EXCLUDED.half_day_threshold,
			allow_self_clock_in = EXCLUDED.allow_self_clock_in,
			auto_half_day_time = EXCLUDED.auto_half_day_time,
			updated_at = NOW()
		RETURNING id, standard_work_hours, half_day_threshold, allow_self_clock_in, auto_half_day_time, created_at, updated_at
	`

	var saved attendance.Settings
	err := q.QueryRow(ctx, query,
		s.StandardWorkHours, s.HalfDayThreshold, s.AllowSelfClockIn, s.AutoHalfDayTime,
	).Scan(
		&saved.ID, &saved.StandardWorkHours, &saved.HalfDayThreshold, &saved.AllowSelfClockIn,
		&saved.AutoHalfDayTime, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return attendance.Settings{}, fmt.Errorf("failed to upsert attendance settings: %w", err)
	}
	return saved, nil
}
