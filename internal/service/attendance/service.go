package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-core/hrms-backend-go/internal/domain/payroll"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/requestctx"
	"github.com/shopspring/decimal"
)

type AuditRecorder interface {
	Record(ctx context.Context, e audit.Entry)
}

type Service struct {
	repo         attendance.AttendanceRepository
	settingsRepo attendance.SettingsRepository
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	batchRepo    payroll.BatchRepository
	auditor      AuditRecorder
}

func NewService(
	repo attendance.AttendanceRepository,
	settingsRepo attendance.SettingsRepository,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	batchRepo payroll.BatchRepository,
	auditor AuditRecorder,
) *Service {
	return &Service{
		repo:         repo,
		settingsRepo: settingsRepo,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		batchRepo:    batchRepo,
		auditor:      auditor,
	}
}

func (s *Service) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if actor.EmployeeID == "" {
		return attendance.RecordResponse{}, employee.ErrEmployeeNotFound
	}

	settings, err := s.getSettings(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !settings.AllowSelfClockIn {
		return attendance.RecordResponse{}, attendance.ErrSelfClockInDenied
	}

	now := time.Now().UTC()
	date := truncateDay(now)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		date = truncateDay(parsed)
	}
	if date.After(truncateDay(now)) {
		return attendance.RecordResponse{}, attendance.ErrFutureDate
	}
	if err := s.ensurePeriodOpen(ctx, date); err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := s.repo.GetByEmployeeDate(ctx, actor.EmployeeID, date); err == nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	} else if !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.repo.Create(ctx, attendance.Record{
		EmployeeID: actor.EmployeeID,
		Date:       date,
		CheckIn:    &now,
		Status:     attendance.StatusPresent,
		WorkHours:  decimal.Zero,
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return toRecordResponse(rec), nil
}

func (s *Service) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if actor.EmployeeID == "" {
		return attendance.RecordResponse{}, employee.ErrEmployeeNotFound
	}

	now := time.Now().UTC()
	rec, err := s.repo.GetByEmployeeDate(ctx, actor.EmployeeID, truncateDay(now))
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.RecordResponse{}, err
	}
	if rec.CheckIn == nil || rec.CheckOut != nil {
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}

	settings, err := s.getSettings(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec.CheckOut = &now
	rec.WorkHours = workedHours(*rec.CheckIn, now)
	rec.Status = Classify(rec.WorkHours, settings)

	updated, err := s.repo.Update(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return toRecordResponse(updated), nil
}

// ManualEntry lets HR create or correct a record directly. The record
// keeps an edit trail so the aggregator treats the status as explicit.
func (s *Service) ManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.RecordResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{EmployeeID: req.EmployeeID}, user.ActionManageRecord) {
		return attendance.RecordResponse{}, user.ErrHRAccessRequired
	}
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	date = truncateDay(date)
	if date.After(truncateDay(time.Now().UTC())) {
		return attendance.RecordResponse{}, attendance.ErrFutureDate
	}
	if err := s.ensurePeriodOpen(ctx, date); err != nil {
		return attendance.RecordResponse{}, err
	}

	settings, err := s.getSettings(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.repo.GetByEmployeeDate(ctx, req.EmployeeID, date)
	isNew := errors.Is(err, attendance.ErrRecordNotFound)
	if err != nil && !isNew {
		return attendance.RecordResponse{}, err
	}
	if isNew {
		rec = attendance.Record{EmployeeID: req.EmployeeID, Date: date}
	}

	if req.CheckIn != nil {
		t := clockTimeOn(date, *req.CheckIn)
		rec.CheckIn = &t
	}
	if req.CheckOut != nil {
		t := clockTimeOn(date, *req.CheckOut)
		rec.CheckOut = &t
	}
	if rec.CheckIn != nil && rec.CheckOut != nil {
		if rec.CheckOut.Before(*rec.CheckIn) {
			return attendance.RecordResponse{}, attendance.ErrCheckOutBeforeIn
		}
		rec.WorkHours = workedHours(*rec.CheckIn, *rec.CheckOut)
	}

	switch {
	case req.Status != nil:
		rec.Status = attendance.Status(*req.Status)
	case rec.CheckIn != nil && rec.CheckOut != nil:
		rec.Status = Classify(rec.WorkHours, settings)
	case rec.Status == "":
		rec.Status = attendance.StatusPresent
	}

	rec.EditedBy = &actor.ID
	rec.EditReason = &req.Reason

	var saved attendance.Record
	if isNew {
		saved, err = s.repo.Create(ctx, rec)
	} else {
		saved, err = s.repo.Update(ctx, rec)
	}
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "manual_entry",
		Module:      "attendance",
		EntityType:  "attendance_record",
		EntityID:    saved.ID,
		PerformedBy: actor.ID,
		NewValue: map[string]interface{}{
			"employee_id": saved.EmployeeID,
			"date":        req.Date,
			"status":      string(saved.Status),
			"reason":      req.Reason,
		},
	})
	return toRecordResponse(saved), nil
}

func (s *Service) ListMonthly(ctx context.Context, employeeID string, month, year int) ([]attendance.RecordResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if !user.CanActOn(actor, user.Subject{EmployeeID: employeeID}, user.ActionViewRecord) {
		return nil, user.ErrHRAccessRequired
	}

	start, end, err := periodRange(month, year)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.GetByEmployeeRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordResponse(rec))
	}
	return out, nil
}

// Summary aggregates one employee's month. For the current month the
// range is clamped to today so future days are not counted absent.
func (s *Service) Summary(ctx context.Context, employeeID string, month, year int) (attendance.PeriodSummaryResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return attendance.PeriodSummaryResponse{}, err
	}
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if !user.CanActOn(actor, user.Subject{EmployeeID: employeeID}, user.ActionViewRecord) {
		return attendance.PeriodSummaryResponse{}, user.ErrHRAccessRequired
	}

	summary, err := s.PeriodSummary(ctx, employeeID, month, year)
	if err != nil {
		return attendance.PeriodSummaryResponse{}, err
	}
	return attendance.PeriodSummaryResponse{
		EmployeeID:       summary.EmployeeID,
		PresentDays:      summary.PresentDays,
		AbsentDays:       summary.AbsentDays,
		HalfDays:         summary.HalfDays,
		OnLeaveDays:      summary.OnLeaveDays,
		TotalWorkedHours: summary.TotalWorkedHours,
	}, nil
}

// PeriodSummary is the aggregation entry point payroll uses; it skips
// the per-request authorization that Summary applies.
func (s *Service) PeriodSummary(ctx context.Context, employeeID string, month, year int) (attendance.PeriodSummary, error) {
	start, end, err := periodRange(month, year)
	if err != nil {
		return attendance.PeriodSummary{}, err
	}
	if today := truncateDay(time.Now().UTC()); end.After(today) {
		end = today
	}
	if start.After(end) {
		return attendance.PeriodSummary{EmployeeID: employeeID}, nil
	}

	settings, err := s.getSettings(ctx)
	if err != nil {
		return attendance.PeriodSummary{}, err
	}

	records, err := s.repo.GetByEmployeeRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.PeriodSummary{}, err
	}
	leaveDates, err := s.leaveRepo.ApprovedDatesInRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.PeriodSummary{}, err
	}

	return Aggregate(employeeID, records, leaveDates, weeklyOffs(start, end), settings, start, end)
}

func (s *Service) GetSettings(ctx context.Context) (attendance.SettingsResponse, error) {
	settings, err := s.getSettings(ctx)
	if err != nil {
		return attendance.SettingsResponse{}, err
	}
	return toSettingsResponse(settings), nil
}

func (s *Service) UpdateSettings(ctx context.Context, req attendance.UpdateSettingsRequest) (attendance.SettingsResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return attendance.SettingsResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return attendance.SettingsResponse{}, user.ErrHRAccessRequired
	}
	if err := req.Validate(); err != nil {
		return attendance.SettingsResponse{}, err
	}

	settings, err := s.getSettings(ctx)
	if err != nil {
		return attendance.SettingsResponse{}, err
	}
	if req.StandardWorkHours != nil {
		settings.StandardWorkHours = *req.StandardWorkHours
	}
	if req.HalfDayThreshold != nil {
		settings.HalfDayThreshold = *req.HalfDayThreshold
	}
	if req.AllowSelfClockIn != nil {
		settings.AllowSelfClockIn = *req.AllowSelfClockIn
	}
	if req.AutoHalfDayTime != nil {
		settings.AutoHalfDayTime = *req.AutoHalfDayTime
	}

	saved, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		return attendance.SettingsResponse{}, err
	}
	return toSettingsResponse(saved), nil
}

// AutoMarkDay is the end-of-day sweep the scheduler runs at the
// configured cutoff. Open check-ins are closed at the cutoff time and
// re-classified; active employees with no record for the day get an
// absent mark so payroll does not depend on missing rows.
func (s *Service) AutoMarkDay(ctx context.Context, date time.Time) error {
	date = truncateDay(date)
	settings, err := s.getSettings(ctx)
	if err != nil {
		return err
	}
	cutoff := clockTimeOn(date, settings.AutoHalfDayTime)

	openIDs, err := s.repo.EmployeeIDsWithOpenCheckIn(ctx, date)
	if err != nil {
		return err
	}
	for _, employeeID := range openIDs {
		rec, err := s.repo.GetByEmployeeDate(ctx, employeeID, date)
		if err != nil {
			slog.Error("auto-mark: load open record failed", "employee_id", employeeID, "error", err)
			continue
		}
		rec.CheckOut = &cutoff
		rec.WorkHours = workedHours(*rec.CheckIn, cutoff)
		rec.Status = Classify(rec.WorkHours, settings)
		if _, err := s.repo.Update(ctx, rec); err != nil {
			slog.Error("auto-mark: close open check-in failed", "employee_id", employeeID, "error", err)
		}
	}

	active, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return err
	}
	marked := 0
	for _, emp := range active {
		_, err := s.repo.GetByEmployeeDate(ctx, emp.ID, date)
		if err == nil {
			continue
		}
		if !errors.Is(err, attendance.ErrRecordNotFound) {
			slog.Error("auto-mark: lookup failed", "employee_id", emp.ID, "error", err)
			continue
		}
		_, err = s.repo.Create(ctx, attendance.Record{
			EmployeeID: emp.ID,
			Date:       date,
			Status:     attendance.StatusAbsent,
			WorkHours:  decimal.Zero,
		})
		if err != nil {
			slog.Error("auto-mark: absent mark failed", "employee_id", emp.ID, "error", err)
			continue
		}
		marked++
	}

	slog.Info("attendance auto-mark complete",
		"date", date.Format("2006-01-02"),
		"closed_check_ins", len(openIDs),
		"absent_marked", marked,
	)
	return nil
}

// ensurePeriodOpen rejects writes into a month already covered by a
// processed or paid payroll batch.
func (s *Service) ensurePeriodOpen(ctx context.Context, date time.Time) error {
	batch, err := s.batchRepo.GetByPeriod(ctx, int(date.Month()), date.Year())
	if errors.Is(err, payroll.ErrBatchNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if batch.Locked() {
		return attendance.ErrPeriodLocked
	}
	return nil
}

func (s *Service) getSettings(ctx context.Context) (attendance.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, attendance.ErrSettingsNotFound) {
		return attendance.DefaultSettings(), nil
	}
	return settings, err
}

func periodRange(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %02d/%d", month, year)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1), nil
}

// weeklyOffs lists the Sundays in [start, end]; the company's only
// non-working days besides approved leave.
func weeklyOffs(start, end time.Time) []time.Time {
	var offs []time.Time
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Sunday {
			offs = append(offs, day)
		}
	}
	return offs
}

func workedHours(in, out time.Time) decimal.Decimal {
	return decimal.NewFromFloat(out.Sub(in).Hours()).Round(2)
}

func clockTimeOn(date time.Time, clock string) time.Time {
	t, _ := time.Parse("15:04", clock)
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func toRecordResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         rec.Date.Format("2006-01-02"),
		Status:       string(rec.Status),
		WorkHours:    rec.WorkHours,
		EditedBy:     rec.EditedBy,
		EditReason:   rec.EditReason,
	}
	if rec.CheckIn != nil {
		v := rec.CheckIn.Format("15:04")
		resp.CheckIn = &v
	}
	if rec.CheckOut != nil {
		v := rec.CheckOut.Format("15:04")
		resp.CheckOut = &v
	}
	return resp
}

func toSettingsResponse(s attendance.Settings) attendance.SettingsResponse {
	return attendance.SettingsResponse{
		ID:                s.ID,
		StandardWorkHours: s.StandardWorkHours,
		HalfDayThreshold:  s.HalfDayThreshold,
		AllowSelfClockIn:  s.AllowSelfClockIn,
		AutoHalfDayTime:   s.AutoHalfDayTime,
	}
}
