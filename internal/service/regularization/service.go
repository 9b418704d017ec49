package regularization

import (
	"context"
	"errors"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/domain/payroll"
	"github.com/hrms-core/hrms-backend-go/internal/domain/regularization"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/requestctx"
	"github.com/hrms-core/hrms-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type AuditRecorder interface {
	Record(ctx context.Context, e audit.Entry)
}

type Service struct {
	db             *database.DB
	repo           regularization.Repository
	attendanceRepo attendance.AttendanceRepository
	settingsRepo   attendance.SettingsRepository
	batchRepo      payroll.BatchRepository
	auditor        AuditRecorder
}

func NewService(
	db *database.DB,
	repo regularization.Repository,
	attendanceRepo attendance.AttendanceRepository,
	settingsRepo attendance.SettingsRepository,
	batchRepo payroll.BatchRepository,
	auditor AuditRecorder,
) *Service {
	return &Service{
		db:             db,
		repo:           repo,
		attendanceRepo: attendanceRepo,
		settingsRepo:   settingsRepo,
		batchRepo:      batchRepo,
		auditor:        auditor,
	}
}

func (s *Service) Submit(ctx context.Context, req regularization.SubmitRequest) (regularization.RequestResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return regularization.RequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return regularization.RequestResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.AttendanceDate)
	date = truncateDay(date)
	if err := s.ensurePeriodOpen(ctx, date); err != nil {
		return regularization.RequestResponse{}, err
	}

	r := regularization.Request{
		EmployeeID:     actor.EmployeeID,
		AttendanceDate: date,
		Type:           regularization.RequestType(req.Type),
		NewStatus:      req.NewStatus,
		Reason:         req.Reason,
		Status:         regularization.StatusPending,
	}
	if req.NewCheckIn != nil {
		t := clockTimeOn(date, *req.NewCheckIn)
		r.NewCheckIn = &t
	}
	if req.NewCheckOut != nil {
		t := clockTimeOn(date, *req.NewCheckOut)
		r.NewCheckOut = &t
	}

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return regularization.RequestResponse{}, err
	}
	return toResponse(created), nil
}

// Process decides a pending request. Approval writes the requested
// change through to the attendance record inside the same transaction,
// creating the record when the day has none. The attendance date must
// not fall inside a processed or paid payroll period.
func (s *Service) Process(ctx context.Context, req regularization.ProcessRequest) (regularization.RequestResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return regularization.RequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return regularization.RequestResponse{}, err
	}

	r, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return regularization.RequestResponse{}, err
	}
	if r.Terminal() {
		return regularization.RequestResponse{}, regularization.ErrRequestProcessed
	}
	if err := s.authorizeProcessing(actor, r); err != nil {
		return regularization.RequestResponse{}, err
	}

	decision := regularization.Status(req.Status)
	if decision == regularization.StatusApproved {
		if err := s.ensurePeriodOpen(ctx, r.AttendanceDate); err != nil {
			return regularization.RequestResponse{}, err
		}
	}

	var processed regularization.Request
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		current, err := s.repo.GetByID(txCtx, r.ID)
		if err != nil {
			return err
		}
		if current.Terminal() {
			return regularization.ErrRequestProcessed
		}

		if decision == regularization.StatusApproved {
			if err := s.applyToRecord(txCtx, current, actor.ID); err != nil {
				return err
			}
		}

		current.Status = decision
		current.Remarks = req.Remarks
		current.ApprovedBy = &actor.ID
		processed, err = s.repo.Update(txCtx, current)
		return err
	})
	if err != nil {
		return regularization.RequestResponse{}, err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      string(decision),
		Module:      "regularization",
		EntityType:  "regularization_request",
		EntityID:    processed.ID,
		PerformedBy: actor.ID,
		NewValue: map[string]interface{}{
			"status":          string(decision),
			"attendance_date": processed.AttendanceDate.Format("2006-01-02"),
			"type":            string(processed.Type),
		},
	})
	return toResponse(processed), nil
}

func (s *Service) Get(ctx context.Context, id string) (regularization.RequestResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return regularization.RequestResponse{}, err
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return regularization.RequestResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{EmployeeID: r.EmployeeID}, user.ActionViewRecord) {
		return regularization.RequestResponse{}, user.ErrHRAccessRequired
	}
	return toResponse(r), nil
}

// List shows HR the pending queue without admin-submitted requests;
// admin sees everything, employees see their own.
func (s *Service) List(ctx context.Context, status *regularization.Status) ([]regularization.RequestResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return nil, err
	}

	var requests []regularization.Request
	switch actor.Role {
	case user.RoleAdmin:
		requests, err = s.repo.List(ctx, status, false)
	case user.RoleHR:
		requests, err = s.repo.List(ctx, status, true)
	default:
		requests, err = s.repo.ListByEmployee(ctx, actor.EmployeeID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]regularization.RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toResponse(r))
	}
	return out, nil
}

// applyToRecord writes the approved change to the attendance record,
// creating one when the day has no record yet. Only the requested
// fields change and the record is stamped with the approver and the
// request's reason.
func (s *Service) applyToRecord(ctx context.Context, r regularization.Request, approverID string) error {
	rec, err := s.attendanceRepo.GetByEmployeeDate(ctx, r.EmployeeID, r.AttendanceDate)
	isNew := errors.Is(err, attendance.ErrRecordNotFound)
	if err != nil && !isNew {
		return err
	}
	if isNew {
		rec = attendance.Record{
			EmployeeID: r.EmployeeID,
			Date:       r.AttendanceDate,
			Status:     attendance.StatusAbsent,
			WorkHours:  decimal.Zero,
		}
	}

	settings, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, attendance.ErrSettingsNotFound) {
		settings = attendance.DefaultSettings()
	} else if err != nil {
		return err
	}

	rec, err = applyChange(rec, r, settings, approverID)
	if err != nil {
		return err
	}

	if isNew {
		_, err = s.attendanceRepo.Create(ctx, rec)
	} else {
		_, err = s.attendanceRepo.Update(ctx, rec)
	}
	return err
}

func (s *Service) authorizeProcessing(actor user.Actor, r regularization.Request) error {
	subject := user.Subject{EmployeeID: r.EmployeeID, Role: user.RoleEmployee}
	if r.EmployeeRole != nil {
		subject.Role = user.Role(*r.EmployeeRole)
	}
	if user.CanActOn(actor, subject, user.ActionApproveRequest) {
		return nil
	}
	if actor.EmployeeID != "" && actor.EmployeeID == r.EmployeeID {
		return user.ErrSelfActionForbidden
	}
	if subject.Role == user.RoleHR && actor.Role != user.RoleAdmin {
		return user.ErrHRSubjectRequiresAdmin
	}
	return user.ErrHRAccessRequired
}

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

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clockTimeOn(date time.Time, clock string) time.Time {
	if t, err := time.Parse(time.RFC3339, clock); err == nil {
		return t.UTC()
	}
	t, _ := time.Parse("15:04", clock)
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func toResponse(r regularization.Request) regularization.RequestResponse {
	resp := regularization.RequestResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		AttendanceDate: r.AttendanceDate.Format("2006-01-02"),
		Type:           string(r.Type),
		NewStatus:      r.NewStatus,
		Reason:         r.Reason,
		Status:         string(r.Status),
		Remarks:        r.Remarks,
		ApprovedBy:     r.ApprovedBy,
	}
	if r.NewCheckIn != nil {
		v := r.NewCheckIn.Format("15:04")
		resp.NewCheckIn = &v
	}
	if r.NewCheckOut != nil {
		v := r.NewCheckOut.Format("15:04")
		resp.NewCheckOut = &v
	}
	return resp
}
