package resignation

import (
	"context"
	"errors"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/resignation"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/requestctx"
	"github.com/hrms-core/hrms-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type AuditRecorder interface {
	Record(ctx context.Context, e audit.Entry)
}

type Service struct {
	db           *database.DB
	repo         resignation.Repository
	employeeRepo employee.EmployeeRepository
	auditor      AuditRecorder
}

func NewService(db *database.DB, repo resignation.Repository, employeeRepo employee.EmployeeRepository, auditor AuditRecorder) *Service {
	return &Service{db: db, repo: repo, employeeRepo: employeeRepo, auditor: auditor}
}

func (s *Service) Submit(ctx context.Context, req resignation.SubmitRequest) (resignation.Response, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return resignation.Response{}, err
	}
	if actor.EmployeeID == "" {
		return resignation.Response{}, employee.ErrEmployeeNotFound
	}
	if err := req.Validate(); err != nil {
		return resignation.Response{}, err
	}

	if _, err := s.repo.GetActiveByEmployee(ctx, actor.EmployeeID); err == nil {
		return resignation.Response{}, resignation.ErrResignationActive
	} else if !errors.Is(err, resignation.ErrNotFound) {
		return resignation.Response{}, err
	}

	noticeDate, _ := time.Parse("2006-01-02", req.NoticeDate)
	lastWorkingDay, _ := time.Parse("2006-01-02", req.LastWorkingDay)

	created, err := s.repo.Create(ctx, resignation.Resignation{
		EmployeeID:     actor.EmployeeID,
		NoticeDate:     noticeDate,
		LastWorkingDay: lastWorkingDay,
		Reason:         req.Reason,
		Status:         resignation.StatusPending,
	})
	if err != nil {
		return resignation.Response{}, err
	}
	return toResponse(created), nil
}

// Process decides a pending resignation. Approval terminates the
// employee and clears their payroll attributes in the same
// transaction; generated slips are untouched.
func (s *Service) Process(ctx context.Context, req resignation.ProcessRequest) error {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	r, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if r.Status != resignation.StatusPending {
		return resignation.ErrAlreadyProcessed
	}
	if err := s.authorizeProcessing(actor, r); err != nil {
		return err
	}

	status := resignation.Status(req.Status)
	if status == resignation.StatusRejected {
		if err := s.repo.UpdateStatus(ctx, r.ID, status, &actor.ID, req.Remarks); err != nil {
			return err
		}
	} else {
		err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			if err := s.repo.UpdateStatus(txCtx, r.ID, resignation.StatusApproved, &actor.ID, req.Remarks); err != nil {
				return err
			}
			if err := s.employeeRepo.SetStatus(txCtx, r.EmployeeID, employee.StatusTerminated); err != nil {
				return err
			}
			return s.employeeRepo.RedactFinancials(txCtx, r.EmployeeID)
		})
		if err != nil {
			return err
		}
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      req.Status,
		Module:      "resignation",
		EntityType:  "resignation",
		EntityID:    r.ID,
		PerformedBy: actor.ID,
		NewValue: map[string]interface{}{
			"status":           req.Status,
			"employee_id":      r.EmployeeID,
			"last_working_day": r.LastWorkingDay.Format("2006-01-02"),
		},
	})
	return nil
}

// Withdraw cancels the caller's own pending resignation.
func (s *Service) Withdraw(ctx context.Context, id string) error {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return err
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r.EmployeeID != actor.EmployeeID {
		return user.ErrHRAccessRequired
	}
	if r.Status != resignation.StatusPending {
		return resignation.ErrAlreadyProcessed
	}
	return s.repo.UpdateStatus(ctx, r.ID, resignation.StatusWithdrawn, nil, nil)
}

func (s *Service) Get(ctx context.Context, id string) (resignation.Response, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return resignation.Response{}, err
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return resignation.Response{}, err
	}
	if !user.CanActOn(actor, user.Subject{EmployeeID: r.EmployeeID}, user.ActionViewRecord) {
		return resignation.Response{}, user.ErrHRAccessRequired
	}
	return toResponse(r), nil
}

func (s *Service) List(ctx context.Context, status *resignation.Status) ([]resignation.Response, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return nil, user.ErrHRAccessRequired
	}

	resignations, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]resignation.Response, 0, len(resignations))
	for _, r := range resignations {
		out = append(out, toResponse(r))
	}
	return out, nil
}

func (s *Service) authorizeProcessing(actor user.Actor, r resignation.Resignation) error {
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

func toResponse(r resignation.Resignation) resignation.Response {
	return resignation.Response{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		NoticeDate:     r.NoticeDate.Format("2006-01-02"),
		LastWorkingDay: r.LastWorkingDay.Format("2006-01-02"),
		Reason:         r.Reason,
		Status:         string(r.Status),
		Remarks:        r.Remarks,
	}
}
