package reimbursement

import (
	"context"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/reimbursement"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/requestctx"
)

type AuditRecorder interface {
	Record(ctx context.Context, e audit.Entry)
}

type Service struct {
	repo    reimbursement.Repository
	auditor AuditRecorder
}

func NewService(repo reimbursement.Repository, auditor AuditRecorder) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Submit(ctx context.Context, req reimbursement.SubmitRequest) (reimbursement.Response, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return reimbursement.Response{}, err
	}
	if actor.EmployeeID == "" {
		return reimbursement.Response{}, employee.ErrEmployeeNotFound
	}
	if err := req.Validate(); err != nil {
		return reimbursement.Response{}, err
	}

	receiptDate, _ := time.Parse("2006-01-02", req.ReceiptDate)
	created, err := s.repo.Create(ctx, reimbursement.Reimbursement{
		EmployeeID:  actor.EmployeeID,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		ReceiptDate: receiptDate,
		Status:      reimbursement.StatusPending,
	})
	if err != nil {
		return reimbursement.Response{}, err
	}
	return toResponse(created), nil
}

// Process approves or rejects a pending claim. Approved claims stay
// unpaid until a payroll batch folds them into a slip.
func (s *Service) Process(ctx context.Context, req reimbursement.ProcessRequest) error {
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
	if r.Status != reimbursement.StatusPending {
		return reimbursement.ErrAlreadyProcessed
	}
	if err := authorizeProcessing(actor, r.EmployeeID, r.EmployeeRole); err != nil {
		return err
	}

	status := reimbursement.Status(req.Status)
	if err := s.repo.UpdateStatus(ctx, r.ID, status, &actor.ID, req.Remarks); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      req.Status,
		Module:      "reimbursement",
		EntityType:  "reimbursement",
		EntityID:    r.ID,
		PerformedBy: actor.ID,
		NewValue:    map[string]interface{}{"status": req.Status, "amount": r.Amount.String()},
	})
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (reimbursement.Response, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return reimbursement.Response{}, err
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return reimbursement.Response{}, err
	}
	if !user.CanActOn(actor, user.Subject{EmployeeID: r.EmployeeID}, user.ActionViewRecord) {
		return reimbursement.Response{}, user.ErrHRAccessRequired
	}
	return toResponse(r), nil
}

func (s *Service) List(ctx context.Context, status *reimbursement.Status) ([]reimbursement.Response, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return nil, err
	}

	var claims []reimbursement.Reimbursement
	if actor.Role == user.RoleAdmin || actor.Role == user.RoleHR {
		claims, err = s.repo.List(ctx, status)
	} else {
		claims, err = s.repo.ListByEmployee(ctx, actor.EmployeeID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]reimbursement.Response, 0, len(claims))
	for _, r := range claims {
		out = append(out, toResponse(r))
	}
	return out, nil
}

func authorizeProcessing(actor user.Actor, subjectEmployeeID string, subjectRole *string) error {
	subject := user.Subject{EmployeeID: subjectEmployeeID, Role: user.RoleEmployee}
	if subjectRole != nil {
		subject.Role = user.Role(*subjectRole)
	}
	if user.CanActOn(actor, subject, user.ActionApproveRequest) {
		return nil
	}
	if actor.EmployeeID != "" && actor.EmployeeID == subjectEmployeeID {
		return user.ErrSelfActionForbidden
	}
	if subject.Role == user.RoleHR && actor.Role != user.RoleAdmin {
		return user.ErrHRSubjectRequiresAdmin
	}
	return user.ErrHRAccessRequired
}

func toResponse(r reimbursement.Reimbursement) reimbursement.Response {
	return reimbursement.Response{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Category:     r.Category,
		Amount:       r.Amount,
		Description:  r.Description,
		ReceiptDate:  r.ReceiptDate.Format("2006-01-02"),
		Status:       string(r.Status),
		Remarks:      r.Remarks,
		BatchID:      r.BatchID,
	}
}
