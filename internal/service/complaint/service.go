package complaint

import (
	"context"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/domain/complaint"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/requestctx"
)

type AuditRecorder interface {
	Record(ctx context.Context, e audit.Entry)
}

type Service struct {
	repo    complaint.Repository
	auditor AuditRecorder
}

func NewService(repo complaint.Repository, auditor AuditRecorder) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Submit(ctx context.Context, req complaint.SubmitRequest) (complaint.Response, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return complaint.Response{}, err
	}
	if actor.EmployeeID == "" {
		return complaint.Response{}, employee.ErrEmployeeNotFound
	}
	if err := req.Validate(); err != nil {
		return complaint.Response{}, err
	}

	priority := complaint.PriorityMedium
	if req.Priority != nil {
		priority = complaint.Priority(*req.Priority)
	}

	created, err := s.repo.Create(ctx, complaint.Complaint{
		EmployeeID:  actor.EmployeeID,
		Subject:     req.Subject,
		Description: req.Description,
		Category:    req.Category,
		Priority:    priority,
		IsAnonymous: req.IsAnonymous,
		Status:      complaint.StatusOpen,
	})
	if err != nil {
		return complaint.Response{}, err
	}
	return toResponse(created, actor), nil
}

// Respond records an HR response and moves the complaint to in_progress,
// or straight to closed when the request says so.
func (s *Service) Respond(ctx context.Context, req complaint.RespondRequest) (complaint.Response, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return complaint.Response{}, err
	}
	if err := req.Validate(); err != nil {
		return complaint.Response{}, err
	}

	c, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return complaint.Response{}, err
	}
	if c.Status == complaint.StatusClosed {
		return complaint.Response{}, complaint.ErrAlreadyClosed
	}
	if err := authorizeProcessing(actor, c); err != nil {
		return complaint.Response{}, err
	}

	now := time.Now().UTC()
	c.Response = &req.Response
	c.Status = complaint.StatusInProgress
	if req.Status != nil {
		c.Status = complaint.Status(*req.Status)
	}
	c.RespondedBy = &actor.ID
	c.RespondedAt = &now

	if err := s.repo.Update(ctx, c); err != nil {
		return complaint.Response{}, err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "respond",
		Module:      "complaint",
		EntityType:  "complaint",
		EntityID:    c.ID,
		PerformedBy: actor.ID,
		NewValue:    map[string]interface{}{"status": string(c.Status)},
	})
	return toResponse(c, actor), nil
}

func (s *Service) Close(ctx context.Context, id string) error {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.Status == complaint.StatusClosed {
		return complaint.ErrAlreadyClosed
	}
	if err := authorizeProcessing(actor, c); err != nil {
		return err
	}

	c.Status = complaint.StatusClosed
	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "close",
		Module:      "complaint",
		EntityType:  "complaint",
		EntityID:    c.ID,
		PerformedBy: actor.ID,
		NewValue:    map[string]interface{}{"status": string(complaint.StatusClosed)},
	})
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (complaint.Response, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return complaint.Response{}, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return complaint.Response{}, err
	}
	if !user.CanActOn(actor, user.Subject{EmployeeID: c.EmployeeID}, user.ActionViewRecord) {
		return complaint.Response{}, user.ErrHRAccessRequired
	}
	return toResponse(c, actor), nil
}

func (s *Service) List(ctx context.Context, status *complaint.Status) ([]complaint.Response, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return nil, err
	}

	var complaints []complaint.Complaint
	switch actor.Role {
	case user.RoleAdmin:
		complaints, err = s.repo.List(ctx, status, false)
	case user.RoleHR:
		complaints, err = s.repo.List(ctx, status, true)
	default:
		complaints, err = s.repo.ListByEmployee(ctx, actor.EmployeeID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]complaint.Response, 0, len(complaints))
	for _, c := range complaints {
		out = append(out, toResponse(c, actor))
	}
	return out, nil
}

func authorizeProcessing(actor user.Actor, c complaint.Complaint) error {
	subject := user.Subject{EmployeeID: c.EmployeeID, Role: user.RoleEmployee}
	if c.EmployeeRole != nil {
		subject.Role = user.Role(*c.EmployeeRole)
	}
	if user.CanActOn(actor, subject, user.ActionApproveRequest) {
		return nil
	}
	if actor.EmployeeID != "" && actor.EmployeeID == c.EmployeeID {
		return user.ErrSelfActionForbidden
	}
	if subject.Role == user.RoleHR && actor.Role != user.RoleAdmin {
		return user.ErrHRSubjectRequiresAdmin
	}
	return user.ErrHRAccessRequired
}

// toResponse hides the complainant's identity on anonymous complaints
// from everyone but admins and the complainant themselves.
func toResponse(c complaint.Complaint, actor user.Actor) complaint.Response {
	resp := complaint.Response{
		ID:          c.ID,
		Subject:     c.Subject,
		Description: c.Description,
		Category:    c.Category,
		Priority:    string(c.Priority),
		IsAnonymous: c.IsAnonymous,
		Status:      string(c.Status),
		Response:    c.Response,
		CreatedAt:   c.CreatedAt.Format("2006-01-02"),
	}
	if c.RespondedAt != nil {
		t := c.RespondedAt.Format(time.RFC3339)
		resp.RespondedAt = &t
	}

	reveal := !c.IsAnonymous ||
		actor.Role == user.RoleAdmin ||
		(actor.EmployeeID != "" && actor.EmployeeID == c.EmployeeID)
	if reveal {
		resp.EmployeeID = c.EmployeeID
		resp.EmployeeName = c.EmployeeName
	}
	return resp
}
