package employee

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/requestctx"
)

type AuditRecorder interface {
	Record(ctx context.Context, e audit.Entry)
}

type Service struct {
	repo    employee.EmployeeRepository
	auditor AuditRecorder
}

func NewService(repo employee.EmployeeRepository, auditor AuditRecorder) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return employee.EmployeeResponse{}, user.ErrHRAccessRequired
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	code := req.EmployeeCode
	if code == "" {
		code = "EMP-" + strings.ToUpper(uuid.NewString()[:8])
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)
	emp := employee.Employee{
		EmployeeCode:         code,
		FullName:             req.FullName,
		Email:                req.Email,
		PhoneNumber:          req.PhoneNumber,
		Department:           req.Department,
		Position:             req.Position,
		HireDate:             hireDate,
		Status:               employee.StatusActive,
		BaseSalary:           req.BaseSalary,
		PFPercentage:         req.PFPercentage,
		ESIPercentage:        req.ESIPercentage,
		AbsentDeductionValue: req.AbsentDeductionValue,
	}
	if req.AbsentDeductionType != nil {
		t := employee.DeductionType(*req.AbsentDeductionType)
		emp.AbsentDeductionType = &t
	}

	created, err := s.repo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "create",
		Module:      "employee",
		EntityType:  "employee",
		EntityID:    created.ID,
		PerformedBy: actor.ID,
		NewValue: map[string]interface{}{
			"employee_code": created.EmployeeCode,
			"full_name":     created.FullName,
			"email":         created.Email,
		},
	})
	return toResponse(created), nil
}

func (s *Service) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{EmployeeID: id}, user.ActionViewRecord) {
		return employee.EmployeeResponse{}, user.ErrHRAccessRequired
	}

	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	resp := toResponse(emp)
	// Employees see their own profile without payroll attributes.
	if actor.Role == user.RoleEmployee {
		resp.BaseSalary = nil
		resp.PFPercentage = nil
		resp.ESIPercentage = nil
		resp.AbsentDeductionType = nil
		resp.AbsentDeductionValue = nil
	}
	return resp, nil
}

func (s *Service) List(ctx context.Context, status *employee.Status) ([]employee.EmployeeResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return nil, user.ErrHRAccessRequired
	}

	employees, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, toResponse(emp))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{EmployeeID: req.ID}, user.ActionManageRecord) {
		return employee.EmployeeResponse{}, user.ErrHRAccessRequired
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	before, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if before.Status == employee.StatusTerminated {
		return employee.EmployeeResponse{}, employee.ErrEmployeeTerminated
	}

	if err := s.repo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}
	after, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "update",
		Module:      "employee",
		EntityType:  "employee",
		EntityID:    req.ID,
		PerformedBy: actor.ID,
		OldValue:    map[string]interface{}{"full_name": before.FullName, "status": string(before.Status)},
		NewValue:    map[string]interface{}{"full_name": after.FullName, "status": string(after.Status)},
	})
	return toResponse(after), nil
}

func toResponse(e employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:                   e.ID,
		EmployeeCode:         e.EmployeeCode,
		FullName:             e.FullName,
		Email:                e.Email,
		PhoneNumber:          e.PhoneNumber,
		Department:           e.Department,
		Position:             e.Position,
		HireDate:             e.HireDate.Format("2006-01-02"),
		Status:               string(e.Status),
		BaseSalary:           e.BaseSalary,
		PFPercentage:         e.PFPercentage,
		ESIPercentage:        e.ESIPercentage,
		AbsentDeductionValue: e.AbsentDeductionValue,
	}
	if e.AbsentDeductionType != nil {
		t := string(*e.AbsentDeductionType)
		resp.AbsentDeductionType = &t
	}
	return resp
}
