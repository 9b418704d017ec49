package leave

import (
	"context"
	"errors"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/leave"
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
	typeRepo     leave.LeaveTypeRepository
	requestRepo  leave.LeaveRequestRepository
	balanceRepo  leave.LeaveBalanceRepository
	employeeRepo employee.EmployeeRepository
	auditor      AuditRecorder
}

func NewService(
	db *database.DB,
	typeRepo leave.LeaveTypeRepository,
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
	employeeRepo employee.EmployeeRepository,
	auditor AuditRecorder,
) *Service {
	return &Service{
		db:           db,
		typeRepo:     typeRepo,
		requestRepo:  requestRepo,
		balanceRepo:  balanceRepo,
		employeeRepo: employeeRepo,
		auditor:      auditor,
	}
}

func (s *Service) CreateType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return leave.LeaveTypeResponse{}, user.ErrHRAccessRequired
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	lt, err := s.typeRepo.Create(ctx, leave.LeaveType{
		Name:               req.Name,
		Description:        req.Description,
		IsPaid:             isPaid,
		DefaultDaysPerYear: req.DefaultDaysPerYear,
		IsActive:           true,
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "create",
		Module:      "leave",
		EntityType:  "leave_type",
		EntityID:    lt.ID,
		PerformedBy: actor.ID,
		NewValue:    map[string]interface{}{"name": lt.Name, "is_paid": lt.IsPaid, "default_days_per_year": lt.DefaultDaysPerYear},
	})

	return toTypeResponse(lt), nil
}

func (s *Service) ListTypes(ctx context.Context, activeOnly bool) ([]leave.LeaveTypeResponse, error) {
	types, err := s.typeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		out = append(out, toTypeResponse(lt))
	}
	return out, nil
}

func (s *Service) UpdateType(ctx context.Context, req leave.UpdateLeaveTypeRequest) error {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return user.ErrHRAccessRequired
	}
	if _, err := s.typeRepo.GetByID(ctx, req.ID); err != nil {
		return err
	}
	return s.typeRepo.Update(ctx, req)
}

// DeleteType removes a leave type. Types already referenced by
// requests or balances are deactivated instead so history stays
// readable.
func (s *Service) DeleteType(ctx context.Context, id string) error {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return user.ErrHRAccessRequired
	}
	if _, err := s.typeRepo.GetByID(ctx, id); err != nil {
		return err
	}

	err = s.typeRepo.Delete(ctx, id)
	if errors.Is(err, leave.ErrLeaveTypeInUse) {
		inactive := false
		return s.typeRepo.Update(ctx, leave.UpdateLeaveTypeRequest{ID: id, IsActive: &inactive})
	}
	return err
}

func (s *Service) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.RequestResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if actor.EmployeeID == "" {
		return leave.RequestResponse{}, employee.ErrEmployeeNotFound
	}
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if emp.Status == employee.StatusTerminated {
		return leave.RequestResponse{}, employee.ErrEmployeeTerminated
	}

	lt, err := s.typeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !lt.IsActive {
		return leave.RequestResponse{}, leave.ErrLeaveTypeInactive
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	days := int(end.Sub(start).Hours()/24) + 1

	created, err := s.requestRepo.Create(ctx, leave.Request{
		EmployeeID:  actor.EmployeeID,
		LeaveTypeID: lt.ID,
		StartDate:   start,
		EndDate:     end,
		Days:        days,
		Reason:      req.Reason,
		Status:      leave.RequestPending,
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	created.LeaveTypeName = &lt.Name
	return toRequestResponse(created), nil
}

// Approve books the request against the employee's balance and marks
// it approved, all inside one transaction with the balance row locked.
// The balance row is created lazily from the type's yearly default the
// first time an employee uses a type in a given year.
func (s *Service) Approve(ctx context.Context, req leave.ProcessLeaveRequest) error {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return err
	}

	lr, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := s.authorizeProcessing(actor, lr); err != nil {
		return err
	}

	lt, err := s.typeRepo.GetByID(ctx, lr.LeaveTypeID)
	if err != nil {
		return err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		current, err := s.requestRepo.GetByID(txCtx, lr.ID)
		if err != nil {
			return err
		}

		balance, err := s.lockOrCreateBalance(txCtx, current.EmployeeID, lt, current.StartDate.Year())
		if err != nil {
			return err
		}

		if err := approve(&balance, current, lt); err != nil {
			return err
		}
		if _, err := s.balanceRepo.Update(txCtx, balance); err != nil {
			return err
		}
		return s.requestRepo.UpdateStatus(txCtx, current.ID, leave.RequestApproved, &actor.ID, req.Remarks)
	})
	if err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "approve",
		Module:      "leave",
		EntityType:  "leave_request",
		EntityID:    lr.ID,
		PerformedBy: actor.ID,
		NewValue:    map[string]interface{}{"status": string(leave.RequestApproved), "days": lr.Days},
	})
	return nil
}

func (s *Service) Reject(ctx context.Context, req leave.ProcessLeaveRequest) error {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return err
	}

	lr, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := s.authorizeProcessing(actor, lr); err != nil {
		return err
	}
	if lr.Status != leave.RequestPending {
		return leave.ErrRequestProcessed
	}

	if err := s.requestRepo.UpdateStatus(ctx, lr.ID, leave.RequestRejected, &actor.ID, req.Remarks); err != nil {
		return err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "reject",
		Module:      "leave",
		EntityType:  "leave_request",
		EntityID:    lr.ID,
		PerformedBy: actor.ID,
		NewValue:    map[string]interface{}{"status": string(leave.RequestRejected)},
	})
	return nil
}

// Withdraw cancels the caller's own request. Withdrawing an already
// approved request releases the booked days back to the balance.
func (s *Service) Withdraw(ctx context.Context, id string) error {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return err
	}

	lr, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lr.EmployeeID != actor.EmployeeID {
		return leave.ErrNotRequestOwner
	}

	switch lr.Status {
	case leave.RequestPending:
		return s.requestRepo.UpdateStatus(ctx, lr.ID, leave.RequestWithdrawn, nil, nil)
	case leave.RequestApproved:
		lt, err := s.typeRepo.GetByID(ctx, lr.LeaveTypeID)
		if err != nil {
			return err
		}
		return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			current, err := s.requestRepo.GetByID(txCtx, lr.ID)
			if err != nil {
				return err
			}
			balance, err := s.lockOrCreateBalance(txCtx, current.EmployeeID, lt, current.StartDate.Year())
			if err != nil {
				return err
			}
			if err := reverse(&balance, current); err != nil {
				return err
			}
			if _, err := s.balanceRepo.Update(txCtx, balance); err != nil {
				return err
			}
			return s.requestRepo.UpdateStatus(txCtx, current.ID, leave.RequestWithdrawn, nil, nil)
		})
	default:
		return leave.ErrRequestProcessed
	}
}

func (s *Service) GetRequest(ctx context.Context, id string) (leave.RequestResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	lr, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{EmployeeID: lr.EmployeeID}, user.ActionViewRecord) {
		return leave.RequestResponse{}, user.ErrHRAccessRequired
	}
	return toRequestResponse(lr), nil
}

// ListRequests returns all requests for HR and admin, and only the
// caller's own requests for everyone else.
func (s *Service) ListRequests(ctx context.Context, status *leave.RequestStatus) ([]leave.RequestResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return nil, err
	}

	var requests []leave.Request
	if actor.Role == user.RoleAdmin || actor.Role == user.RoleHR {
		requests, err = s.requestRepo.List(ctx, status)
	} else {
		requests, err = s.requestRepo.ListByEmployee(ctx, actor.EmployeeID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toRequestResponse(r))
	}
	return out, nil
}

func (s *Service) Balances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
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
	if year == 0 {
		year = time.Now().Year()
	}

	balances, err := s.balanceRepo.ListByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	out := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, leave.BalanceResponse{
			ID:            b.ID,
			EmployeeID:    b.EmployeeID,
			LeaveTypeID:   b.LeaveTypeID,
			LeaveTypeName: b.LeaveTypeName,
			Year:          b.Year,
			Total:         b.Total,
			Used:          b.Used,
			Remaining:     b.Remaining,
		})
	}
	return out, nil
}

func (s *Service) authorizeProcessing(actor user.Actor, lr leave.Request) error {
	subject := user.Subject{EmployeeID: lr.EmployeeID, Role: user.RoleEmployee}
	if lr.EmployeeRole != nil {
		subject.Role = user.Role(*lr.EmployeeRole)
	}
	if user.CanActOn(actor, subject, user.ActionApproveRequest) {
		return nil
	}
	if actor.EmployeeID != "" && actor.EmployeeID == lr.EmployeeID {
		return user.ErrSelfActionForbidden
	}
	if subject.Role == user.RoleHR && actor.Role != user.RoleAdmin {
		return user.ErrHRSubjectRequiresAdmin
	}
	return user.ErrHRAccessRequired
}

func (s *Service) lockOrCreateBalance(ctx context.Context, employeeID string, lt leave.LeaveType, year int) (leave.Balance, error) {
	balance, err := s.balanceRepo.GetByEmployeeTypeYearForUpdate(ctx, employeeID, lt.ID, year)
	if errors.Is(err, leave.ErrBalanceNotFound) {
		return s.balanceRepo.Create(ctx, leave.Balance{
			EmployeeID:  employeeID,
			LeaveTypeID: lt.ID,
			Year:        year,
			Total:       lt.DefaultDaysPerYear,
			Used:        0,
			Remaining:   lt.DefaultDaysPerYear,
		})
	}
	return balance, err
}

func toTypeResponse(lt leave.LeaveType) leave.LeaveTypeResponse {
	return leave.LeaveTypeResponse{
		ID:                 lt.ID,
		Name:               lt.Name,
		Description:        lt.Description,
		IsPaid:             lt.IsPaid,
		DefaultDaysPerYear: lt.DefaultDaysPerYear,
		IsActive:           lt.IsActive,
	}
}

func toRequestResponse(r leave.Request) leave.RequestResponse {
	return leave.RequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		LeaveTypeID:   r.LeaveTypeID,
		LeaveTypeName: r.LeaveTypeName,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		Days:          r.Days,
		Reason:        r.Reason,
		Status:        string(r.Status),
		ProcessedBy:   r.ProcessedBy,
		Remarks:       r.Remarks,
	}
}
