package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/payroll"
	"github.com/hrms-core/hrms-backend-go/internal/domain/reimbursement"
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

// Summarizer aggregates one employee's attendance for a period.
// Implemented by the attendance service.
type Summarizer interface {
	PeriodSummary(ctx context.Context, employeeID string, month, year int) (attendance.PeriodSummary, error)
}

type Service struct {
	db                *database.DB
	settingsRepo      payroll.SettingsRepository
	batchRepo         payroll.BatchRepository
	reimbursementRepo reimbursement.Repository
	employeeRepo      employee.EmployeeRepository
	summarizer        Summarizer
	auditor           AuditRecorder
}

func NewService(
	db *database.DB,
	settingsRepo payroll.SettingsRepository,
	batchRepo payroll.BatchRepository,
	reimbursementRepo reimbursement.Repository,
	employeeRepo employee.EmployeeRepository,
	summarizer Summarizer,
	auditor AuditRecorder,
) *Service {
	return &Service{
		db:                db,
		settingsRepo:      settingsRepo,
		batchRepo:         batchRepo,
		reimbursementRepo: reimbursementRepo,
		employeeRepo:      employeeRepo,
		summarizer:        summarizer,
		auditor:           auditor,
	}
}

func (s *Service) GetSettings(ctx context.Context) (payroll.SettingsResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return payroll.SettingsResponse{}, user.ErrHRAccessRequired
	}

	settings, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, payroll.ErrSettingsNotFound) {
		settings = payroll.DefaultSettings()
	} else if err != nil {
		return payroll.SettingsResponse{}, err
	}
	return toSettingsResponse(settings), nil
}

func (s *Service) UpdateSettings(ctx context.Context, req payroll.UpdateSettingsRequest) (payroll.SettingsResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return payroll.SettingsResponse{}, user.ErrHRAccessRequired
	}
	if err := req.Validate(); err != nil {
		return payroll.SettingsResponse{}, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, payroll.ErrSettingsNotFound) {
		settings = payroll.DefaultSettings()
	} else if err != nil {
		return payroll.SettingsResponse{}, err
	}
	if req.DefaultPFPercentage != nil {
		settings.DefaultPFPercentage = *req.DefaultPFPercentage
	}
	if req.DefaultESIPercentage != nil {
		settings.DefaultESIPercentage = *req.DefaultESIPercentage
	}
	if req.DefaultAbsentDeductionType != nil {
		settings.DefaultAbsentDeductionType = employee.DeductionType(*req.DefaultAbsentDeductionType)
	}
	if req.DefaultAbsentDeductionValue != nil {
		settings.DefaultAbsentDeductionValue = *req.DefaultAbsentDeductionValue
	}

	saved, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "update",
		Module:      "payroll",
		EntityType:  "payroll_settings",
		EntityID:    saved.ID,
		PerformedBy: actor.ID,
		NewValue: map[string]interface{}{
			"default_pf_percentage":          saved.DefaultPFPercentage.String(),
			"default_esi_percentage":         saved.DefaultESIPercentage.String(),
			"default_absent_deduction_type":  string(saved.DefaultAbsentDeductionType),
			"default_absent_deduction_value": saved.DefaultAbsentDeductionValue.String(),
		},
	})
	return toSettingsResponse(saved), nil
}

// ProcessBatch runs payroll for one period. One slip per payable
// employee; an employee the calculator rejects becomes a failure entry
// and the batch still completes for the rest. A period with an
// existing processed batch is refused unless force is set, which
// discards the old slips and recomputes. Paid batches are never
// re-run.
func (s *Service) ProcessBatch(ctx context.Context, req payroll.ProcessBatchRequest) (payroll.BatchResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return payroll.BatchResponse{}, user.ErrHRAccessRequired
	}
	if err := req.Validate(); err != nil {
		return payroll.BatchResponse{}, err
	}

	existing, err := s.batchRepo.GetByPeriod(ctx, req.PeriodMonth, req.PeriodYear)
	haveExisting := err == nil
	if err != nil && !errors.Is(err, payroll.ErrBatchNotFound) {
		return payroll.BatchResponse{}, err
	}
	if haveExisting {
		if existing.Status == payroll.BatchPaid {
			return payroll.BatchResponse{}, payroll.ErrBatchPaid
		}
		if existing.Status == payroll.BatchProcessed && !req.Force {
			return payroll.BatchResponse{}, payroll.ErrBatchExists
		}
	}

	var settings *payroll.Settings
	if cfg, err := s.settingsRepo.Get(ctx); err == nil {
		settings = &cfg
	} else if !errors.Is(err, payroll.ErrSettingsNotFound) {
		return payroll.BatchResponse{}, err
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	inputs := make([]slipInput, 0, len(employees))
	for _, emp := range employees {
		summary, err := s.summarizer.PeriodSummary(ctx, emp.ID, req.PeriodMonth, req.PeriodYear)
		if err != nil {
			return payroll.BatchResponse{}, err
		}
		pending, err := s.reimbursementRepo.ApprovedUnpaidByEmployee(ctx, emp.ID)
		if err != nil {
			return payroll.BatchResponse{}, err
		}
		reimbursed := decimal.Zero
		ids := make([]string, 0, len(pending))
		for _, r := range pending {
			reimbursed = reimbursed.Add(r.Amount)
			ids = append(ids, r.ID)
		}
		inputs = append(inputs, slipInput{
			Employee:         emp,
			Summary:          summary,
			Reimbursed:       reimbursed,
			ReimbursementIDs: ids,
		})
	}

	slips, failures := buildSlips(inputs, settings)
	totalEmployees, totalAmount := batchTotals(slips)
	now := time.Now().UTC()

	var batch payroll.Batch
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if haveExisting {
			if err := s.batchRepo.DeleteSlips(txCtx, existing.ID); err != nil {
				return err
			}
			existing.Status = payroll.BatchProcessed
			existing.TotalEmployees = totalEmployees
			existing.TotalAmount = totalAmount
			existing.ProcessedBy = &actor.ID
			existing.ProcessedAt = &now
			batch, err = s.batchRepo.Update(txCtx, existing)
		} else {
			batch, err = s.batchRepo.Create(txCtx, payroll.Batch{
				PeriodMonth:    req.PeriodMonth,
				PeriodYear:     req.PeriodYear,
				Status:         payroll.BatchProcessed,
				TotalEmployees: totalEmployees,
				TotalAmount:    totalAmount,
				ProcessedBy:    &actor.ID,
				ProcessedAt:    &now,
			})
		}
		if err != nil {
			return err
		}

		settled := make(map[string][]string, len(inputs))
		for _, in := range inputs {
			if len(in.ReimbursementIDs) > 0 {
				settled[in.Employee.ID] = in.ReimbursementIDs
			}
		}
		for i := range slips {
			slips[i].BatchID = batch.ID
			if _, err := s.batchRepo.CreateSlip(txCtx, slips[i]); err != nil {
				return err
			}
			if ids := settled[slips[i].EmployeeID]; len(ids) > 0 {
				if err := s.reimbursementRepo.MarkPaid(txCtx, ids, batch.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "process",
		Module:      "payroll",
		EntityType:  "payroll_batch",
		EntityID:    batch.ID,
		PerformedBy: actor.ID,
		NewValue: map[string]interface{}{
			"month":           batch.PeriodMonth,
			"year":            batch.PeriodYear,
			"total_employees": batch.TotalEmployees,
			"total_amount":    batch.TotalAmount.String(),
			"failures":        len(failures),
			"forced":          req.Force,
		},
	})

	resp := toBatchResponse(batch)
	resp.Failures = failures
	return resp, nil
}

// MarkPaid finalizes a processed batch. Payment is the one transition
// reserved for admin; afterwards the batch can never be re-run.
func (s *Service) MarkPaid(ctx context.Context, batchID string) (payroll.BatchResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if actor.Role != user.RoleAdmin {
		return payroll.BatchResponse{}, user.ErrAdminPrivilegeRequired
	}

	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if batch.Status == payroll.BatchPaid {
		return payroll.BatchResponse{}, payroll.ErrBatchPaid
	}
	if batch.Status != payroll.BatchProcessed {
		return payroll.BatchResponse{}, payroll.ErrBatchNotProcessed
	}

	now := time.Now().UTC()
	batch.Status = payroll.BatchPaid
	batch.PaidBy = &actor.ID
	batch.PaidAt = &now

	updated, err := s.batchRepo.Update(ctx, batch)
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "mark_paid",
		Module:      "payroll",
		EntityType:  "payroll_batch",
		EntityID:    updated.ID,
		PerformedBy: actor.ID,
		NewValue:    map[string]interface{}{"status": string(payroll.BatchPaid)},
	})
	return toBatchResponse(updated), nil
}

func (s *Service) ListBatches(ctx context.Context) ([]payroll.BatchResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return nil, user.ErrHRAccessRequired
	}

	batches, err := s.batchRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]payroll.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return out, nil
}

func (s *Service) GetBatch(ctx context.Context, id string) (payroll.BatchResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return payroll.BatchResponse{}, user.ErrHRAccessRequired
	}

	batch, err := s.batchRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	return toBatchResponse(batch), nil
}

func (s *Service) ListSlipsByBatch(ctx context.Context, batchID string) ([]payroll.SlipResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return nil, err
	}
	if !user.CanActOn(actor, user.Subject{}, user.ActionManageRecord) {
		return nil, user.ErrHRAccessRequired
	}

	slips, err := s.batchRepo.ListSlipsByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	out := make([]payroll.SlipResponse, 0, len(slips))
	for _, slip := range slips {
		out = append(out, toSlipResponse(slip))
	}
	return out, nil
}

func (s *Service) ListSlipsByEmployee(ctx context.Context, employeeID string) ([]payroll.SlipResponse, error) {
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

	slips, err := s.batchRepo.ListSlipsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]payroll.SlipResponse, 0, len(slips))
	for _, slip := range slips {
		out = append(out, toSlipResponse(slip))
	}
	return out, nil
}

func (s *Service) GetSlip(ctx context.Context, id string) (payroll.SlipResponse, error) {
	actor, err := requestctx.Actor(ctx)
	if err != nil {
		return payroll.SlipResponse{}, err
	}

	slip, err := s.batchRepo.GetSlipByID(ctx, id)
	if err != nil {
		return payroll.SlipResponse{}, err
	}
	if !user.CanActOn(actor, user.Subject{EmployeeID: slip.EmployeeID}, user.ActionViewRecord) {
		return payroll.SlipResponse{}, user.ErrHRAccessRequired
	}
	return toSlipResponse(slip), nil
}

func toSettingsResponse(s payroll.Settings) payroll.SettingsResponse {
	return payroll.SettingsResponse{
		ID:                          s.ID,
		DefaultPFPercentage:         s.DefaultPFPercentage,
		DefaultESIPercentage:        s.DefaultESIPercentage,
		DefaultAbsentDeductionType:  string(s.DefaultAbsentDeductionType),
		DefaultAbsentDeductionValue: s.DefaultAbsentDeductionValue,
	}
}

func toBatchResponse(b payroll.Batch) payroll.BatchResponse {
	resp := payroll.BatchResponse{
		ID:             b.ID,
		PeriodMonth:    b.PeriodMonth,
		PeriodYear:     b.PeriodYear,
		Status:         string(b.Status),
		TotalEmployees: b.TotalEmployees,
		TotalAmount:    b.TotalAmount,
	}
	if b.ProcessedAt != nil {
		v := b.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	if b.PaidAt != nil {
		v := b.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

func toSlipResponse(s payroll.Slip) payroll.SlipResponse {
	return payroll.SlipResponse{
		ID:               s.ID,
		BatchID:          s.BatchID,
		EmployeeID:       s.EmployeeID,
		EmployeeName:     s.EmployeeName,
		EmployeeCode:     s.EmployeeCode,
		Basic:            s.Basic,
		HRA:              s.HRA,
		Allowances:       s.Allowances,
		Reimbursed:       s.Reimbursed,
		GrossSalary:      s.GrossSalary,
		PF:               s.PF,
		ESI:              s.ESI,
		Tax:              s.Tax,
		AbsenceDeduction: s.AbsenceDeduction,
		OtherDeductions:  s.OtherDeductions,
		NetSalary:        s.NetSalary,
		PresentDays:      s.PresentDays,
		AbsentDays:       s.AbsentDays,
		HalfDays:         s.HalfDays,
		OnLeaveDays:      s.OnLeaveDays,
	}
}
