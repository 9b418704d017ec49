package payroll

import (
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SETTINGS DTOs ==========

type SettingsResponse struct {
	ID                          string          `json:"id"`
	DefaultPFPercentage         decimal.Decimal `json:"default_pf_percentage"`
	DefaultESIPercentage        decimal.Decimal `json:"default_esi_percentage"`
	DefaultAbsentDeductionType  string          `json:"default_absent_deduction_type"`
	DefaultAbsentDeductionValue decimal.Decimal `json:"default_absent_deduction_value"`
}

type UpdateSettingsRequest struct {
	DefaultPFPercentage         *decimal.Decimal `json:"default_pf_percentage,omitempty"`
	DefaultESIPercentage        *decimal.Decimal `json:"default_esi_percentage,omitempty"`
	DefaultAbsentDeductionType  *string          `json:"default_absent_deduction_type,omitempty"`
	DefaultAbsentDeductionValue *decimal.Decimal `json:"default_absent_deduction_value,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DefaultPFPercentage != nil && r.DefaultPFPercentage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_pf_percentage", Message: "must be non-negative"})
	}
	if r.DefaultESIPercentage != nil && r.DefaultESIPercentage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_esi_percentage", Message: "must be non-negative"})
	}
	if r.DefaultAbsentDeductionType != nil && !validator.IsInSlice(*r.DefaultAbsentDeductionType, []string{
		string(employee.DeductionPercentage), string(employee.DeductionAmount),
	}) {
		errs = append(errs, validator.ValidationError{Field: "default_absent_deduction_type", Message: "must be 'percentage' or 'amount'"})
	}
	if r.DefaultAbsentDeductionValue != nil && r.DefaultAbsentDeductionValue.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_absent_deduction_value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== BATCH DTOs ==========

type ProcessBatchRequest struct {
	PeriodMonth int  `json:"month"`
	PeriodYear  int  `json:"year"`
	Force       bool `json:"force,omitempty"`
}

func (r *ProcessBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.PeriodMonth, r.PeriodYear) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "period must be a month 1-12 within years 2000-2100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchResponse struct {
	ID             string          `json:"id"`
	PeriodMonth    int             `json:"month"`
	PeriodYear     int             `json:"year"`
	Status         string          `json:"status"`
	TotalEmployees int             `json:"total_employees"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ProcessedAt    *string         `json:"processed_at,omitempty"`
	PaidAt         *string         `json:"paid_at,omitempty"`
	Failures       []BatchFailure  `json:"failures,omitempty"`
}

type SlipResponse struct {
	ID           string          `json:"id"`
	BatchID      string          `json:"batch_id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	EmployeeCode *string         `json:"employee_code,omitempty"`

	Basic       decimal.Decimal `json:"basic"`
	HRA         decimal.Decimal `json:"hra"`
	Allowances  decimal.Decimal `json:"allowances"`
	Reimbursed  decimal.Decimal `json:"reimbursed"`
	GrossSalary decimal.Decimal `json:"gross_salary"`

	PF               decimal.Decimal `json:"pf"`
	ESI              decimal.Decimal `json:"esi"`
	Tax              decimal.Decimal `json:"tax"`
	AbsenceDeduction decimal.Decimal `json:"absence_deduction"`
	OtherDeductions  decimal.Decimal `json:"other_deductions"`

	NetSalary decimal.Decimal `json:"net_salary"`

	PresentDays int `json:"present_days"`
	AbsentDays  int `json:"absent_days"`
	HalfDays    int `json:"half_days"`
	OnLeaveDays int `json:"on_leave_days"`
}
