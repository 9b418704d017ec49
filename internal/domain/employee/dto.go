package employee

import (
	"github.com/hrms-core/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode         string           `json:"employee_code,omitempty"` // generated when empty
	FullName             string           `json:"full_name"`
	Email                string           `json:"email"`
	PhoneNumber          *string          `json:"phone_number,omitempty"`
	Department           *string          `json:"department,omitempty"`
	Position             *string          `json:"position,omitempty"`
	HireDate             string           `json:"hire_date"`
	BaseSalary           *decimal.Decimal `json:"base_salary,omitempty"`
	PFPercentage         *decimal.Decimal `json:"pf_percentage,omitempty"`
	ESIPercentage        *decimal.Decimal `json:"esi_percentage,omitempty"`
	AbsentDeductionType  *string          `json:"absent_deduction_type,omitempty"`
	AbsentDeductionValue *decimal.Decimal `json:"absent_deduction_value,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be YYYY-MM-DD"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.AbsentDeductionType != nil && !validator.IsInSlice(*r.AbsentDeductionType, []string{string(DeductionPercentage), string(DeductionAmount)}) {
		errs = append(errs, validator.ValidationError{Field: "absent_deduction_type", Message: "must be 'percentage' or 'amount'"})
	}
	if r.AbsentDeductionValue != nil && r.AbsentDeductionValue.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "absent_deduction_value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID                   string           `json:"-"`
	FullName             *string          `json:"full_name,omitempty"`
	PhoneNumber          *string          `json:"phone_number,omitempty"`
	Department           *string          `json:"department,omitempty"`
	Position             *string          `json:"position,omitempty"`
	Status               *string          `json:"status,omitempty"`
	BaseSalary           *decimal.Decimal `json:"base_salary,omitempty"`
	PFPercentage         *decimal.Decimal `json:"pf_percentage,omitempty"`
	ESIPercentage        *decimal.Decimal `json:"esi_percentage,omitempty"`
	AbsentDeductionType  *string          `json:"absent_deduction_type,omitempty"`
	AbsentDeductionValue *decimal.Decimal `json:"absent_deduction_value,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusOnLeave), string(StatusTerminated)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active', 'on_leave' or 'terminated'"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.AbsentDeductionType != nil && !validator.IsInSlice(*r.AbsentDeductionType, []string{string(DeductionPercentage), string(DeductionAmount)}) {
		errs = append(errs, validator.ValidationError{Field: "absent_deduction_type", Message: "must be 'percentage' or 'amount'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                   string           `json:"id"`
	EmployeeCode         string           `json:"employee_code"`
	FullName             string           `json:"full_name"`
	Email                string           `json:"email"`
	PhoneNumber          *string          `json:"phone_number,omitempty"`
	Department           *string          `json:"department,omitempty"`
	Position             *string          `json:"position,omitempty"`
	HireDate             string           `json:"hire_date"`
	Status               string           `json:"status"`
	BaseSalary           *decimal.Decimal `json:"base_salary,omitempty"`
	PFPercentage         *decimal.Decimal `json:"pf_percentage,omitempty"`
	ESIPercentage        *decimal.Decimal `json:"esi_percentage,omitempty"`
	AbsentDeductionType  *string          `json:"absent_deduction_type,omitempty"`
	AbsentDeductionValue *decimal.Decimal `json:"absent_deduction_value,omitempty"`
}
