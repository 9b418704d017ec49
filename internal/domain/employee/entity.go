package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusOnLeave    Status = "on_leave"
	StatusTerminated Status = "terminated"
)

// DeductionType selects how the per-absent-day payroll penalty is applied.
type DeductionType string

const (
	DeductionPercentage DeductionType = "percentage" // value% of monthly salary per absent day
	DeductionAmount     DeductionType = "amount"     // fixed value per absent day
)

type Employee struct {
	ID           string
	UserID       *string
	EmployeeCode string
	FullName     string
	Email        string
	PhoneNumber  *string
	Department   *string
	Position     *string
	HireDate     time.Time
	Status       Status

	// Payroll attributes. The percentage/deduction fields override the
	// company-wide payroll settings when present.
	BaseSalary           *decimal.Decimal
	PFPercentage         *decimal.Decimal
	ESIPercentage        *decimal.Decimal
	AbsentDeductionType  *DeductionType
	AbsentDeductionValue *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	Role *string
}

// Payable reports whether the employee should be included in a payroll run.
func (e *Employee) Payable() bool {
	return e.Status != StatusTerminated && e.BaseSalary != nil && !e.BaseSalary.IsZero()
}

// RedactFinancials clears the payroll overrides. Applied when a
// resignation is approved so terminated records keep no financial data
// beyond the generated slips.
func (e *Employee) RedactFinancials() {
	e.BaseSalary = nil
	e.PFPercentage = nil
	e.ESIPercentage = nil
	e.AbsentDeductionType = nil
	e.AbsentDeductionValue = nil
}
