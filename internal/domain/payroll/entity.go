package payroll

import (
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Settings - company payroll configuration, one row.
type Settings struct {
	ID                          string
	DefaultPFPercentage         decimal.Decimal
	DefaultESIPercentage        decimal.Decimal
	DefaultAbsentDeductionType  employee.DeductionType
	DefaultAbsentDeductionValue decimal.Decimal
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// DefaultSettings mirrors the seeded configuration row: PF 12%, ESI
// 0.75%, and roughly one day's salary (100/30) per unexcused absence.
func DefaultSettings() Settings {
	return Settings{
		DefaultPFPercentage:         decimal.NewFromFloat(12.00),
		DefaultESIPercentage:        decimal.NewFromFloat(0.75),
		DefaultAbsentDeductionType:  employee.DeductionPercentage,
		DefaultAbsentDeductionValue: decimal.NewFromFloat(3.33),
	}
}

type BatchStatus string

const (
	BatchDraft     BatchStatus = "draft"
	BatchProcessed BatchStatus = "processed"
	BatchPaid      BatchStatus = "paid"
)

// Batch is one payroll run for a (month, year) period.
type Batch struct {
	ID             string
	PeriodMonth    int
	PeriodYear     int
	Status         BatchStatus
	TotalEmployees int
	TotalAmount    decimal.Decimal
	ProcessedBy    *string
	ProcessedAt    *time.Time
	PaidBy         *string
	PaidAt         *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Locked reports whether the batch freezes its period's attendance
// inputs: once processed or paid, regularizations for the period are
// blocked and the slips are never regenerated implicitly.
func (b *Batch) Locked() bool {
	return b.Status == BatchProcessed || b.Status == BatchPaid
}

// Slip is one employee's salary statement inside a batch. Read-only
// once generated.
type Slip struct {
	ID         string
	BatchID    string
	EmployeeID string

	// Earnings
	Basic         decimal.Decimal
	HRA           decimal.Decimal
	Allowances    decimal.Decimal
	Reimbursed    decimal.Decimal
	GrossSalary   decimal.Decimal

	// Deductions
	PF               decimal.Decimal
	ESI              decimal.Decimal
	Tax              decimal.Decimal
	AbsenceDeduction decimal.Decimal
	OtherDeductions  decimal.Decimal

	NetSalary decimal.Decimal

	PresentDays int
	AbsentDays  int
	HalfDays    int
	OnLeaveDays int

	CreatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// BatchFailure records one employee the coordinator could not compute a
// slip for. The batch still completes for everyone else.
type BatchFailure struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Reason       string `json:"reason"`
}
