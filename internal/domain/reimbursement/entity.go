package reimbursement

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid" // settled through a payroll batch
)

type Reimbursement struct {
	ID          string
	EmployeeID  string
	Category    string
	Amount      decimal.Decimal
	Description *string
	ReceiptDate time.Time
	Status      Status
	ProcessedBy *string
	Remarks     *string
	BatchID     *string // payroll batch that settled it
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
	EmployeeRole *string
}
