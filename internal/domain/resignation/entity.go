package resignation

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

type Resignation struct {
	ID            string
	EmployeeID    string
	NoticeDate    time.Time
	LastWorkingDay time.Time
	Reason        *string
	Status        Status
	ProcessedBy   *string
	Remarks       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
	EmployeeRole *string
}
