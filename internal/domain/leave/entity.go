package leave

import "time"

// LeaveType is an HR-managed leave category.
type LeaveType struct {
	ID                 string
	Name               string
	Description        *string
	IsPaid             bool
	DefaultDaysPerYear int
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestWithdrawn RequestStatus = "withdrawn"
)

type Request struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Days        int
	Reason      *string
	Status      RequestStatus
	ProcessedBy *string
	Remarks     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeRole  *string
	LeaveTypeName *string
	IsPaid        *bool
}

// Balance is the per (employee, leave type, year) ledger row.
// Invariant: Remaining == Total - Used.
type Balance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int
	Total       int
	Used        int
	Remaining   int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	LeaveTypeName *string
}

// Consume books days against the balance and keeps the remaining
// figure derived. Callers check sufficiency first; unpaid types skip
// that check, so Remaining may go negative for them.
func (b *Balance) Consume(days int) {
	b.Used += days
	b.Remaining = b.Total - b.Used
}

// Release reverses a previous consumption. Used never goes below zero.
func (b *Balance) Release(days int) {
	b.Used -= days
	if b.Used < 0 {
		b.Used = 0
	}
	b.Remaining = b.Total - b.Used
}
