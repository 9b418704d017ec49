package regularization

import "time"

type RequestType string

const (
	TypeCheckIn      RequestType = "check_in"
	TypeCheckOut     RequestType = "check_out"
	TypeBoth         RequestType = "both"
	TypeStatusChange RequestType = "status_change"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is an employee-initiated correction to one attendance day.
// pending -> approved | rejected, both terminal.
type Request struct {
	ID             string
	EmployeeID     string
	AttendanceDate time.Time
	Type           RequestType
	NewCheckIn     *time.Time
	NewCheckOut    *time.Time
	NewStatus      *string
	Reason         string
	Status         Status
	Remarks        *string
	ApprovedBy     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeName *string
	EmployeeRole *string
}

func (r *Request) Terminal() bool {
	return r.Status != StatusPending
}
