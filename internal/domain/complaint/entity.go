package complaint

import "time"

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Complaint struct {
	ID          string
	EmployeeID  string
	Subject     string
	Description string
	Category    string
	Priority    Priority
	IsAnonymous bool
	Status      Status
	Response    *string
	RespondedBy *string
	RespondedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
	EmployeeRole *string
}
