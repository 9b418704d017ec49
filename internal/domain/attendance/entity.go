package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusOnLeave Status = "on_leave"
)

// Record is one attendance entry per (employee, calendar date).
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	WorkHours  decimal.Decimal

	// Edit trail, stamped by manual entry or regularization approval.
	EditedBy   *string
	EditReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// Settings is the company-wide attendance configuration row.
type Settings struct {
	ID                string
	StandardWorkHours decimal.Decimal // full day at or above this
	HalfDayThreshold  decimal.Decimal // half day at or above this, below standard
	AllowSelfClockIn  bool
	AutoHalfDayTime   string // "HH:MM", end-of-day sweep cutoff
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DefaultSettings mirrors the seeded configuration row.
func DefaultSettings() Settings {
	return Settings{
		StandardWorkHours: decimal.NewFromInt(8),
		HalfDayThreshold:  decimal.NewFromInt(4),
		AllowSelfClockIn:  true,
		AutoHalfDayTime:   "19:00",
	}
}

// PeriodSummary is the aggregate a payroll run consumes for one
// employee over one pay period.
type PeriodSummary struct {
	EmployeeID       string
	PresentDays      int
	AbsentDays       int
	HalfDays         int
	OnLeaveDays      int
	TotalWorkedHours decimal.Decimal
}
