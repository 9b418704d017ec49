package attendance

import (
	"github.com/hrms-core/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CheckInRequest struct {
	Date string `json:"date,omitempty"` // defaults to today
}

type ManualEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in,omitempty"`  // "HH:MM"
	CheckOut   *string `json:"check_out,omitempty"` // "HH:MM"
	Status     *string `json:"status,omitempty"`
	Reason     string  `json:"reason"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.CheckIn != nil && !validator.IsValidClockTime(*r.CheckIn) {
		errs = append(errs, validator.ValidationError{Field: "check_in", Message: "must be HH:MM"})
	}
	if r.CheckOut != nil && !validator.IsValidClockTime(*r.CheckOut) {
		errs = append(errs, validator.ValidationError{Field: "check_out", Message: "must be HH:MM"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{
		string(StatusPresent), string(StatusAbsent), string(StatusHalfDay), string(StatusOnLeave),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be a valid attendance status"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSettingsRequest struct {
	StandardWorkHours *decimal.Decimal `json:"standard_work_hours,omitempty"`
	HalfDayThreshold  *decimal.Decimal `json:"half_day_threshold,omitempty"`
	AllowSelfClockIn  *bool            `json:"allow_self_clock_in,omitempty"`
	AutoHalfDayTime   *string          `json:"auto_half_day_time,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	day := decimal.NewFromInt(24)
	if r.StandardWorkHours != nil && (r.StandardWorkHours.IsNegative() || r.StandardWorkHours.GreaterThan(day)) {
		errs = append(errs, validator.ValidationError{Field: "standard_work_hours", Message: "must be between 0 and 24"})
	}
	if r.HalfDayThreshold != nil && (r.HalfDayThreshold.IsNegative() || r.HalfDayThreshold.GreaterThan(day)) {
		errs = append(errs, validator.ValidationError{Field: "half_day_threshold", Message: "must be between 0 and 24"})
	}
	if r.AutoHalfDayTime != nil && !validator.IsValidClockTime(*r.AutoHalfDayTime) {
		errs = append(errs, validator.ValidationError{Field: "auto_half_day_time", Message: "must be HH:MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Date         string          `json:"date"`
	CheckIn      *string         `json:"check_in,omitempty"`
	CheckOut     *string         `json:"check_out,omitempty"`
	Status       string          `json:"status"`
	WorkHours    decimal.Decimal `json:"work_hours"`
	EditedBy     *string         `json:"edited_by,omitempty"`
	EditReason   *string         `json:"edit_reason,omitempty"`
}

type SettingsResponse struct {
	ID                string          `json:"id"`
	StandardWorkHours decimal.Decimal `json:"standard_work_hours"`
	HalfDayThreshold  decimal.Decimal `json:"half_day_threshold"`
	AllowSelfClockIn  bool            `json:"allow_self_clock_in"`
	AutoHalfDayTime   string          `json:"auto_half_day_time"`
}

type PeriodSummaryResponse struct {
	EmployeeID       string          `json:"employee_id"`
	PresentDays      int             `json:"present_days"`
	AbsentDays       int             `json:"absent_days"`
	HalfDays         int             `json:"half_days"`
	OnLeaveDays      int             `json:"on_leave_days"`
	TotalWorkedHours decimal.Decimal `json:"total_worked_hours"`
}
