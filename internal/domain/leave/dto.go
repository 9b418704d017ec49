package leave

import (
	"github.com/hrms-core/hrms-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name               string  `json:"name"`
	Description        *string `json:"description,omitempty"`
	IsPaid             *bool   `json:"is_paid,omitempty"`
	DefaultDaysPerYear int     `json:"default_days_per_year"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.DefaultDaysPerYear < 0 {
		errs = append(errs, validator.ValidationError{Field: "default_days_per_year", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveTypeRequest struct {
	ID                 string  `json:"-"`
	Name               *string `json:"name,omitempty"`
	Description        *string `json:"description,omitempty"`
	IsPaid             *bool   `json:"is_paid,omitempty"`
	DefaultDaysPerYear *int    `json:"default_days_per_year,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
}

type ApplyLeaveRequest struct {
	LeaveTypeID string  `json:"leave_type_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Reason      *string `json:"reason,omitempty"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "is required"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if okStart && okEnd && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProcessLeaveRequest struct {
	ID      string  `json:"-"`
	Remarks *string `json:"remarks,omitempty"`
}

type LeaveTypeResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        *string `json:"description,omitempty"`
	IsPaid             bool    `json:"is_paid"`
	DefaultDaysPerYear int     `json:"default_days_per_year"`
	IsActive           bool    `json:"is_active"`
}

type RequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Days          int     `json:"days"`
	Reason        *string `json:"reason,omitempty"`
	Status        string  `json:"status"`
	ProcessedBy   *string `json:"processed_by,omitempty"`
	Remarks       *string `json:"remarks,omitempty"`
}

type BalanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	Year          int     `json:"year"`
	Total         int     `json:"total"`
	Used          int     `json:"used"`
	Remaining     int     `json:"remaining"`
}
