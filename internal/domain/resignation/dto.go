package resignation

import (
	"github.com/hrms-core/hrms-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	NoticeDate     string  `json:"notice_date"`
	LastWorkingDay string  `json:"last_working_day"`
	Reason         *string `json:"reason,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	notice, okNotice := validator.IsValidDate(r.NoticeDate)
	if !okNotice {
		errs = append(errs, validator.ValidationError{Field: "notice_date", Message: "must be YYYY-MM-DD"})
	}
	last, okLast := validator.IsValidDate(r.LastWorkingDay)
	if !okLast {
		errs = append(errs, validator.ValidationError{Field: "last_working_day", Message: "must be YYYY-MM-DD"})
	}
	if okNotice && okLast && last.Before(notice) {
		errs = append(errs, validator.ValidationError{Field: "last_working_day", Message: "must not be before notice_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProcessRequest struct {
	ID      string  `json:"-"`
	Status  string  `json:"status"` // approved | rejected
	Remarks *string `json:"remarks,omitempty"`
}

func (r *ProcessRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'approved' or 'rejected'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	NoticeDate     string  `json:"notice_date"`
	LastWorkingDay string  `json:"last_working_day"`
	Reason         *string `json:"reason,omitempty"`
	Status         string  `json:"status"`
	Remarks        *string `json:"remarks,omitempty"`
}
