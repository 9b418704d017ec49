package regularization

import (
	"github.com/hrms-core/hrms-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	AttendanceDate string  `json:"attendance_date"`
	Type           string  `json:"type"`
	NewCheckIn     *string `json:"new_check_in,omitempty"`  // RFC3339 or "HH:MM"
	NewCheckOut    *string `json:"new_check_out,omitempty"` // RFC3339 or "HH:MM"
	NewStatus      *string `json:"new_status,omitempty"`
	Reason         string  `json:"reason"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.AttendanceDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "attendance_date", Message: "must be YYYY-MM-DD"})
	}
	if !validator.IsInSlice(r.Type, []string{
		string(TypeCheckIn), string(TypeCheckOut), string(TypeBoth), string(TypeStatusChange),
	}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be check_in, check_out, both or status_change"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	switch RequestType(r.Type) {
	case TypeCheckIn:
		if r.NewCheckIn == nil {
			errs = append(errs, validator.ValidationError{Field: "new_check_in", Message: "is required for type check_in"})
		}
	case TypeCheckOut:
		if r.NewCheckOut == nil {
			errs = append(errs, validator.ValidationError{Field: "new_check_out", Message: "is required for type check_out"})
		}
	case TypeBoth:
		if r.NewCheckIn == nil || r.NewCheckOut == nil {
			errs = append(errs, validator.ValidationError{Field: "new_check_in", Message: "both times are required for type both"})
		}
	case TypeStatusChange:
		if r.NewStatus == nil {
			errs = append(errs, validator.ValidationError{Field: "new_status", Message: "is required for type status_change"})
		}
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

type RequestResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	AttendanceDate string  `json:"attendance_date"`
	Type           string  `json:"type"`
	NewCheckIn     *string `json:"new_check_in,omitempty"`
	NewCheckOut    *string `json:"new_check_out,omitempty"`
	NewStatus      *string `json:"new_status,omitempty"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	Remarks        *string `json:"remarks,omitempty"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
}
