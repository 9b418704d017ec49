package complaint

import (
	"github.com/hrms-core/hrms-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	Subject     string  `json:"subject"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Priority    *string `json:"priority,omitempty"` // low | medium | high, defaults to medium
	IsAnonymous bool    `json:"is_anonymous,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{Field: "subject", Message: "is required"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}
	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "is required"})
	}
	if r.Priority != nil && !validator.IsInSlice(*r.Priority, []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)}) {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "must be 'low', 'medium' or 'high'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RespondRequest struct {
	ID       string  `json:"-"`
	Response string  `json:"response"`
	Status   *string `json:"status,omitempty"` // in_progress | closed, defaults to in_progress
}

func (r *RespondRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Response) {
		errs = append(errs, validator.ValidationError{Field: "response", Message: "is required"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusInProgress), string(StatusClosed)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'in_progress' or 'closed'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Subject      string  `json:"subject"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Priority     string  `json:"priority"`
	IsAnonymous  bool    `json:"is_anonymous"`
	Status       string  `json:"status"`
	Response     *string `json:"response,omitempty"`
	RespondedAt  *string `json:"responded_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
