package reimbursement

import (
	"github.com/hrms-core/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SubmitRequest struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
	ReceiptDate string          `json:"receipt_date"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if _, ok := validator.IsValidDate(r.ReceiptDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "receipt_date", Message: "must be YYYY-MM-DD"})
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
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Description  *string         `json:"description,omitempty"`
	ReceiptDate  string          `json:"receipt_date"`
	Status       string          `json:"status"`
	Remarks      *string         `json:"remarks,omitempty"`
	BatchID      *string         `json:"batch_id,omitempty"`
}
