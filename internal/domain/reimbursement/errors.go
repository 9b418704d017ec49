package reimbursement

import "errors"

var (
	ErrNotFound         = errors.New("reimbursement not found")
	ErrAlreadyProcessed = errors.New("reimbursement already processed")
)
