package resignation

import "errors"

var (
	ErrNotFound          = errors.New("resignation not found")
	ErrAlreadyProcessed  = errors.New("resignation already processed")
	ErrResignationActive = errors.New("an active resignation already exists")
)
