package regularization

import "errors"

var (
	ErrRequestNotFound  = errors.New("regularization request not found")
	ErrRequestProcessed = errors.New("regularization request already processed")
	ErrInvalidType      = errors.New("invalid regularization type")
	ErrMissingNewValue  = errors.New("requested change has no value for its type")
)
