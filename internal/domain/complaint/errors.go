package complaint

import "errors"

var (
	ErrNotFound      = errors.New("complaint not found")
	ErrAlreadyClosed = errors.New("complaint is already closed")
)
