package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeNameExists  = errors.New("leave type name already exists")
	ErrLeaveTypeInactive    = errors.New("leave type is inactive")
	ErrLeaveTypeInUse       = errors.New("leave type is referenced by existing requests")
	ErrRequestNotFound      = errors.New("leave request not found")
	ErrRequestProcessed     = errors.New("leave request already processed")
	ErrNotApproved          = errors.New("leave request is not approved")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrInvalidDateRange     = errors.New("start date is after end date")
	ErrOverlappingRequest   = errors.New("overlapping leave request exists")
	ErrNotRequestOwner      = errors.New("leave request belongs to another employee")
)
