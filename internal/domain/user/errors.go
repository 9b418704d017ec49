package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrHRAccessRequired       = errors.New("hr access required")
	ErrSelfActionForbidden    = errors.New("cannot process your own request")
	ErrHRSubjectRequiresAdmin = errors.New("requests by hr can only be processed by admin")
	ErrUserInactive           = errors.New("user account is inactive")
)
