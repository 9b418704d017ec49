package attendance

import "errors"

var (
	ErrRecordNotFound     = errors.New("attendance record not found")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrNotCheckedIn       = errors.New("no open check-in for today")
	ErrSelfClockInDenied  = errors.New("self check-in is disabled")
	ErrInvalidRange       = errors.New("period start is after period end")
	ErrPeriodLocked       = errors.New("attendance period is locked by a processed payroll batch")
	ErrSettingsNotFound   = errors.New("attendance settings not found")
	ErrRecordExists       = errors.New("attendance record already exists for this date")
	ErrCheckOutBeforeIn   = errors.New("check-out is before check-in")
	ErrFutureDate         = errors.New("attendance date is in the future")
	ErrInvalidStatus      = errors.New("invalid attendance status")
)
