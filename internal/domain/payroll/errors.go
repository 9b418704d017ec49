package payroll

import "errors"

var (
	ErrSettingsNotFound  = errors.New("payroll settings not found")
	ErrMissingSettings   = errors.New("payroll settings missing and no employee override present")
	ErrBatchNotFound     = errors.New("payroll batch not found")
	ErrBatchExists       = errors.New("payroll batch already processed for this period")
	ErrBatchPaid         = errors.New("payroll batch already paid")
	ErrBatchNotProcessed = errors.New("payroll batch is not in processed state")
	ErrSlipNotFound      = errors.New("salary slip not found")
	ErrSlipExists        = errors.New("salary slip already exists for this employee and batch")
	ErrNoBaseSalary      = errors.New("employee has no base salary configured")
	ErrInvalidPeriod     = errors.New("invalid payroll period")
)
