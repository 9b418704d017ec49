package dashboard

import "github.com/shopspring/decimal"

// Summary is the admin/HR landing counters. Everything here is a
// single aggregate query away.
type Summary struct {
	TotalEmployees          int             `json:"total_employees"`
	ActiveEmployees         int             `json:"active_employees"`
	PresentToday            int             `json:"present_today"`
	AbsentToday             int             `json:"absent_today"`
	OnLeaveToday            int             `json:"on_leave_today"`
	PendingLeaveRequests    int             `json:"pending_leave_requests"`
	PendingRegularizations  int             `json:"pending_regularizations"`
	PendingReimbursements   int             `json:"pending_reimbursements"`
	PendingResignations     int             `json:"pending_resignations"`
	CurrentMonthPayroll     decimal.Decimal `json:"current_month_payroll"`
	CurrentMonthBatchStatus *string         `json:"current_month_batch_status,omitempty"`
}
