package payroll

import (
	"errors"

	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/payroll"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// slipInput bundles everything ComputeSlip needs for one employee,
// gathered ahead of the batch transaction.
type slipInput struct {
	Employee         employee.Employee
	Summary          attendance.PeriodSummary
	Reimbursed       decimal.Decimal
	ReimbursementIDs []string
}

// buildSlips computes one slip per input. A failing employee becomes a
// BatchFailure instead of aborting the run; accounts linked to admin
// users are skipped without a failure entry since admins draw no
// salary through the batch.
func buildSlips(inputs []slipInput, settings *payroll.Settings) ([]payroll.Slip, []payroll.BatchFailure) {
	slips := make([]payroll.Slip, 0, len(inputs))
	var failures []payroll.BatchFailure

	for _, in := range inputs {
		if in.Employee.Role != nil && user.Role(*in.Employee.Role) == user.RoleAdmin {
			continue
		}

		slip, err := ComputeSlip(in.Employee, in.Summary, in.Reimbursed, decimal.Zero, decimal.Zero, settings)
		if err != nil {
			failures = append(failures, payroll.BatchFailure{
				EmployeeID:   in.Employee.ID,
				EmployeeName: in.Employee.FullName,
				Reason:       failureReason(err),
			})
			continue
		}
		slips = append(slips, slip)
	}
	return slips, failures
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, payroll.ErrNoBaseSalary):
		return "no base salary configured"
	case errors.Is(err, payroll.ErrMissingSettings):
		return "payroll settings missing and no employee override present"
	default:
		return err.Error()
	}
}

func batchTotals(slips []payroll.Slip) (int, decimal.Decimal) {
	total := decimal.Zero
	for _, s := range slips {
		total = total.Add(s.NetSalary)
	}
	return len(slips), total
}
