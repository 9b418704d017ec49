package payroll

import (
	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Salary split constants. The monthly salary decomposes into fixed
// proportions; only the deduction parameters are configurable.
var (
	basicRatio     = decimal.NewFromFloat(0.50)
	hraRatio       = decimal.NewFromFloat(0.20)
	allowanceRatio = decimal.NewFromFloat(0.10)
	hundred        = decimal.NewFromInt(100)
)

// ComputeSlip derives one employee's salary slip for a pay period.
// Pure: settings arrive as an explicit value, never from ambient state.
// Intermediate arithmetic keeps full precision; every monetary figure
// on the returned slip is rounded to 2 decimal places, and the net is
// computed from the rounded terms so that
// gross - (pf + esi + absence + other + tax) == net holds exactly.
func ComputeSlip(
	emp employee.Employee,
	summary attendance.PeriodSummary,
	reimbursed decimal.Decimal,
	tax decimal.Decimal,
	otherDeductions decimal.Decimal,
	settings *payroll.Settings,
) (payroll.Slip, error) {
	if emp.BaseSalary == nil || emp.BaseSalary.IsZero() {
		return payroll.Slip{}, payroll.ErrNoBaseSalary
	}
	salary := *emp.BaseSalary

	pfPct, err := resolvePercentage(emp.PFPercentage, settings, func(s *payroll.Settings) decimal.Decimal {
		return s.DefaultPFPercentage
	})
	if err != nil {
		return payroll.Slip{}, err
	}
	esiPct, err := resolvePercentage(emp.ESIPercentage, settings, func(s *payroll.Settings) decimal.Decimal {
		return s.DefaultESIPercentage
	})
	if err != nil {
		return payroll.Slip{}, err
	}
	dedType, dedValue, err := resolveAbsentDeduction(emp, settings)
	if err != nil {
		return payroll.Slip{}, err
	}

	basic := salary.Mul(basicRatio)
	hra := salary.Mul(hraRatio)
	allowances := salary.Mul(allowanceRatio)
	gross := basic.Add(hra).Add(allowances).Add(reimbursed)

	pf := basic.Mul(pfPct).Div(hundred)
	esi := gross.Mul(esiPct).Div(hundred)

	absentDays := decimal.NewFromInt(int64(summary.AbsentDays))
	var absence decimal.Decimal
	switch dedType {
	case employee.DeductionAmount:
		absence = dedValue.Mul(absentDays)
	default: // percentage of monthly salary per absent day
		absence = salary.Mul(dedValue).Div(hundred).Mul(absentDays)
	}

	slip := payroll.Slip{
		EmployeeID:       emp.ID,
		Basic:            basic.Round(2),
		HRA:              hra.Round(2),
		Allowances:       allowances.Round(2),
		Reimbursed:       reimbursed.Round(2),
		GrossSalary:      gross.Round(2),
		PF:               pf.Round(2),
		ESI:              esi.Round(2),
		Tax:              tax.Round(2),
		AbsenceDeduction: absence.Round(2),
		OtherDeductions:  otherDeductions.Round(2),
		PresentDays:      summary.PresentDays,
		AbsentDays:       summary.AbsentDays,
		HalfDays:         summary.HalfDays,
		OnLeaveDays:      summary.OnLeaveDays,
	}
	slip.NetSalary = slip.GrossSalary.
		Sub(slip.PF).
		Sub(slip.ESI).
		Sub(slip.Tax).
		Sub(slip.AbsenceDeduction).
		Sub(slip.OtherDeductions)

	return slip, nil
}

func resolvePercentage(override *decimal.Decimal, settings *payroll.Settings, pick func(*payroll.Settings) decimal.Decimal) (decimal.Decimal, error) {
	if override != nil {
		return *override, nil
	}
	if settings == nil {
		return decimal.Zero, payroll.ErrMissingSettings
	}
	return pick(settings), nil
}

func resolveAbsentDeduction(emp employee.Employee, settings *payroll.Settings) (employee.DeductionType, decimal.Decimal, error) {
	if emp.AbsentDeductionType != nil && emp.AbsentDeductionValue != nil {
		return *emp.AbsentDeductionType, *emp.AbsentDeductionValue, nil
	}
	if settings == nil {
		return "", decimal.Zero, payroll.ErrMissingSettings
	}
	return settings.DefaultAbsentDeductionType, settings.DefaultAbsentDeductionValue, nil
}
