package payroll

import (
	"testing"

	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testEmployee(salary string) employee.Employee {
	s := dec(salary)
	return employee.Employee{
		ID:         "emp-1",
		FullName:   "Test Employee",
		Status:     employee.StatusActive,
		BaseSalary: &s,
	}
}

func defaultSettings() payroll.Settings {
	return payroll.DefaultSettings()
}

func TestComputeSlip_SalarySplit(t *testing.T) {
	settings := defaultSettings()
	slip, err := ComputeSlip(testEmployee("30000"), attendance.PeriodSummary{PresentDays: 22}, decimal.Zero, decimal.Zero, decimal.Zero, &settings)
	require.NoError(t, err)

	assert.True(t, slip.Basic.Equal(dec("15000")), "basic = %s", slip.Basic)
	assert.True(t, slip.HRA.Equal(dec("6000")), "hra = %s", slip.HRA)
	assert.True(t, slip.Allowances.Equal(dec("3000")), "allowances = %s", slip.Allowances)
	assert.True(t, slip.GrossSalary.Equal(dec("24000")), "gross = %s", slip.GrossSalary)
}

func TestComputeSlip_AbsenceDeductionPercentage(t *testing.T) {
	// salary 30000, 2 absent days, 3.33% per day: 30000 x 0.0333 x 2 = 1998.00
	settings := defaultSettings()
	slip, err := ComputeSlip(testEmployee("30000"), attendance.PeriodSummary{PresentDays: 20, AbsentDays: 2}, decimal.Zero, decimal.Zero, decimal.Zero, &settings)
	require.NoError(t, err)

	assert.Equal(t, "1998.00", slip.AbsenceDeduction.StringFixed(2))
}

func TestComputeSlip_AbsenceDeductionAmount(t *testing.T) {
	emp := testEmployee("30000")
	dedType := employee.DeductionAmount
	dedValue := dec("500")
	emp.AbsentDeductionType = &dedType
	emp.AbsentDeductionValue = &dedValue

	settings := defaultSettings()
	slip, err := ComputeSlip(emp, attendance.PeriodSummary{AbsentDays: 3}, decimal.Zero, decimal.Zero, decimal.Zero, &settings)
	require.NoError(t, err)

	assert.Equal(t, "1500.00", slip.AbsenceDeduction.StringFixed(2))
}

func TestComputeSlip_ZeroAbsencesZeroDeduction(t *testing.T) {
	settings := defaultSettings()
	for _, emp := range []employee.Employee{testEmployee("30000"), testEmployee("77777.77")} {
		slip, err := ComputeSlip(emp, attendance.PeriodSummary{PresentDays: 22}, decimal.Zero, decimal.Zero, decimal.Zero, &settings)
		require.NoError(t, err)
		assert.True(t, slip.AbsenceDeduction.IsZero(), "absence deduction = %s", slip.AbsenceDeduction)
	}
}

func TestComputeSlip_StatutoryDeductions(t *testing.T) {
	settings := defaultSettings()
	slip, err := ComputeSlip(testEmployee("30000"), attendance.PeriodSummary{PresentDays: 22}, decimal.Zero, decimal.Zero, decimal.Zero, &settings)
	require.NoError(t, err)

	// PF: 12% of basic 15000 = 1800; ESI: 0.75% of gross 24000 = 180
	assert.Equal(t, "1800.00", slip.PF.StringFixed(2))
	assert.Equal(t, "180.00", slip.ESI.StringFixed(2))
}

func TestComputeSlip_EmployeeOverridesBeatDefaults(t *testing.T) {
	emp := testEmployee("30000")
	pf := dec("10")
	esi := dec("1")
	emp.PFPercentage = &pf
	emp.ESIPercentage = &esi

	settings := defaultSettings()
	slip, err := ComputeSlip(emp, attendance.PeriodSummary{PresentDays: 22}, decimal.Zero, decimal.Zero, decimal.Zero, &settings)
	require.NoError(t, err)

	assert.Equal(t, "1500.00", slip.PF.StringFixed(2))
	assert.Equal(t, "240.00", slip.ESI.StringFixed(2))
}

func TestComputeSlip_NetRoundTrip(t *testing.T) {
	settings := defaultSettings()
	cases := []struct {
		salary     string
		absent     int
		reimbursed string
		tax        string
		other      string
	}{
		{"30000", 2, "0", "0", "0"},
		{"52341.67", 1, "1234.56", "2500", "100.10"},
		{"99999.99", 5, "0.01", "8000.55", "0"},
		{"10000.01", 0, "250", "0", "33.33"},
	}

	for _, tc := range cases {
		slip, err := ComputeSlip(testEmployee(tc.salary), attendance.PeriodSummary{AbsentDays: tc.absent}, dec(tc.reimbursed), dec(tc.tax), dec(tc.other), &settings)
		require.NoError(t, err)

		sum := slip.PF.Add(slip.ESI).Add(slip.Tax).Add(slip.AbsenceDeduction).Add(slip.OtherDeductions)
		assert.True(t, slip.GrossSalary.Sub(sum).Equal(slip.NetSalary),
			"salary %s: gross %s - deductions %s != net %s", tc.salary, slip.GrossSalary, sum, slip.NetSalary)
		assert.Equal(t, slip.NetSalary.StringFixed(2), slip.NetSalary.Round(2).StringFixed(2))
	}
}

func TestComputeSlip_Deterministic(t *testing.T) {
	settings := defaultSettings()
	emp := testEmployee("52341.67")
	summary := attendance.PeriodSummary{PresentDays: 18, AbsentDays: 3, HalfDays: 1}

	first, err := ComputeSlip(emp, summary, dec("750.25"), dec("1200"), dec("50"), &settings)
	require.NoError(t, err)
	second, err := ComputeSlip(emp, summary, dec("750.25"), dec("1200"), dec("50"), &settings)
	require.NoError(t, err)

	assert.Equal(t, first.NetSalary.StringFixed(2), second.NetSalary.StringFixed(2))
	assert.Equal(t, first.GrossSalary.StringFixed(2), second.GrossSalary.StringFixed(2))
	assert.Equal(t, first.AbsenceDeduction.StringFixed(2), second.AbsenceDeduction.StringFixed(2))
}

func TestComputeSlip_NoBaseSalary(t *testing.T) {
	settings := defaultSettings()
	_, err := ComputeSlip(employee.Employee{ID: "emp-2"}, attendance.PeriodSummary{}, decimal.Zero, decimal.Zero, decimal.Zero, &settings)
	assert.ErrorIs(t, err, payroll.ErrNoBaseSalary)
}

func TestComputeSlip_MissingSettings(t *testing.T) {
	_, err := ComputeSlip(testEmployee("30000"), attendance.PeriodSummary{}, decimal.Zero, decimal.Zero, decimal.Zero, nil)
	assert.ErrorIs(t, err, payroll.ErrMissingSettings)
}

func TestComputeSlip_MissingSettingsButFullOverrides(t *testing.T) {
	emp := testEmployee("30000")
	pf := dec("12")
	esi := dec("0.75")
	dedType := employee.DeductionAmount
	dedValue := dec("400")
	emp.PFPercentage = &pf
	emp.ESIPercentage = &esi
	emp.AbsentDeductionType = &dedType
	emp.AbsentDeductionValue = &dedValue

	slip, err := ComputeSlip(emp, attendance.PeriodSummary{AbsentDays: 1}, decimal.Zero, decimal.Zero, decimal.Zero, nil)
	require.NoError(t, err)
	assert.Equal(t, "400.00", slip.AbsenceDeduction.StringFixed(2))
}
