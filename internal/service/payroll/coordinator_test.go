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

func payableEmployee(id, name string, salary float64) employee.Employee {
	base := decimal.NewFromFloat(salary)
	role := "employee"
	return employee.Employee{
		ID:         id,
		FullName:   name,
		BaseSalary: &base,
		Status:     employee.StatusActive,
		Role:       &role,
	}
}

func fullMonth(employeeID string) attendance.PeriodSummary {
	return attendance.PeriodSummary{
		EmployeeID:       employeeID,
		PresentDays:      22,
		TotalWorkedHours: decimal.NewFromInt(176),
	}
}

func TestBuildSlips_PartialFailureKeepsBatchGoing(t *testing.T) {
	settings := payroll.DefaultSettings()

	noSalary := payableEmployee("emp-2", "Missing Salary", 0)
	noSalary.BaseSalary = nil

	inputs := []slipInput{
		{Employee: payableEmployee("emp-1", "First", 30000), Summary: fullMonth("emp-1")},
		{Employee: noSalary, Summary: fullMonth("emp-2")},
		{Employee: payableEmployee("emp-3", "Third", 45000), Summary: fullMonth("emp-3")},
	}

	slips, failures := buildSlips(inputs, &settings)

	require.Len(t, slips, 2)
	assert.Equal(t, "emp-1", slips[0].EmployeeID)
	assert.Equal(t, "emp-3", slips[1].EmployeeID)

	require.Len(t, failures, 1)
	assert.Equal(t, "emp-2", failures[0].EmployeeID)
	assert.Equal(t, "no base salary configured", failures[0].Reason)
}

func TestBuildSlips_SkipsAdminAccounts(t *testing.T) {
	settings := payroll.DefaultSettings()

	adminRole := "admin"
	admin := payableEmployee("emp-admin", "Admin", 90000)
	admin.Role = &adminRole

	inputs := []slipInput{
		{Employee: admin, Summary: fullMonth("emp-admin")},
		{Employee: payableEmployee("emp-1", "First", 30000), Summary: fullMonth("emp-1")},
	}

	slips, failures := buildSlips(inputs, &settings)

	require.Len(t, slips, 1)
	assert.Equal(t, "emp-1", slips[0].EmployeeID)
	assert.Empty(t, failures, "skipped admins are not failures")
}

func TestBuildSlips_MissingSettingsWithoutOverrides(t *testing.T) {
	inputs := []slipInput{
		{Employee: payableEmployee("emp-1", "First", 30000), Summary: fullMonth("emp-1")},
	}

	slips, failures := buildSlips(inputs, nil)

	assert.Empty(t, slips)
	require.Len(t, failures, 1)
	assert.Equal(t, "payroll settings missing and no employee override present", failures[0].Reason)
}

func TestBuildSlips_FoldsReimbursements(t *testing.T) {
	settings := payroll.DefaultSettings()

	inputs := []slipInput{
		{
			Employee:         payableEmployee("emp-1", "First", 30000),
			Summary:          fullMonth("emp-1"),
			Reimbursed:       decimal.NewFromFloat(1250.50),
			ReimbursementIDs: []string{"rb-1", "rb-2"},
		},
	}

	slips, failures := buildSlips(inputs, &settings)
	require.Empty(t, failures)
	require.Len(t, slips, 1)

	assert.Equal(t, "1250.5", slips[0].Reimbursed.String())
	// 50% + 20% + 10% of 30000 plus the reimbursed amount
	assert.Equal(t, "25250.5", slips[0].GrossSalary.String())
}

func TestBatchTotals(t *testing.T) {
	slips := []payroll.Slip{
		{NetSalary: decimal.NewFromFloat(19998.50)},
		{NetSalary: decimal.NewFromFloat(30001.25)},
	}

	count, total := batchTotals(slips)
	assert.Equal(t, 2, count)
	assert.Equal(t, "49999.75", total.String())
}
