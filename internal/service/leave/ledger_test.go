package leave

import (
	"testing"

	"github.com/hrms-core/hrms-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func casualType(paid bool) leave.LeaveType {
	return leave.LeaveType{
		ID:                 "lt-casual",
		Name:               "casual",
		IsPaid:             paid,
		DefaultDaysPerYear: 12,
		IsActive:           true,
	}
}

func pendingRequest(days int) leave.Request {
	return leave.Request{
		ID:          "req-1",
		EmployeeID:  "emp-1",
		LeaveTypeID: "lt-casual",
		Days:        days,
		Status:      leave.RequestPending,
	}
}

func freshBalance(total int) leave.Balance {
	return leave.Balance{
		EmployeeID:  "emp-1",
		LeaveTypeID: "lt-casual",
		Year:        2026,
		Total:       total,
		Remaining:   total,
	}
}

func TestApprove_ConsumesBalance(t *testing.T) {
	balance := freshBalance(12)

	err := approve(&balance, pendingRequest(3), casualType(true))
	require.NoError(t, err)

	assert.Equal(t, 12, balance.Total)
	assert.Equal(t, 3, balance.Used)
	assert.Equal(t, 9, balance.Remaining)
}

func TestApprove_InsufficientBalance(t *testing.T) {
	balance := freshBalance(12)
	require.NoError(t, approve(&balance, pendingRequest(3), casualType(true)))

	// 9 remaining, 10 requested
	err := approve(&balance, pendingRequest(10), casualType(true))
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	assert.Equal(t, 3, balance.Used, "failed approval must not touch the balance")
	assert.Equal(t, 9, balance.Remaining)
}

func TestApprove_ExactRemaining(t *testing.T) {
	balance := freshBalance(5)
	err := approve(&balance, pendingRequest(5), casualType(true))
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Remaining)
}

func TestApprove_UnpaidBypassesBalanceCheck(t *testing.T) {
	balance := freshBalance(2)

	err := approve(&balance, pendingRequest(10), casualType(false))
	require.NoError(t, err)

	assert.Equal(t, 10, balance.Used)
	assert.Equal(t, -8, balance.Remaining)
}

func TestApprove_AlreadyProcessed(t *testing.T) {
	balance := freshBalance(12)
	req := pendingRequest(3)
	req.Status = leave.RequestApproved

	err := approve(&balance, req, casualType(true))
	assert.ErrorIs(t, err, leave.ErrRequestProcessed)
}

func TestReverse_ReleasesBalance(t *testing.T) {
	balance := freshBalance(12)
	req := pendingRequest(3)
	require.NoError(t, approve(&balance, req, casualType(true)))

	req.Status = leave.RequestApproved
	err := reverse(&balance, req)
	require.NoError(t, err)

	assert.Equal(t, 0, balance.Used)
	assert.Equal(t, 12, balance.Remaining)
}

func TestReverse_RequiresApprovedRequest(t *testing.T) {
	balance := freshBalance(12)
	err := reverse(&balance, pendingRequest(3))
	assert.ErrorIs(t, err, leave.ErrNotApproved)
}

func TestReverse_UsedNeverBelowZero(t *testing.T) {
	balance := freshBalance(12)
	req := pendingRequest(5)
	req.Status = leave.RequestApproved

	err := reverse(&balance, req)
	require.NoError(t, err)

	assert.Equal(t, 0, balance.Used)
	assert.Equal(t, 12, balance.Remaining)
}

// remaining == total - used must hold after any sequence of
// approvals and reversals.
func TestLedger_InvariantAcrossSequence(t *testing.T) {
	balance := freshBalance(12)
	lt := casualType(true)

	steps := []struct {
		days    int
		reverse bool
	}{
		{3, false},
		{2, false},
		{2, true},
		{4, false},
		{3, true},
	}

	for _, step := range steps {
		req := pendingRequest(step.days)
		if step.reverse {
			req.Status = leave.RequestApproved
			require.NoError(t, reverse(&balance, req))
		} else {
			require.NoError(t, approve(&balance, req, lt))
		}
		assert.Equal(t, balance.Total-balance.Used, balance.Remaining)
	}

	assert.Equal(t, 4, balance.Used)
	assert.Equal(t, 8, balance.Remaining)
}
