package leave

import (
	"github.com/hrms-core/hrms-backend-go/internal/domain/leave"
)

// approve applies one pending request against its balance row. Pure:
// the caller owns loading, locking and persisting the rows.
//
// Paid leave types are capped by the remaining balance; unpaid types
// bypass the check but still book their consumption, so reporting sees
// how much unpaid leave was taken.
func approve(balance *leave.Balance, req leave.Request, lt leave.LeaveType) error {
	if req.Status != leave.RequestPending {
		return leave.ErrRequestProcessed
	}
	if lt.IsPaid && req.Days > balance.Remaining {
		return leave.ErrInsufficientBalance
	}
	balance.Consume(req.Days)
	return nil
}

// reverse undoes a previously approved request, e.g. on withdrawal.
func reverse(balance *leave.Balance, req leave.Request) error {
	if req.Status != leave.RequestApproved {
		return leave.ErrNotApproved
	}
	balance.Release(req.Days)
	return nil
}
