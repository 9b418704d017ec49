package leave

import (
	"context"
	"time"
)

type LeaveTypeRepository interface {
	Create(ctx context.Context, lt LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	Update(ctx context.Context, req UpdateLeaveTypeRequest) error
	Delete(ctx context.Context, id string) error
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	List(ctx context.Context, status *RequestStatus) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, processedBy *string, remarks *string) error
	// ApprovedDaysInRange returns, per employee, the set of approved
	// leave dates inside [start, end]. The attendance aggregator reads
	// this to mark on-leave days.
	ApprovedDatesInRange(ctx context.Context, employeeID string, start, end time.Time) ([]time.Time, error)
}

type LeaveBalanceRepository interface {
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (Balance, error)
	// GetByEmployeeTypeYearForUpdate takes a row lock; must run inside a
	// transaction carried on ctx.
	GetByEmployeeTypeYearForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (Balance, error)
	Create(ctx context.Context, b Balance) (Balance, error)
	Update(ctx context.Context, b Balance) (Balance, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]Balance, error)
}
