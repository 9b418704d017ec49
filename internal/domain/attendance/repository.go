package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, rec Record) (Record, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (Record, error)
	GetByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error)
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)
	Update(ctx context.Context, rec Record) (Record, error)
	// EmployeeIDsWithOpenCheckIn returns employees who checked in on the
	// given date but never checked out. Consumed by the end-of-day sweep.
	EmployeeIDsWithOpenCheckIn(ctx context.Context, date time.Time) ([]string, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
}
