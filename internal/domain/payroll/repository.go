package payroll

import "context"

type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
}

type BatchRepository interface {
	Create(ctx context.Context, b Batch) (Batch, error)
	GetByID(ctx context.Context, id string) (Batch, error)
	GetByPeriod(ctx context.Context, month, year int) (Batch, error)
	List(ctx context.Context) ([]Batch, error)
	Update(ctx context.Context, b Batch) (Batch, error)
	// DeleteSlips clears a batch's slips ahead of a forced re-run.
	DeleteSlips(ctx context.Context, batchID string) error

	CreateSlip(ctx context.Context, s Slip) (Slip, error)
	GetSlipByID(ctx context.Context, id string) (Slip, error)
	ListSlipsByBatch(ctx context.Context, batchID string) ([]Slip, error)
	ListSlipsByEmployee(ctx context.Context, employeeID string) ([]Slip, error)
}
