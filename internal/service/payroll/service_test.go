package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/payroll"
	"github.com/hrms-core/hrms-backend-go/internal/domain/reimbursement"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTx satisfies pgx.Tx for the transaction context; the fakes never
// touch the database so none of its methods are called.
type stubTx struct{ pgx.Tx }

func hrContext(t *testing.T, userID string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", userID))
	require.NoError(t, tok.Set("role", "hr"))
	require.NoError(t, tok.Set("employee_id", "emp-hr"))
	ctx := jwtauth.NewContext(context.Background(), tok, nil)
	return context.WithValue(ctx, "tx", stubTx{})
}

type fakeSettingsRepo struct{}

func (f *fakeSettingsRepo) Get(ctx context.Context) (payroll.Settings, error) {
	s := payroll.DefaultSettings()
	s.ID = "settings-1"
	return s, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, s payroll.Settings) (payroll.Settings, error) {
	return s, nil
}

type fakeBatchRepo struct {
	batch        *payroll.Batch
	slips        []payroll.Slip
	slipsDeleted []string
}

func (f *fakeBatchRepo) Create(ctx context.Context, b payroll.Batch) (payroll.Batch, error) {
	b.ID = "batch-1"
	f.batch = &b
	return b, nil
}

func (f *fakeBatchRepo) GetByID(ctx context.Context, id string) (payroll.Batch, error) {
	if f.batch != nil && f.batch.ID == id {
		return *f.batch, nil
	}
	return payroll.Batch{}, payroll.ErrBatchNotFound
}

func (f *fakeBatchRepo) GetByPeriod(ctx context.Context, month, year int) (payroll.Batch, error) {
	if f.batch != nil && f.batch.PeriodMonth == month && f.batch.PeriodYear == year {
		return *f.batch, nil
	}
	return payroll.Batch{}, payroll.ErrBatchNotFound
}

func (f *fakeBatchRepo) List(ctx context.Context) ([]payroll.Batch, error) {
	if f.batch == nil {
		return nil, nil
	}
	return []payroll.Batch{*f.batch}, nil
}

func (f *fakeBatchRepo) Update(ctx context.Context, b payroll.Batch) (payroll.Batch, error) {
	if f.batch == nil || f.batch.ID != b.ID {
		return payroll.Batch{}, payroll.ErrBatchNotFound
	}
	f.batch = &b
	return b, nil
}

func (f *fakeBatchRepo) DeleteSlips(ctx context.Context, batchID string) error {
	f.slipsDeleted = append(f.slipsDeleted, batchID)
	f.slips = nil
	return nil
}

func (f *fakeBatchRepo) CreateSlip(ctx context.Context, s payroll.Slip) (payroll.Slip, error) {
	s.ID = "slip-1"
	f.slips = append(f.slips, s)
	return s, nil
}

func (f *fakeBatchRepo) GetSlipByID(ctx context.Context, id string) (payroll.Slip, error) {
	return payroll.Slip{}, payroll.ErrSlipNotFound
}

func (f *fakeBatchRepo) ListSlipsByBatch(ctx context.Context, batchID string) ([]payroll.Slip, error) {
	return f.slips, nil
}

func (f *fakeBatchRepo) ListSlipsByEmployee(ctx context.Context, employeeID string) ([]payroll.Slip, error) {
	return f.slips, nil
}

type fakeReimbursementRepo struct {
	paidIDs []string
}

func (f *fakeReimbursementRepo) Create(ctx context.Context, r reimbursement.Reimbursement) (reimbursement.Reimbursement, error) {
	return r, nil
}

func (f *fakeReimbursementRepo) GetByID(ctx context.Context, id string) (reimbursement.Reimbursement, error) {
	return reimbursement.Reimbursement{}, reimbursement.ErrNotFound
}

func (f *fakeReimbursementRepo) ListByEmployee(ctx context.Context, employeeID string) ([]reimbursement.Reimbursement, error) {
	return nil, nil
}

func (f *fakeReimbursementRepo) List(ctx context.Context, status *reimbursement.Status) ([]reimbursement.Reimbursement, error) {
	return nil, nil
}

func (f *fakeReimbursementRepo) UpdateStatus(ctx context.Context, id string, status reimbursement.Status, processedBy *string, remarks *string) error {
	return nil
}

func (f *fakeReimbursementRepo) ApprovedUnpaidByEmployee(ctx context.Context, employeeID string) ([]reimbursement.Reimbursement, error) {
	return nil, nil
}

func (f *fakeReimbursementRepo) MarkPaid(ctx context.Context, ids []string, batchID string) error {
	f.paidIDs = append(f.paidIDs, ids...)
	return nil
}

type fakeEmployeeRepo struct {
	active []employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	return f.active, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, status *employee.Status) ([]employee.Employee, error) {
	return f.active, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) SetStatus(ctx context.Context, id string, status employee.Status) error {
	return nil
}

func (f *fakeEmployeeRepo) RedactFinancials(ctx context.Context, id string) error {
	return nil
}

type fakeSummarizer struct {
	summary attendance.PeriodSummary
}

func (f *fakeSummarizer) PeriodSummary(ctx context.Context, employeeID string, month, year int) (attendance.PeriodSummary, error) {
	s := f.summary
	s.EmployeeID = employeeID
	return s, nil
}

type recordingAuditor struct {
	entries []audit.Entry
}

func (r *recordingAuditor) Record(ctx context.Context, e audit.Entry) {
	r.entries = append(r.entries, e)
}

func batchService(batchRepo *fakeBatchRepo, auditor *recordingAuditor) *Service {
	return NewService(
		nil,
		&fakeSettingsRepo{},
		batchRepo,
		&fakeReimbursementRepo{},
		&fakeEmployeeRepo{active: []employee.Employee{testEmployee("30000")}},
		&fakeSummarizer{summary: attendance.PeriodSummary{PresentDays: 22}},
		auditor,
	)
}

func processedBatch() payroll.Batch {
	processedAt := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	processedBy := "user-old"
	return payroll.Batch{
		ID:             "batch-1",
		PeriodMonth:    6,
		PeriodYear:     2026,
		Status:         payroll.BatchProcessed,
		TotalEmployees: 2,
		TotalAmount:    dec("55000"),
		ProcessedBy:    &processedBy,
		ProcessedAt:    &processedAt,
	}
}

func TestProcessBatch_FirstRunCreatesBatch(t *testing.T) {
	batchRepo := &fakeBatchRepo{}
	auditor := &recordingAuditor{}
	svc := batchService(batchRepo, auditor)

	resp, err := svc.ProcessBatch(hrContext(t, "user-hr"), payroll.ProcessBatchRequest{PeriodMonth: 6, PeriodYear: 2026})
	require.NoError(t, err)

	assert.Equal(t, string(payroll.BatchProcessed), resp.Status)
	assert.Equal(t, 1, resp.TotalEmployees)
	assert.Len(t, batchRepo.slips, 1)
	assert.Equal(t, "batch-1", batchRepo.slips[0].BatchID)
	require.Len(t, auditor.entries, 1)
	assert.Equal(t, "process", auditor.entries[0].Action)
}

func TestProcessBatch_SecondRunWithoutForceRefused(t *testing.T) {
	existing := processedBatch()
	batchRepo := &fakeBatchRepo{batch: &existing}
	auditor := &recordingAuditor{}
	svc := batchService(batchRepo, auditor)

	_, err := svc.ProcessBatch(hrContext(t, "user-hr"), payroll.ProcessBatchRequest{PeriodMonth: 6, PeriodYear: 2026})
	require.ErrorIs(t, err, payroll.ErrBatchExists)

	assert.Empty(t, batchRepo.slipsDeleted, "existing slips must stay untouched")
	assert.Empty(t, auditor.entries)
}

func TestProcessBatch_PaidBatchNeverRerun(t *testing.T) {
	existing := processedBatch()
	existing.Status = payroll.BatchPaid
	batchRepo := &fakeBatchRepo{batch: &existing}
	svc := batchService(batchRepo, &recordingAuditor{})

	// Force does not override payment.
	_, err := svc.ProcessBatch(hrContext(t, "user-hr"), payroll.ProcessBatchRequest{PeriodMonth: 6, PeriodYear: 2026, Force: true})
	require.ErrorIs(t, err, payroll.ErrBatchPaid)
	assert.Empty(t, batchRepo.slipsDeleted)
}

func TestProcessBatch_ForceReplacesExistingRun(t *testing.T) {
	existing := processedBatch()
	batchRepo := &fakeBatchRepo{
		batch: &existing,
		slips: []payroll.Slip{{ID: "slip-old", BatchID: "batch-1", EmployeeID: "emp-gone", NetSalary: dec("99999")}},
	}
	auditor := &recordingAuditor{}
	svc := batchService(batchRepo, auditor)

	resp, err := svc.ProcessBatch(hrContext(t, "user-hr"), payroll.ProcessBatchRequest{PeriodMonth: 6, PeriodYear: 2026, Force: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"batch-1"}, batchRepo.slipsDeleted)
	require.Len(t, batchRepo.slips, 1)
	assert.Equal(t, "emp-1", batchRepo.slips[0].EmployeeID)

	// The batch row is updated in place, not recreated.
	assert.Equal(t, "batch-1", resp.ID)
	assert.Equal(t, 1, resp.TotalEmployees)
	assert.False(t, batchRepo.batch.TotalAmount.Equal(dec("55000")))
	require.NotNil(t, batchRepo.batch.ProcessedBy)
	assert.Equal(t, "user-hr", *batchRepo.batch.ProcessedBy)

	require.Len(t, auditor.entries, 1)
	assert.Equal(t, true, auditor.entries[0].NewValue["forced"])
}

func TestProcessBatch_HRAccessRequired(t *testing.T) {
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", "user-emp"))
	require.NoError(t, tok.Set("role", "employee"))
	require.NoError(t, tok.Set("employee_id", "emp-1"))
	ctx := jwtauth.NewContext(context.Background(), tok, nil)

	svc := batchService(&fakeBatchRepo{}, &recordingAuditor{})
	_, err := svc.ProcessBatch(ctx, payroll.ProcessBatchRequest{PeriodMonth: 6, PeriodYear: 2026})
	require.ErrorIs(t, err, user.ErrHRAccessRequired)
}
