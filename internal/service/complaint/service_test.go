package complaint

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/domain/complaint"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actorContext(t *testing.T, userID, role, employeeID string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", userID))
	require.NoError(t, tok.Set("role", role))
	require.NoError(t, tok.Set("employee_id", employeeID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeRepo struct {
	complaints map[string]complaint.Complaint
	seq        int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{complaints: map[string]complaint.Complaint{}}
}

func (f *fakeRepo) add(c complaint.Complaint) complaint.Complaint {
	f.seq++
	if c.ID == "" {
		c.ID = fmt.Sprintf("cmp-%d", f.seq)
	}
	f.complaints[c.ID] = c
	return c
}

func (f *fakeRepo) Create(ctx context.Context, c complaint.Complaint) (complaint.Complaint, error) {
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	return f.add(c), nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (complaint.Complaint, error) {
	c, ok := f.complaints[id]
	if !ok {
		return complaint.Complaint{}, complaint.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) ListByEmployee(ctx context.Context, employeeID string) ([]complaint.Complaint, error) {
	var out []complaint.Complaint
	for _, c := range f.complaints {
		if c.EmployeeID == employeeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) List(ctx context.Context, status *complaint.Status, excludeAdminSubjects bool) ([]complaint.Complaint, error) {
	var out []complaint.Complaint
	for _, c := range f.complaints {
		if status != nil && c.Status != *status {
			continue
		}
		if excludeAdminSubjects && c.EmployeeRole != nil && user.Role(*c.EmployeeRole) == user.RoleAdmin {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, c complaint.Complaint) error {
	if _, ok := f.complaints[c.ID]; !ok {
		return complaint.ErrNotFound
	}
	f.complaints[c.ID] = c
	return nil
}

type recordingAuditor struct {
	entries []audit.Entry
}

func (r *recordingAuditor) Record(ctx context.Context, e audit.Entry) {
	r.entries = append(r.entries, e)
}

func strptr(s string) *string { return &s }

func openComplaint(employeeID string) complaint.Complaint {
	return complaint.Complaint{
		EmployeeID:  employeeID,
		Subject:     "Broken AC",
		Description: "The AC on floor 2 has been off for a week",
		Category:    "facilities",
		Priority:    complaint.PriorityMedium,
		Status:      complaint.StatusOpen,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestSubmit_DefaultsPriorityAndOpensComplaint(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &recordingAuditor{})

	resp, err := svc.Submit(actorContext(t, "user-1", "employee", "emp-1"), complaint.SubmitRequest{
		Subject:     "Payslip discrepancy",
		Description: "June payslip is missing the travel allowance",
		Category:    "payroll",
	})
	require.NoError(t, err)

	assert.Equal(t, string(complaint.PriorityMedium), resp.Priority)
	assert.Equal(t, string(complaint.StatusOpen), resp.Status)
	assert.Equal(t, "emp-1", resp.EmployeeID)
}

func TestSubmit_RequiresEmployeeProfile(t *testing.T) {
	svc := NewService(newFakeRepo(), &recordingAuditor{})

	_, err := svc.Submit(actorContext(t, "user-1", "admin", ""), complaint.SubmitRequest{
		Subject:     "x",
		Description: "y",
		Category:    "other",
	})
	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestRespond_DefaultsToInProgress(t *testing.T) {
	repo := newFakeRepo()
	c := repo.add(openComplaint("emp-1"))
	auditor := &recordingAuditor{}
	svc := NewService(repo, auditor)

	resp, err := svc.Respond(actorContext(t, "user-hr", "hr", "emp-hr"), complaint.RespondRequest{
		ID:       c.ID,
		Response: "Facilities has been notified",
	})
	require.NoError(t, err)

	assert.Equal(t, string(complaint.StatusInProgress), resp.Status)
	require.NotNil(t, resp.RespondedAt)

	stored := repo.complaints[c.ID]
	require.NotNil(t, stored.RespondedBy)
	assert.Equal(t, "user-hr", *stored.RespondedBy)

	require.Len(t, auditor.entries, 1)
	assert.Equal(t, "respond", auditor.entries[0].Action)
	assert.Equal(t, "complaint", auditor.entries[0].Module)
}

func TestRespond_ExplicitStatusCloses(t *testing.T) {
	repo := newFakeRepo()
	c := repo.add(openComplaint("emp-1"))
	svc := NewService(repo, &recordingAuditor{})

	resp, err := svc.Respond(actorContext(t, "user-hr", "hr", "emp-hr"), complaint.RespondRequest{
		ID:       c.ID,
		Response: "Resolved on site",
		Status:   strptr(string(complaint.StatusClosed)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(complaint.StatusClosed), resp.Status)
}

func TestRespond_SelfResponseForbidden(t *testing.T) {
	repo := newFakeRepo()
	c := repo.add(openComplaint("emp-hr"))
	svc := NewService(repo, &recordingAuditor{})

	_, err := svc.Respond(actorContext(t, "user-hr", "hr", "emp-hr"), complaint.RespondRequest{
		ID:       c.ID,
		Response: "noted",
	})
	require.ErrorIs(t, err, user.ErrSelfActionForbidden)
}

func TestRespond_HRSubjectRequiresAdmin(t *testing.T) {
	repo := newFakeRepo()
	c := openComplaint("emp-other-hr")
	c.EmployeeRole = strptr("hr")
	c = repo.add(c)
	svc := NewService(repo, &recordingAuditor{})

	_, err := svc.Respond(actorContext(t, "user-hr", "hr", "emp-hr"), complaint.RespondRequest{
		ID:       c.ID,
		Response: "noted",
	})
	require.ErrorIs(t, err, user.ErrHRSubjectRequiresAdmin)

	_, err = svc.Respond(actorContext(t, "user-admin", "admin", ""), complaint.RespondRequest{
		ID:       c.ID,
		Response: "handled",
	})
	require.NoError(t, err)
}

func TestRespond_ClosedComplaintRefused(t *testing.T) {
	repo := newFakeRepo()
	c := openComplaint("emp-1")
	c.Status = complaint.StatusClosed
	c = repo.add(c)
	svc := NewService(repo, &recordingAuditor{})

	_, err := svc.Respond(actorContext(t, "user-hr", "hr", "emp-hr"), complaint.RespondRequest{
		ID:       c.ID,
		Response: "too late",
	})
	require.ErrorIs(t, err, complaint.ErrAlreadyClosed)
}

func TestClose_TransitionsAndAudits(t *testing.T) {
	repo := newFakeRepo()
	c := repo.add(openComplaint("emp-1"))
	auditor := &recordingAuditor{}
	svc := NewService(repo, auditor)

	ctx := actorContext(t, "user-hr", "hr", "emp-hr")
	require.NoError(t, svc.Close(ctx, c.ID))
	assert.Equal(t, complaint.StatusClosed, repo.complaints[c.ID].Status)

	require.ErrorIs(t, svc.Close(ctx, c.ID), complaint.ErrAlreadyClosed)

	require.Len(t, auditor.entries, 1)
	assert.Equal(t, "close", auditor.entries[0].Action)
}

func TestList_ScopedByRole(t *testing.T) {
	repo := newFakeRepo()
	repo.add(openComplaint("emp-1"))
	repo.add(openComplaint("emp-2"))
	adminOwned := openComplaint("emp-admin")
	adminOwned.EmployeeRole = strptr("admin")
	repo.add(adminOwned)
	svc := NewService(repo, &recordingAuditor{})

	all, err := svc.List(actorContext(t, "user-admin", "admin", ""), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	hrVisible, err := svc.List(actorContext(t, "user-hr", "hr", "emp-hr"), nil)
	require.NoError(t, err)
	assert.Len(t, hrVisible, 2, "admin subjects are hidden from hr")

	own, err := svc.List(actorContext(t, "user-1", "employee", "emp-1"), nil)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "emp-1", own[0].EmployeeID)
}

func TestAnonymous_IdentityHiddenFromHR(t *testing.T) {
	repo := newFakeRepo()
	c := openComplaint("emp-1")
	c.IsAnonymous = true
	c.EmployeeName = strptr("Jordan Lee")
	c = repo.add(c)
	svc := NewService(repo, &recordingAuditor{})

	seen, err := svc.Get(actorContext(t, "user-hr", "hr", "emp-hr"), c.ID)
	require.NoError(t, err)
	assert.Empty(t, seen.EmployeeID)
	assert.Nil(t, seen.EmployeeName)

	// The complainant and admins still see the identity.
	mine, err := svc.Get(actorContext(t, "user-1", "employee", "emp-1"), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", mine.EmployeeID)

	admin, err := svc.Get(actorContext(t, "user-admin", "admin", ""), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", admin.EmployeeID)
}
