package regularization

import (
	"testing"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/hrms-core/hrms-backend-go/internal/domain/regularization"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func clockAt(hour, minute int) *time.Time {
	t := time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
	return &t
}

func emptyRecord() attendance.Record {
	return attendance.Record{
		EmployeeID: "emp-1",
		Date:       testDay,
		Status:     attendance.StatusAbsent,
		WorkHours:  decimal.Zero,
	}
}

func correction(t regularization.RequestType) regularization.Request {
	return regularization.Request{
		ID:             "rr-1",
		EmployeeID:     "emp-1",
		AttendanceDate: testDay,
		Type:           t,
		Reason:         "forgot to clock in",
		Status:         regularization.StatusPending,
	}
}

func TestApplyChange_CheckInOnly(t *testing.T) {
	req := correction(regularization.TypeCheckIn)
	req.NewCheckIn = clockAt(9, 0)

	rec, err := applyChange(emptyRecord(), req, attendance.DefaultSettings(), "approver-1")
	require.NoError(t, err)

	require.NotNil(t, rec.CheckIn)
	assert.Equal(t, *req.NewCheckIn, *rec.CheckIn)
	assert.Nil(t, rec.CheckOut, "check-out must stay untouched")
	assert.True(t, rec.WorkHours.IsZero(), "no hours without both clock times")

	require.NotNil(t, rec.EditedBy)
	assert.Equal(t, "approver-1", *rec.EditedBy)
	require.NotNil(t, rec.EditReason)
	assert.Equal(t, "forgot to clock in", *rec.EditReason)
}

func TestApplyChange_BothRederivesHoursAndStatus(t *testing.T) {
	req := correction(regularization.TypeBoth)
	req.NewCheckIn = clockAt(9, 0)
	req.NewCheckOut = clockAt(18, 0)

	rec, err := applyChange(emptyRecord(), req, attendance.DefaultSettings(), "approver-1")
	require.NoError(t, err)

	assert.Equal(t, "9", rec.WorkHours.String())
	assert.Equal(t, attendance.StatusPresent, rec.Status)
}

func TestApplyChange_CheckOutCompletesExistingCheckIn(t *testing.T) {
	existing := emptyRecord()
	existing.CheckIn = clockAt(10, 0)
	existing.Status = attendance.StatusPresent

	req := correction(regularization.TypeCheckOut)
	req.NewCheckOut = clockAt(14, 30)

	rec, err := applyChange(existing, req, attendance.DefaultSettings(), "approver-1")
	require.NoError(t, err)

	assert.Equal(t, "4.5", rec.WorkHours.String())
	assert.Equal(t, attendance.StatusHalfDay, rec.Status)
}

func TestApplyChange_StatusChange(t *testing.T) {
	existing := emptyRecord()
	existing.CheckIn = clockAt(9, 0)
	existing.CheckOut = clockAt(12, 0)
	existing.WorkHours = decimal.NewFromInt(3)

	newStatus := string(attendance.StatusHalfDay)
	req := correction(regularization.TypeStatusChange)
	req.NewStatus = &newStatus

	rec, err := applyChange(existing, req, attendance.DefaultSettings(), "approver-1")
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusHalfDay, rec.Status)
	assert.Equal(t, "3", rec.WorkHours.String(), "status change must not rewrite hours")
}

func TestApplyChange_CheckOutBeforeCheckIn(t *testing.T) {
	req := correction(regularization.TypeBoth)
	req.NewCheckIn = clockAt(18, 0)
	req.NewCheckOut = clockAt(9, 0)

	_, err := applyChange(emptyRecord(), req, attendance.DefaultSettings(), "approver-1")
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeIn)
}

func TestApplyChange_StatusChangeWithoutValue(t *testing.T) {
	req := correction(regularization.TypeStatusChange)

	_, err := applyChange(emptyRecord(), req, attendance.DefaultSettings(), "approver-1")
	assert.ErrorIs(t, err, regularization.ErrMissingNewValue)
}
