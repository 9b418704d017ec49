package attendance

import (
	"testing"
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func workedRecord(d int, hours string) attendance.Record {
	h, err := decimal.NewFromString(hours)
	if err != nil {
		panic(err)
	}
	return attendance.Record{
		EmployeeID: "emp-1",
		Date:       day(d),
		WorkHours:  h,
	}
}

func TestAggregate_InvalidRange(t *testing.T) {
	_, err := Aggregate("emp-1", nil, nil, nil, attendance.DefaultSettings(), day(10), day(5))
	assert.ErrorIs(t, err, attendance.ErrInvalidRange)
}

func TestAggregate_ClassifiesByWorkedHours(t *testing.T) {
	records := []attendance.Record{
		workedRecord(1, "8"),    // present: at standard
		workedRecord(2, "9.5"),  // present: above standard
		workedRecord(3, "4"),    // half day: at threshold
		workedRecord(4, "6.25"), // half day: between threshold and standard
		workedRecord(5, "3.99"), // absent: below threshold
	}

	summary, err := Aggregate("emp-1", records, nil, nil, attendance.DefaultSettings(), day(1), day(5))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.PresentDays)
	assert.Equal(t, 2, summary.HalfDays)
	assert.Equal(t, 1, summary.AbsentDays)
	assert.Equal(t, "31.74", summary.TotalWorkedHours.StringFixed(2))
}

func TestAggregate_MissingDaysAreAbsent(t *testing.T) {
	records := []attendance.Record{workedRecord(1, "8")}

	summary, err := Aggregate("emp-1", records, nil, nil, attendance.DefaultSettings(), day(1), day(5))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.PresentDays)
	assert.Equal(t, 4, summary.AbsentDays)
}

func TestAggregate_LeaveAndHolidaysExcuseAbsence(t *testing.T) {
	records := []attendance.Record{workedRecord(1, "8")}
	leave := []time.Time{day(2), day(3)}
	holidays := []time.Time{day(4)}

	summary, err := Aggregate("emp-1", records, leave, holidays, attendance.DefaultSettings(), day(1), day(5))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.PresentDays)
	assert.Equal(t, 2, summary.OnLeaveDays)
	assert.Equal(t, 1, summary.AbsentDays) // only day 5 is unexcused
}

func TestAggregate_ExplicitMarkWinsOverHours(t *testing.T) {
	editor := "hr-1"
	marked := workedRecord(1, "0")
	marked.Status = attendance.StatusPresent
	marked.EditedBy = &editor

	summary, err := Aggregate("emp-1", []attendance.Record{marked}, nil, nil, attendance.DefaultSettings(), day(1), day(1))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.PresentDays)
	assert.Equal(t, 0, summary.AbsentDays)
}

func TestAggregate_ExplicitMarkWinsOverLeaveDate(t *testing.T) {
	editor := "hr-1"
	marked := workedRecord(1, "8")
	marked.Status = attendance.StatusPresent
	marked.EditedBy = &editor

	summary, err := Aggregate("emp-1", []attendance.Record{marked}, []time.Time{day(1)}, nil, attendance.DefaultSettings(), day(1), day(1))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.PresentDays)
	assert.Equal(t, 0, summary.OnLeaveDays)
}

func TestAggregate_SingleDayRange(t *testing.T) {
	summary, err := Aggregate("emp-1", nil, nil, nil, attendance.DefaultSettings(), day(7), day(7))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.AbsentDays)
}

func TestClassify_Boundaries(t *testing.T) {
	settings := attendance.DefaultSettings()
	cases := []struct {
		hours string
		want  attendance.Status
	}{
		{"0", attendance.StatusAbsent},
		{"3.99", attendance.StatusAbsent},
		{"4", attendance.StatusHalfDay},
		{"7.99", attendance.StatusHalfDay},
		{"8", attendance.StatusPresent},
		{"12", attendance.StatusPresent},
	}
	for _, tc := range cases {
		h, err := decimal.NewFromString(tc.hours)
		require.NoError(t, err)
		assert.Equal(t, tc.want, Classify(h, settings), "hours %s", tc.hours)
	}
}
