package attendance

import (
	"time"

	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// Aggregate reduces one employee's attendance over a closed date range
// into the per-period counts payroll consumes. Pure: records, approved
// leave dates and holidays are passed in, nothing is read or written.
//
// Per day, in order:
//   - a record stamped by manual entry or regularization keeps its
//     explicit status;
//   - an approved leave date counts as on_leave, record or not;
//   - a holiday counts toward no bucket;
//   - an unstamped record is classified from worked hours against the
//     half-day threshold and standard work hours;
//   - no record at all is an absence.
func Aggregate(
	employeeID string,
	records []attendance.Record,
	leaveDates []time.Time,
	holidays []time.Time,
	settings attendance.Settings,
	start, end time.Time,
) (attendance.PeriodSummary, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if start.After(end) {
		return attendance.PeriodSummary{}, attendance.ErrInvalidRange
	}

	byDate := make(map[time.Time]attendance.Record, len(records))
	for _, rec := range records {
		byDate[truncateDay(rec.Date)] = rec
	}
	onLeave := make(map[time.Time]bool, len(leaveDates))
	for _, d := range leaveDates {
		onLeave[truncateDay(d)] = true
	}
	holiday := make(map[time.Time]bool, len(holidays))
	for _, d := range holidays {
		holiday[truncateDay(d)] = true
	}

	summary := attendance.PeriodSummary{EmployeeID: employeeID}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		rec, hasRecord := byDate[day]

		if hasRecord && rec.EditedBy != nil {
			applyStatus(&summary, rec.Status)
			summary.TotalWorkedHours = summary.TotalWorkedHours.Add(rec.WorkHours)
			continue
		}

		if onLeave[day] {
			summary.OnLeaveDays++
			continue
		}
		if holiday[day] {
			continue
		}
		if !hasRecord {
			summary.AbsentDays++
			continue
		}

		applyStatus(&summary, Classify(rec.WorkHours, settings))
		summary.TotalWorkedHours = summary.TotalWorkedHours.Add(rec.WorkHours)
	}

	return summary, nil
}

// Classify maps worked hours to a day status using the configured
// thresholds.
func Classify(workHours decimal.Decimal, settings attendance.Settings) attendance.Status {
	if workHours.GreaterThanOrEqual(settings.StandardWorkHours) {
		return attendance.StatusPresent
	}
	if workHours.GreaterThanOrEqual(settings.HalfDayThreshold) {
		return attendance.StatusHalfDay
	}
	return attendance.StatusAbsent
}

func applyStatus(summary *attendance.PeriodSummary, status attendance.Status) {
	switch status {
	case attendance.StatusPresent:
		summary.PresentDays++
	case attendance.StatusHalfDay:
		summary.HalfDays++
	case attendance.StatusOnLeave:
		summary.OnLeaveDays++
	default:
		summary.AbsentDays++
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
