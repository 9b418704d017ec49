package regularization

import (
	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/hrms-core/hrms-backend-go/internal/domain/regularization"
	attendancesvc "github.com/hrms-core/hrms-backend-go/internal/service/attendance"
	"github.com/shopspring/decimal"
)

// applyChange merges an approved correction into the attendance
// record. Only the fields the request type names change; when both
// clock times end up present the worked hours and status are
// re-derived. The result carries the approver and the request's
// reason as its edit trail.
func applyChange(rec attendance.Record, r regularization.Request, settings attendance.Settings, approverID string) (attendance.Record, error) {
	switch r.Type {
	case regularization.TypeCheckIn:
		rec.CheckIn = r.NewCheckIn
	case regularization.TypeCheckOut:
		rec.CheckOut = r.NewCheckOut
	case regularization.TypeBoth:
		rec.CheckIn = r.NewCheckIn
		rec.CheckOut = r.NewCheckOut
	case regularization.TypeStatusChange:
		if r.NewStatus == nil {
			return attendance.Record{}, regularization.ErrMissingNewValue
		}
		rec.Status = attendance.Status(*r.NewStatus)
	default:
		return attendance.Record{}, regularization.ErrInvalidType
	}

	if r.Type != regularization.TypeStatusChange && rec.CheckIn != nil && rec.CheckOut != nil {
		if rec.CheckOut.Before(*rec.CheckIn) {
			return attendance.Record{}, attendance.ErrCheckOutBeforeIn
		}
		rec.WorkHours = decimal.NewFromFloat(rec.CheckOut.Sub(*rec.CheckIn).Hours()).Round(2)
		rec.Status = attendancesvc.Classify(rec.WorkHours, settings)
	}

	rec.EditedBy = &approverID
	rec.EditReason = &r.Reason
	return rec, nil
}
