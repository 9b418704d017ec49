package user

// Action is a gated operation performed by one account on another
// account's data.
type Action string

const (
	ActionApproveRequest Action = "approve_request" // leave, regularization, reimbursement, resignation
	ActionManageRecord   Action = "manage_record"   // profile edits, manual attendance entry
	ActionViewRecord     Action = "view_record"
)

// Actor is the authenticated identity attached to a request.
type Actor struct {
	ID         string
	EmployeeID string
	Role       Role
}

// Subject identifies whose data an action targets.
type Subject struct {
	EmployeeID string
	Role       Role
}

// CanActOn is the single authorization predicate for cross-account
// actions. The rules it encodes:
//
//   - nobody may approve a request they submitted themselves, whatever
//     their role;
//   - requests submitted by HR accounts may only be approved by admin;
//   - HR and admin may manage and view any record;
//   - employees may only view their own records.
func CanActOn(actor Actor, subject Subject, action Action) bool {
	self := actor.EmployeeID != "" && actor.EmployeeID == subject.EmployeeID

	switch action {
	case ActionApproveRequest:
		if self {
			return false
		}
		if subject.Role == RoleHR && actor.Role != RoleAdmin {
			return false
		}
		return actor.Role == RoleAdmin || actor.Role == RoleHR
	case ActionManageRecord:
		return actor.Role == RoleAdmin || actor.Role == RoleHR
	case ActionViewRecord:
		return actor.Role == RoleAdmin || actor.Role == RoleHR || self
	default:
		return false
	}
}
