package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hrms-core/hrms-backend-go/internal/domain/attendance"
	"github.com/hrms-core/hrms-backend-go/internal/domain/auth"
	"github.com/hrms-core/hrms-backend-go/internal/domain/complaint"
	"github.com/hrms-core/hrms-backend-go/internal/domain/employee"
	"github.com/hrms-core/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-core/hrms-backend-go/internal/domain/payroll"
	"github.com/hrms-core/hrms-backend-go/internal/domain/regularization"
	"github.com/hrms-core/hrms-backend-go/internal/domain/reimbursement"
	"github.com/hrms-core/hrms-backend-go/internal/domain/resignation"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrOAuthEmailUnverified):
		Forbidden(w, "Google account email is not verified")

	// Users and authorization
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrSelfActionForbidden):
		Forbidden(w, "You cannot process your own request")
	case errors.Is(err, user.ErrHRSubjectRequiresAdmin):
		Forbidden(w, "Requests submitted by HR can only be processed by admin")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrHRAccessRequired):
		Forbidden(w, "HR access required")

	// Employees
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeTerminated):
		Conflict(w, "Employee is terminated")

	// Attendance
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open check-in for today", nil)
	case errors.Is(err, attendance.ErrSelfClockInDenied):
		Forbidden(w, "Self check-in is disabled")
	case errors.Is(err, attendance.ErrPeriodLocked):
		Conflict(w, "Attendance period is locked by a processed payroll batch")
	case errors.Is(err, attendance.ErrRecordExists):
		Conflict(w, "Attendance record already exists for this date")
	case errors.Is(err, attendance.ErrCheckOutBeforeIn):
		BadRequest(w, "Check-out is before check-in", nil)
	case errors.Is(err, attendance.ErrFutureDate):
		BadRequest(w, "Attendance date is in the future", nil)
	case errors.Is(err, attendance.ErrInvalidRange):
		BadRequest(w, "Period start is after period end", nil)
	case errors.Is(err, attendance.ErrSettingsNotFound):
		NotFound(w, "Attendance settings not found")

	// Leave
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeNameExists):
		Conflict(w, "Leave type name already exists")
	case errors.Is(err, leave.ErrLeaveTypeInactive):
		BadRequest(w, "Leave type is inactive", nil)
	case errors.Is(err, leave.ErrLeaveTypeInUse):
		Conflict(w, "Leave type is referenced by existing requests")
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrRequestProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotApproved):
		Conflict(w, "Leave request is not approved")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Leave request belongs to another employee")

	// Regularization
	case errors.Is(err, regularization.ErrRequestNotFound):
		NotFound(w, "Regularization request not found")
	case errors.Is(err, regularization.ErrRequestProcessed):
		Conflict(w, "Regularization request already processed")
	case errors.Is(err, regularization.ErrInvalidType):
		BadRequest(w, "Invalid regularization type", nil)
	case errors.Is(err, regularization.ErrMissingNewValue):
		BadRequest(w, "Requested change has no value for its type", nil)

	// Payroll
	case errors.Is(err, payroll.ErrSettingsNotFound):
		NotFound(w, "Payroll settings not found")
	case errors.Is(err, payroll.ErrMissingSettings):
		InternalServerError(w, "Payroll settings missing and no employee override present")
	case errors.Is(err, payroll.ErrBatchNotFound):
		NotFound(w, "Payroll batch not found")
	case errors.Is(err, payroll.ErrBatchExists):
		Conflict(w, "Payroll batch already processed for this period")
	case errors.Is(err, payroll.ErrBatchPaid):
		Conflict(w, "Payroll batch already paid")
	case errors.Is(err, payroll.ErrBatchNotProcessed):
		Conflict(w, "Payroll batch is not in processed state")
	case errors.Is(err, payroll.ErrSlipNotFound):
		NotFound(w, "Salary slip not found")
	case errors.Is(err, payroll.ErrNoBaseSalary):
		BadRequest(w, "Employee has no base salary configured", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Reimbursements
	case errors.Is(err, reimbursement.ErrNotFound):
		NotFound(w, "Reimbursement not found")
	case errors.Is(err, reimbursement.ErrAlreadyProcessed):
		Conflict(w, "Reimbursement already processed")

	// Complaints
	case errors.Is(err, complaint.ErrNotFound):
		NotFound(w, "Complaint not found")
	case errors.Is(err, complaint.ErrAlreadyClosed):
		Conflict(w, "Complaint is already closed")

	// Resignations
	case errors.Is(err, resignation.ErrNotFound):
		NotFound(w, "Resignation not found")
	case errors.Is(err, resignation.ErrAlreadyProcessed):
		Conflict(w, "Resignation already processed")
	case errors.Is(err, resignation.ErrResignationActive):
		Conflict(w, "An active resignation already exists")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
