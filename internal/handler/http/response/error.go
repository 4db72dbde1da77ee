package response

import (
	"errors"
	"net/http"

	"github.com/sitehr/sitehr-backend-go/internal/domain/attendance"
	"github.com/sitehr/sitehr-backend-go/internal/domain/auth"
	"github.com/sitehr/sitehr-backend-go/internal/domain/employee"
	"github.com/sitehr/sitehr-backend-go/internal/domain/evaluation"
	"github.com/sitehr/sitehr-backend-go/internal/domain/leave"
	"github.com/sitehr/sitehr-backend-go/internal/domain/notification"
	"github.com/sitehr/sitehr-backend-go/internal/domain/payroll"
	"github.com/sitehr/sitehr-backend-go/internal/domain/site"
	"github.com/sitehr/sitehr-backend-go/internal/domain/task"
	"github.com/sitehr/sitehr-backend-go/internal/domain/user"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrInvalidOAuthState):
		Unauthorized(w, "Invalid OAuth exchange")
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "Email not verified")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is deactivated")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Worker and employee domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Construction site not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoCheckIn):
		NotFound(w, "No check-in record found for this date")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrLineItemNotFound):
		NotFound(w, "Payroll line item not found")
	case errors.Is(err, payroll.ErrLineItemPaid):
		Conflict(w, "Payroll line item already paid")
	case errors.Is(err, payroll.ErrAdjustmentNotFound):
		NotFound(w, "Adjustment not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")

	// Evaluation domain errors
	case errors.Is(err, evaluation.ErrEvaluationNotFound):
		NotFound(w, "Evaluation not found")
	case errors.Is(err, evaluation.ErrDuplicatePeriod):
		Conflict(w, "Worker already evaluated for this period")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
