package response

import (
	"errors"
	"net/http"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/attendance"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/employee"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/vacation"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrApproverAccessRequired):
		Forbidden(w, "Approver access required")

	// Vacation domain errors
	case errors.Is(err, vacation.ErrDateConflict):
		Conflict(w, err.Error())
	case errors.Is(err, vacation.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, vacation.ErrInsufficientBalance):
		BadRequest(w, "Insufficient vacation balance", nil)
	case errors.Is(err, vacation.ErrNotRequestOwner):
		Forbidden(w, "Only the request owner may do this")
	case errors.Is(err, vacation.ErrRequestNotFound):
		NotFound(w, "Vacation request not found")
	case errors.Is(err, vacation.ErrCycleNotFound):
		NotFound(w, "No vacation cycle for employee")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrTypeNotFound):
		NotFound(w, "Attendance type not found")
	case errors.Is(err, attendance.ErrGestureInFlight):
		Conflict(w, "Another marking operation is in progress")
	case errors.Is(err, attendance.ErrNoGesture):
		Conflict(w, "No marking gesture in progress")
	case errors.Is(err, attendance.ErrPersistenceFailure):
		BadGateway(w, "Attendance store rejected the write")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
