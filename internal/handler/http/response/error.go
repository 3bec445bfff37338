package response

import (
	"errors"
	"net/http"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/attendance"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/employee"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/mapping"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/period"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/policy"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/punch"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/regularisation"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/shift"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/user"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Policy conflicts: the request is well-formed but the engine's
	// invariants refuse it.
	case errors.Is(err, period.ErrPeriodClosed):
		Conflict(w, "Attendance period is closed for this date")
	case errors.Is(err, attendance.ErrRecordLocked):
		Conflict(w, "Attendance record is locked")
	case errors.Is(err, regularisation.ErrActiveRequestExists):
		Conflict(w, "An active regularisation request already exists for this date")
	case errors.Is(err, regularisation.ErrInvalidTransition):
		Conflict(w, "Invalid state transition for regularisation request")
	case errors.Is(err, shift.ErrShiftReferencedByLockedPeriod):
		Conflict(w, "Shift is referenced by a locked attendance period")

	// Authorization
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, regularisation.ErrNotRequestOwner),
		errors.Is(err, regularisation.ErrNotReportingManager):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrPatternNotFound):
		NotFound(w, "Weekly off pattern not found")
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "Attendance policy not found")
	case errors.Is(err, mapping.ErrMappingNotFound):
		NotFound(w, "Attendance mapping not found")
	case errors.Is(err, punch.ErrPunchNotFound):
		NotFound(w, "Punch not found")
	case errors.Is(err, punch.ErrGeoFenceNotFound):
		NotFound(w, "Geofence location not found")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, regularisation.ErrRequestNotFound):
		NotFound(w, "Regularisation request not found")
	case errors.Is(err, period.ErrClosureNotFound):
		NotFound(w, "Period closure not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
