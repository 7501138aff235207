package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/directory"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/validator"
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
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrNoSession):
		Unauthorized(w, "Not logged in")
	case errors.Is(err, auth.ErrAccountDisabled):
		Unauthorized(w, "Account is no longer active")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Administrator access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered to an active employee")
	case errors.Is(err, employee.ErrUnknownDepartment):
		ValidationError(w, map[string]string{"department": "department does not exist"})
	case errors.Is(err, employee.ErrUnknownPosition):
		ValidationError(w, map[string]string{"position": "position does not exist"})
	case errors.Is(err, employee.ErrWrongPassword):
		ValidationError(w, map[string]string{"current_password": "current password is incorrect"})
	case errors.Is(err, employee.ErrNotAnEmployee):
		Forbidden(w, "Built-in accounts have no employee profile")

	// Directory errors
	case errors.Is(err, directory.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, directory.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, directory.ErrDepartmentInUse):
		Conflict(w, "Department is assigned to employees")
	case errors.Is(err, directory.ErrPositionInUse):
		Conflict(w, "Position is assigned to employees")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
