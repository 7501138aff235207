package employee

import "context"

// EmployeeService covers administrator directory management and
// self-service profile changes for the authenticated employee.
type EmployeeService interface {
	ListEmployees(ctx context.Context, req ListEmployeeRequest) (ListEmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes the record and all of its time entries
	DeleteEmployee(ctx context.Context, id string) error

	// SetManualHours overrides (or clears) the hours used in dashboard totals
	SetManualHours(ctx context.Context, id string, req ManualHoursRequest) (EmployeeResponse, error)

	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (EmployeeResponse, error)
	RemoveProfilePicture(ctx context.Context) (EmployeeResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
