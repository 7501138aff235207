package employee

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/jwt"
	aggregator "github.com/cmlabs-hris/timeclock-go/internal/service/dashboard"
)

// DirectoryStore is the part of the session and directory store that owns
// employee records.
type DirectoryStore interface {
	Employees() []employee.Employee
	GetEmployee(id string) (employee.Employee, error)
	ActiveEmployee(id string) (employee.Employee, error)
	AddEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error)
	UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	SetManualTotalHours(ctx context.Context, id string, hours *float64) (employee.Employee, error)
	UpdateProfile(ctx context.Context, id string, req employee.UpdateProfileRequest) (employee.Employee, error)
	RemoveProfilePicture(ctx context.Context, id string) (employee.Employee, error)
	ChangePassword(ctx context.Context, id, current, next string) error
}

type EmployeeServiceImpl struct {
	store DirectoryStore
}

func NewEmployeeService(store DirectoryStore) employee.EmployeeService {
	return &EmployeeServiceImpl{store: store}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, req employee.ListEmployeeRequest) (employee.ListEmployeeResponse, error) {
	if _, err := adminSession(ctx); err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	matched := aggregator.FilterEmployees(s.store.Employees(), nil, dashboard.Criteria{
		Search:     req.Search,
		Department: req.Department,
		Position:   req.Position,
		Status:     req.Status,
	})

	resp := employee.ListEmployeeResponse{
		Total:     len(matched),
		Employees: make([]employee.EmployeeResponse, 0, len(matched)),
	}
	for _, e := range matched {
		resp.Employees = append(resp.Employees, employee.NewEmployeeResponse(e))
	}
	return resp, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if _, err := adminSession(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}
	e, err := s.store.GetEmployee(id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if _, err := adminSession(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.store.AddEmployee(ctx, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if _, err := adminSession(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.store.UpdateEmployee(ctx, req.ID, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	slog.Info("Employee updated", "employee_id", e.ID)
	return employee.NewEmployeeResponse(e), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := adminSession(ctx); err != nil {
		return err
	}
	return s.store.DeleteEmployee(ctx, id)
}

// SetManualHours implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetManualHours(ctx context.Context, id string, req employee.ManualHoursRequest) (employee.EmployeeResponse, error) {
	if _, err := adminSession(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.store.SetManualTotalHours(ctx, id, req.Hours)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// UpdateProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, req employee.UpdateProfileRequest) (employee.EmployeeResponse, error) {
	id, err := s.selfID(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.store.UpdateProfile(ctx, id, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// RemoveProfilePicture implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RemoveProfilePicture(ctx context.Context) (employee.EmployeeResponse, error) {
	id, err := s.selfID(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.store.RemoveProfilePicture(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// ChangePassword implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ChangePassword(ctx context.Context, req employee.ChangePasswordRequest) error {
	id, err := s.selfID(ctx)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.store.ChangePassword(ctx, id, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	slog.Info("Password changed", "employee_id", id)
	return nil
}

func adminSession(ctx context.Context) (auth.Session, error) {
	session, err := jwt.SessionFromContext(ctx)
	if err != nil {
		return auth.Session{}, err
	}
	if !session.IsAdmin {
		return auth.Session{}, auth.ErrAdminRequired
	}
	return session, nil
}

// selfID returns the caller's employee ID. Built-in identities have no
// directory record, and a deleted or deactivated record ends the session.
func (s *EmployeeServiceImpl) selfID(ctx context.Context) (string, error) {
	session, err := jwt.SessionFromContext(ctx)
	if err != nil {
		return "", err
	}
	if session.IsAdmin || auth.IsReservedEmail(session.Identity.Email) {
		return "", employee.ErrNotAnEmployee
	}
	if _, err := s.store.ActiveEmployee(session.Identity.ID); err != nil {
		return "", err
	}
	return session.Identity.ID, nil
}
