package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
)

// Employees returns all employee records in stored order.
func (s *Store) Employees() []employee.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]employee.Employee, len(s.employees))
	for i, e := range s.employees {
		out[i] = e.Clone()
	}
	return out
}

func (s *Store) GetEmployee(id string) (employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.employeeIndexLocked(id)
	if idx < 0 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return s.employees[idx].Clone(), nil
}

// ActiveEmployee returns the record behind a token-based session. A deleted
// or deactivated record yields auth.ErrAccountDisabled.
func (s *Store) ActiveEmployee(id string) (employee.Employee, error) {
	e, err := s.GetEmployee(id)
	if err != nil || !e.IsActive {
		return employee.Employee{}, auth.ErrAccountDisabled
	}
	return e, nil
}

// AddEmployee creates a record with a generated ID and today's creation
// date. An empty password becomes employee.DefaultPassword.
func (s *Store) AddEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	date, _ := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e := employee.Employee{
		ID:             newID(),
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Department:     req.Department,
		Position:       req.Position,
		IsActive:       true,
		CreatedAt:      date,
		ProfilePicture: req.ProfilePicture,
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := s.checkEmployeeLocked(e); err != nil {
		return employee.Employee{}, err
	}

	password := req.Password
	if password == "" {
		password = employee.DefaultPassword
	}
	hashed, err := s.hash(password)
	if err != nil {
		return employee.Employee{}, err
	}
	e.Password = hashed

	next := append(append([]employee.Employee(nil), s.employees...), e)
	if err := s.repo.SaveEmployees(ctx, next); err != nil {
		return employee.Employee{}, fmt.Errorf("save employees: %w", err)
	}
	s.employees = next

	slog.Info("Employee created", "employee_id", e.ID, "department", e.Department)
	s.publish(EventEmployeeCreated, e.Identity())
	return e.Clone(), nil
}

// UpdateEmployee applies the non-nil fields of req to employee id.
func (s *Store) UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	var hashed string
	if req.Password != nil {
		h, err := s.hash(*req.Password)
		if err != nil {
			return employee.Employee{}, err
		}
		hashed = h
	}

	return s.mutateEmployee(ctx, id, func(e *employee.Employee) error {
		if req.Name != nil {
			e.Name = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			e.Email = strings.TrimSpace(*req.Email)
		}
		if req.Department != nil {
			e.Department = *req.Department
		}
		if req.Position != nil {
			e.Position = *req.Position
		}
		if req.IsActive != nil {
			e.IsActive = *req.IsActive
		}
		if req.ProfilePicture != nil {
			e.ProfilePicture = req.ProfilePicture
		}
		if req.Password != nil {
			e.Password = hashed
		}
		return nil
	})
}

// UpdateProfile changes the self-service fields of employee id.
func (s *Store) UpdateProfile(ctx context.Context, id string, req employee.UpdateProfileRequest) (employee.Employee, error) {
	return s.mutateEmployee(ctx, id, func(e *employee.Employee) error {
		if req.Name != nil {
			e.Name = strings.TrimSpace(*req.Name)
		}
		if req.ProfilePicture != nil {
			e.ProfilePicture = req.ProfilePicture
		}
		return nil
	})
}

func (s *Store) RemoveProfilePicture(ctx context.Context, id string) (employee.Employee, error) {
	return s.mutateEmployee(ctx, id, func(e *employee.Employee) error {
		e.ProfilePicture = nil
		return nil
	})
}

// ChangePassword replaces the password of employee id after checking the
// current one.
func (s *Store) ChangePassword(ctx context.Context, id, current, next string) error {
	hashed, err := s.hash(next)
	if err != nil {
		return err
	}

	_, err = s.mutateEmployee(ctx, id, func(e *employee.Employee) error {
		if !checkPassword(e.Password, current) {
			return employee.ErrWrongPassword
		}
		e.Password = hashed
		return nil
	})
	return err
}

// SetManualTotalHours overrides the hours used for id in aggregate totals.
// A nil value clears the override.
func (s *Store) SetManualTotalHours(ctx context.Context, id string, hours *float64) (employee.Employee, error) {
	return s.mutateEmployee(ctx, id, func(e *employee.Employee) error {
		if hours == nil {
			e.ManualTotalHours = nil
			return nil
		}
		v := timeentry.RoundHours(*hours)
		e.ManualTotalHours = &v
		return nil
	})
}

// DeleteEmployee removes employee id and every time entry it owns.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.employeeIndexLocked(id)
	if idx < 0 {
		return employee.ErrEmployeeNotFound
	}

	nextEmployees := slices.Delete(append([]employee.Employee(nil), s.employees...), idx, idx+1)
	nextEntries := make([]timeentry.TimeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.EmployeeID != id {
			nextEntries = append(nextEntries, e)
		}
	}

	removed := len(s.entries) - len(nextEntries)
	if removed > 0 {
		if err := s.repo.SaveTimeEntries(ctx, nextEntries); err != nil {
			return fmt.Errorf("save time entries: %w", err)
		}
	}
	if err := s.repo.SaveEmployees(ctx, nextEmployees); err != nil {
		if removed > 0 {
			if rbErr := s.repo.SaveTimeEntries(ctx, s.entries); rbErr != nil {
				slog.Error("Failed to restore time entries after employee delete failure", "employee_id", id, "error", rbErr)
			}
		}
		return fmt.Errorf("save employees: %w", err)
	}

	s.employees = nextEmployees
	s.entries = nextEntries
	s.index = timeentry.IndexByKey(nextEntries)

	slog.Info("Employee deleted", "employee_id", id, "time_entries_removed", removed)
	s.publish(EventEmployeeDeleted, map[string]interface{}{"id": id, "time_entries_removed": removed})
	return nil
}

// mutateEmployee applies fn to a copy of employee id, re-checks the
// directory invariants, persists, and refreshes the session view when the
// session belongs to that employee.
func (s *Store) mutateEmployee(ctx context.Context, id string, fn func(e *employee.Employee) error) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.employeeIndexLocked(id)
	if idx < 0 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	before := s.employees[idx]
	updated := before.Clone()
	if err := fn(&updated); err != nil {
		return employee.Employee{}, err
	}

	if updated.Department != before.Department || updated.Position != before.Position ||
		!strings.EqualFold(updated.Email, before.Email) || updated.IsActive != before.IsActive {
		if err := s.checkEmployeeLocked(updated); err != nil {
			return employee.Employee{}, err
		}
	}

	next := append([]employee.Employee(nil), s.employees...)
	next[idx] = updated
	if err := s.repo.SaveEmployees(ctx, next); err != nil {
		return employee.Employee{}, fmt.Errorf("save employees: %w", err)
	}
	s.employees = next

	if s.session != nil && s.session.Identity.ID == id && !auth.IsReservedEmail(s.session.Identity.Email) {
		refreshed := auth.Session{Identity: updated.Identity()}
		if err := s.repo.SaveSession(ctx, &refreshed); err != nil {
			slog.Error("Failed to refresh session after employee update", "employee_id", id, "error", err)
		} else {
			s.session = &refreshed
		}
	}

	slog.Info("Employee updated", "employee_id", id)
	s.publish(EventEmployeeUpdated, updated.Identity())
	return updated.Clone(), nil
}

// checkEmployeeLocked enforces directory references and active email
// uniqueness for e against every other record.
func (s *Store) checkEmployeeLocked(e employee.Employee) error {
	if !slices.Contains(s.departments, e.Department) {
		return employee.ErrUnknownDepartment
	}
	if !slices.Contains(s.positions, e.Position) {
		return employee.ErrUnknownPosition
	}
	if !e.IsActive {
		return nil
	}
	if auth.IsReservedEmail(strings.ToLower(e.Email)) {
		return employee.ErrEmailExists
	}
	for _, other := range s.employees {
		if other.ID != e.ID && other.IsActive && strings.EqualFold(other.Email, e.Email) {
			return employee.ErrEmailExists
		}
	}
	return nil
}

func (s *Store) employeeIndexLocked(id string) int {
	return slices.IndexFunc(s.employees, func(e employee.Employee) bool {
		return e.ID == id
	})
}
