package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/directory"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
)

func (s *Store) Departments() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.departments...)
}

func (s *Store) Positions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.positions...)
}

// AddDepartment appends name unless it is already present. The flag reports
// whether anything was added.
func (s *Store) AddDepartment(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, added := appendUnique(s.departments, name)
	if !added {
		return false, nil
	}
	if err := s.repo.SaveDepartments(ctx, next); err != nil {
		return false, fmt.Errorf("save departments: %w", err)
	}
	s.departments = next

	slog.Info("Department added", "name", name)
	s.publish(EventDepartmentAdded, name)
	return true, nil
}

// RemoveDepartment fails with directory.ErrDepartmentInUse while any
// employee references name.
func (s *Store) RemoveDepartment(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.Index(s.departments, name)
	if idx < 0 {
		return directory.ErrDepartmentNotFound
	}
	if slices.ContainsFunc(s.employees, func(e employee.Employee) bool { return e.Department == name }) {
		return directory.ErrDepartmentInUse
	}

	next := slices.Delete(append([]string(nil), s.departments...), idx, idx+1)
	if err := s.repo.SaveDepartments(ctx, next); err != nil {
		return fmt.Errorf("save departments: %w", err)
	}
	s.departments = next

	slog.Info("Department removed", "name", name)
	s.publish(EventDepartmentRemoved, name)
	return nil
}

// AddPosition appends name unless it is already present. The flag reports
// whether anything was added.
func (s *Store) AddPosition(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, added := appendUnique(s.positions, name)
	if !added {
		return false, nil
	}
	if err := s.repo.SavePositions(ctx, next); err != nil {
		return false, fmt.Errorf("save positions: %w", err)
	}
	s.positions = next

	slog.Info("Position added", "name", name)
	s.publish(EventPositionAdded, name)
	return true, nil
}

// RemovePosition fails with directory.ErrPositionInUse while any employee
// references name.
func (s *Store) RemovePosition(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.Index(s.positions, name)
	if idx < 0 {
		return directory.ErrPositionNotFound
	}
	if slices.ContainsFunc(s.employees, func(e employee.Employee) bool { return e.Position == name }) {
		return directory.ErrPositionInUse
	}

	next := slices.Delete(append([]string(nil), s.positions...), idx, idx+1)
	if err := s.repo.SavePositions(ctx, next); err != nil {
		return fmt.Errorf("save positions: %w", err)
	}
	s.positions = next

	slog.Info("Position removed", "name", name)
	s.publish(EventPositionRemoved, name)
	return nil
}

func appendUnique(list []string, name string) ([]string, bool) {
	if name == "" || slices.Contains(list, name) {
		return list, false
	}
	return append(append([]string(nil), list...), name), true
}
