package store

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-go/internal/fixtures"
	"golang.org/x/crypto/bcrypt"
)

// Login authenticates and replaces the persisted device session. It reports
// false, without saying which field was wrong, when nothing matches.
func (s *Store) Login(ctx context.Context, email, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.authenticateLocked(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return false, nil
		}
		return false, err
	}

	if err := s.repo.SaveSession(ctx, &session); err != nil {
		return false, fmt.Errorf("save session: %w", err)
	}
	s.session = &session

	slog.Info("Session started", "user_id", session.Identity.ID, "is_admin", session.IsAdmin)
	return true, nil
}

// Authenticate applies the login rules, including the first admin login
// seed, without touching the persisted device session.
func (s *Store) Authenticate(ctx context.Context, email, password string) (auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.authenticateLocked(ctx, email, password)
}

// Logout clears the persisted device session.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveSession(ctx, nil); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.session = nil
	return nil
}

// Session returns the persisted device session, if any.
func (s *Store) Session() (auth.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return auth.Session{}, false
	}
	return *s.session, true
}

func (s *Store) authenticateLocked(ctx context.Context, email, password string) (auth.Session, error) {
	if equal(email, auth.AdminEmail) && equal(password, auth.AdminPassword) {
		if err := s.seedDemoLocked(ctx); err != nil {
			return auth.Session{}, err
		}
		return auth.Session{Identity: auth.AdminIdentity(), IsAdmin: true}, nil
	}

	if equal(email, auth.LegacyEmployeeEmail) && equal(password, auth.LegacyEmployeePassword) {
		return auth.Session{Identity: auth.LegacyEmployeeIdentity()}, nil
	}

	for _, e := range s.employees {
		if e.Email == email && e.IsActive && checkPassword(e.Password, password) {
			return auth.Session{Identity: e.Identity()}, nil
		}
	}

	return auth.Session{}, auth.ErrInvalidCredentials
}

// seedDemoLocked fills an empty directory with the demonstration employees
// and, when no entries exist yet, their entries for today.
func (s *Store) seedDemoLocked(ctx context.Context) error {
	if len(s.employees) > 0 {
		return nil
	}

	hashed, err := s.hash(employee.DefaultPassword)
	if err != nil {
		return err
	}
	demo := fixtures.DemoEmployees()
	for i := range demo {
		demo[i].Password = hashed
	}

	if err := s.repo.SaveEmployees(ctx, demo); err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}
	s.employees = demo

	if len(s.entries) == 0 {
		date, _ := s.now()
		entries := fixtures.DemoTimeEntries(date)
		if err := s.repo.SaveTimeEntries(ctx, entries); err != nil {
			return fmt.Errorf("seed time entries: %w", err)
		}
		s.entries = entries
		s.index = timeentry.IndexByKey(entries)
	}

	slog.Info("Demo directory seeded", "employees", len(s.employees), "time_entries", len(s.entries))
	s.publish(EventSeeded, map[string]int{"employees": len(s.employees), "time_entries": len(s.entries)})
	return nil
}

// checkPassword accepts bcrypt hashes and, for records written by the browser
// client, plain text.
func checkPassword(stored, candidate string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return equal(stored, candidate)
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
