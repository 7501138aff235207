// Package store is the single owner of the session identity, the employee
// directory, departments, positions and time entries. Every mutation checks
// the directory invariants, persists the changed collections through the
// repository and only then replaces the in-memory state.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/directory"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-go/internal/fixtures"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Publisher receives change events after successful mutations.
type Publisher interface {
	Publish(event string, data interface{})
}

const (
	EventSeeded            = "directory.seeded"
	EventEmployeeCreated   = "employee.created"
	EventEmployeeUpdated   = "employee.updated"
	EventEmployeeDeleted   = "employee.deleted"
	EventClockedIn         = "time_entry.clocked_in"
	EventClockedOut        = "time_entry.clocked_out"
	EventDepartmentAdded   = "department.added"
	EventDepartmentRemoved = "department.removed"
	EventPositionAdded     = "position.added"
	EventPositionRemoved   = "position.removed"
)

type Option func(*Store)

func WithClock(c Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLocation sets the zone used to derive today's date and time of day.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithHashCost sets the bcrypt cost for stored passwords.
func WithHashCost(cost int) Option {
	return func(s *Store) {
		s.hashCost = cost
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Store) {
		s.publisher = p
	}
}

type Store struct {
	repo      directory.Repository
	clock     Clock
	loc       *time.Location
	hashCost  int
	publisher Publisher

	mu          sync.RWMutex
	session     *auth.Session
	employees   []employee.Employee
	entries     []timeentry.TimeEntry
	index       map[timeentry.Key]int
	departments []string
	positions   []string
}

// New loads persisted state from repo. Departments and positions that were
// never persisted start from the default seeds.
func New(ctx context.Context, repo directory.Repository, opts ...Option) (*Store, error) {
	s := &Store{
		repo:     repo,
		clock:    realClock{},
		loc:      time.UTC,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	s.session = snap.Session
	s.employees = snap.Employees
	s.entries = snap.TimeEntries
	s.departments = snap.Departments
	if s.departments == nil {
		s.departments = fixtures.DefaultDepartments()
	}
	s.positions = snap.Positions
	if s.positions == nil {
		s.positions = fixtures.DefaultPositions()
	}
	s.index = timeentry.IndexByKey(s.entries)

	return s, nil
}

// Today returns the current date in the store's zone.
func (s *Store) Today() string {
	date, _ := s.now()
	return date
}

// Location returns the zone used for dates and times of day.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() directory.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return directory.Snapshot{
		Session:     s.session,
		Employees:   s.employees,
		TimeEntries: s.entries,
		Departments: s.departments,
		Positions:   s.positions,
	}.Clone()
}

func (s *Store) now() (date, clock string) {
	t := s.clock.Now().In(s.loc)
	return t.Format(timeentry.DateLayout), t.Format(timeentry.ClockLayout)
}

func (s *Store) publish(event string, data interface{}) {
	if s.publisher != nil {
		s.publisher.Publish(event, data)
	}
}

func (s *Store) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
