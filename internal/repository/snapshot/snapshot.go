package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/directory"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/kv"
)

// Persisted key names, shared with the browser client's storage layout.
const (
	KeyUser        = "user"
	KeyIsAdmin     = "isAdmin"
	KeyEmployees   = "employees"
	KeyTimeEntries = "timeEntries"
	KeyDepartments = "departments"
	KeyPositions   = "positions"
)

type snapshotRepositoryImpl struct {
	store kv.Store
}

func NewSnapshotRepository(store kv.Store) directory.Repository {
	return &snapshotRepositoryImpl{store: store}
}

// Load implements directory.Repository.
func (r *snapshotRepositoryImpl) Load(ctx context.Context) (directory.Snapshot, error) {
	var snap directory.Snapshot

	var identity auth.Identity
	ok, err := r.getJSON(ctx, KeyUser, &identity)
	if err != nil {
		return directory.Snapshot{}, err
	}
	if ok {
		session := auth.Session{Identity: identity}
		raw, found, err := r.store.Get(ctx, KeyIsAdmin)
		if err != nil {
			return directory.Snapshot{}, fmt.Errorf("failed to load %s: %w", KeyIsAdmin, err)
		}
		if found {
			session.IsAdmin, _ = strconv.ParseBool(raw)
		}
		snap.Session = &session
	}

	if _, err := r.getJSON(ctx, KeyEmployees, &snap.Employees); err != nil {
		return directory.Snapshot{}, err
	}
	if _, err := r.getJSON(ctx, KeyTimeEntries, &snap.TimeEntries); err != nil {
		return directory.Snapshot{}, err
	}
	if _, err := r.getJSON(ctx, KeyDepartments, &snap.Departments); err != nil {
		return directory.Snapshot{}, err
	}
	if _, err := r.getJSON(ctx, KeyPositions, &snap.Positions); err != nil {
		return directory.Snapshot{}, err
	}

	return snap, nil
}

// SaveSession implements directory.Repository.
func (r *snapshotRepositoryImpl) SaveSession(ctx context.Context, session *auth.Session) error {
	if session == nil {
		if err := r.store.Remove(ctx, KeyUser); err != nil {
			return fmt.Errorf("failed to clear %s: %w", KeyUser, err)
		}
		if err := r.store.Remove(ctx, KeyIsAdmin); err != nil {
			return fmt.Errorf("failed to clear %s: %w", KeyIsAdmin, err)
		}
		return nil
	}

	if err := r.setJSON(ctx, KeyUser, session.Identity); err != nil {
		return err
	}
	if err := r.store.Set(ctx, KeyIsAdmin, strconv.FormatBool(session.IsAdmin)); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyIsAdmin, err)
	}
	return nil
}

// SaveEmployees implements directory.Repository.
func (r *snapshotRepositoryImpl) SaveEmployees(ctx context.Context, employees []employee.Employee) error {
	if employees == nil {
		employees = []employee.Employee{}
	}
	return r.setJSON(ctx, KeyEmployees, employees)
}

// SaveTimeEntries implements directory.Repository.
func (r *snapshotRepositoryImpl) SaveTimeEntries(ctx context.Context, entries []timeentry.TimeEntry) error {
	if entries == nil {
		entries = []timeentry.TimeEntry{}
	}
	return r.setJSON(ctx, KeyTimeEntries, entries)
}

// SaveDepartments implements directory.Repository.
func (r *snapshotRepositoryImpl) SaveDepartments(ctx context.Context, departments []string) error {
	if departments == nil {
		departments = []string{}
	}
	return r.setJSON(ctx, KeyDepartments, departments)
}

// SavePositions implements directory.Repository.
func (r *snapshotRepositoryImpl) SavePositions(ctx context.Context, positions []string) error {
	if positions == nil {
		positions = []string{}
	}
	return r.setJSON(ctx, KeyPositions, positions)
}

func (r *snapshotRepositoryImpl) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (r *snapshotRepositoryImpl) setJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
