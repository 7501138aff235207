package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
)

// CurrentEntry returns today's entry for the session identity.
func (s *Store) CurrentEntry() (timeentry.TimeEntry, bool) {
	session, ok := s.Session()
	if !ok {
		return timeentry.TimeEntry{}, false
	}
	return s.CurrentEntryFor(session.Identity.ID)
}

// CurrentEntryFor returns today's entry for employeeID.
func (s *Store) CurrentEntryFor(employeeID string) (timeentry.TimeEntry, bool) {
	date, _ := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.index[timeentry.Key{EmployeeID: employeeID, Date: date}]
	if !ok {
		return timeentry.TimeEntry{}, false
	}
	return s.entries[idx].Clone(), true
}

// ClockIn clocks in the session identity. Without a session it does nothing.
func (s *Store) ClockIn(ctx context.Context) (timeentry.TimeEntry, bool, error) {
	session, ok := s.Session()
	if !ok {
		slog.Debug("Clock in skipped: no session")
		return timeentry.TimeEntry{}, false, nil
	}
	return s.ClockInFor(ctx, session.Identity.ID)
}

// ClockOut clocks out the session identity. Without a session it does nothing.
func (s *Store) ClockOut(ctx context.Context) (timeentry.TimeEntry, bool, error) {
	session, ok := s.Session()
	if !ok {
		slog.Debug("Clock out skipped: no session")
		return timeentry.TimeEntry{}, false, nil
	}
	return s.ClockOutFor(ctx, session.Identity.ID)
}

// ClockInFor opens today's entry for employeeID at the current minute. The
// returned flag is false when nothing changed: today's entry is already open,
// or already closed (entries never reopen).
func (s *Store) ClockInFor(ctx context.Context, employeeID string) (timeentry.TimeEntry, bool, error) {
	date, now := s.now()
	key := timeentry.Key{EmployeeID: employeeID, Date: date}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]timeentry.TimeEntry(nil), s.entries...)
	var entry timeentry.TimeEntry

	idx, exists := s.index[key]
	if exists {
		current := s.entries[idx]
		if current.State() != timeentry.StateEmpty {
			slog.Debug("Clock in skipped", "employee_id", employeeID, "date", date, "state", current.State())
			return current.Clone(), false, nil
		}
		entry = current.Clone()
		entry.ClockIn = &now
		next[idx] = entry
	} else {
		entry = timeentry.TimeEntry{
			ID:         newID(),
			EmployeeID: employeeID,
			Date:       date,
			ClockIn:    &now,
		}
		next = append(next, entry)
		idx = len(next) - 1
	}

	if err := s.repo.SaveTimeEntries(ctx, next); err != nil {
		return timeentry.TimeEntry{}, false, fmt.Errorf("save time entries: %w", err)
	}
	s.entries = next
	s.index[key] = idx

	slog.Info("Clock in recorded", "employee_id", employeeID, "date", date, "clock_in", now)
	s.publish(EventClockedIn, entry.Clone())
	return entry.Clone(), true, nil
}

// ClockOutFor closes today's open entry for employeeID and computes its
// hours. The returned flag is false when there is no open entry.
func (s *Store) ClockOutFor(ctx context.Context, employeeID string) (timeentry.TimeEntry, bool, error) {
	date, now := s.now()
	key := timeentry.Key{EmployeeID: employeeID, Date: date}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, exists := s.index[key]
	if !exists || !s.entries[idx].IsOpen() {
		slog.Debug("Clock out skipped: no open entry", "employee_id", employeeID, "date", date)
		if exists {
			return s.entries[idx].Clone(), false, nil
		}
		return timeentry.TimeEntry{}, false, nil
	}

	entry := s.entries[idx].Clone()
	hours, err := timeentry.ElapsedHours(entry.Date, *entry.ClockIn, now)
	if err != nil {
		return timeentry.TimeEntry{}, false, fmt.Errorf("compute hours for entry %s: %w", entry.ID, err)
	}
	entry.ClockOut = &now
	entry.TotalHours = hours

	next := append([]timeentry.TimeEntry(nil), s.entries...)
	next[idx] = entry

	if err := s.repo.SaveTimeEntries(ctx, next); err != nil {
		return timeentry.TimeEntry{}, false, fmt.Errorf("save time entries: %w", err)
	}
	s.entries = next

	slog.Info("Clock out recorded", "employee_id", employeeID, "date", date, "clock_out", now, "total_hours", hours)
	s.publish(EventClockedOut, entry.Clone())
	return entry.Clone(), true, nil
}

// EmployeeTimeEntries returns employeeID's entries in stored order.
func (s *Store) EmployeeTimeEntries(employeeID string) []timeentry.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]timeentry.TimeEntry, 0)
	for _, e := range s.entries {
		if e.EmployeeID == employeeID {
			out = append(out, e.Clone())
		}
	}
	return out
}

// AllTimeEntries returns every entry in stored order.
func (s *Store) AllTimeEntries() []timeentry.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]timeentry.TimeEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}
