package attendance

import (
	"context"
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/metrics"
)

// EntryStore is the part of the session and directory store used for
// clocking.
type EntryStore interface {
	CurrentEntryFor(employeeID string) (timeentry.TimeEntry, bool)
	ClockInFor(ctx context.Context, employeeID string) (timeentry.TimeEntry, bool, error)
	ClockOutFor(ctx context.Context, employeeID string) (timeentry.TimeEntry, bool, error)
	EmployeeTimeEntries(employeeID string) []timeentry.TimeEntry
	AllTimeEntries() []timeentry.TimeEntry
	GetEmployee(id string) (employee.Employee, error)
	ActiveEmployee(id string) (employee.Employee, error)
}

type AttendanceServiceImpl struct {
	store EntryStore
}

func NewAttendanceService(store EntryStore) timeentry.AttendanceService {
	return &AttendanceServiceImpl{store: store}
}

// CurrentEntry implements timeentry.AttendanceService.
func (a *AttendanceServiceImpl) CurrentEntry(ctx context.Context) (*timeentry.TimeEntryResponse, error) {
	employeeID, err := a.employeeID(ctx)
	if err != nil {
		return nil, err
	}

	entry, ok := a.store.CurrentEntryFor(employeeID)
	if !ok {
		return nil, nil
	}
	resp := timeentry.NewTimeEntryResponse(entry)
	return &resp, nil
}

// ClockIn implements timeentry.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context) (timeentry.ClockResponse, error) {
	employeeID, err := a.employeeID(ctx)
	if err != nil {
		return timeentry.ClockResponse{}, err
	}

	entry, applied, err := a.store.ClockInFor(ctx, employeeID)
	if err != nil {
		metrics.ObserveClockError("clock_in")
		return timeentry.ClockResponse{}, err
	}
	metrics.ObserveClock("clock_in", applied)

	message := "Clocked in"
	if !applied {
		slog.Debug("Clock in skipped", "employee_id", employeeID, "state", entry.State())
		message = "Already clocked in today"
	}
	return clockResponse(entry, applied, message), nil
}

// ClockOut implements timeentry.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context) (timeentry.ClockResponse, error) {
	employeeID, err := a.employeeID(ctx)
	if err != nil {
		return timeentry.ClockResponse{}, err
	}

	entry, applied, err := a.store.ClockOutFor(ctx, employeeID)
	if err != nil {
		metrics.ObserveClockError("clock_out")
		return timeentry.ClockResponse{}, err
	}
	metrics.ObserveClock("clock_out", applied)

	message := "Clocked out"
	if !applied {
		slog.Debug("Clock out skipped", "employee_id", employeeID)
		message = "No open entry to clock out"
	}
	return clockResponse(entry, applied, message), nil
}

func clockResponse(entry timeentry.TimeEntry, applied bool, message string) timeentry.ClockResponse {
	resp := timeentry.ClockResponse{Applied: applied, Message: message}
	if entry.ID != "" {
		e := timeentry.NewTimeEntryResponse(entry)
		resp.Entry = &e
	}
	return resp
}

// History implements timeentry.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context) (timeentry.HistoryResponse, error) {
	employeeID, err := a.employeeID(ctx)
	if err != nil {
		return timeentry.HistoryResponse{}, err
	}
	return Summarize(a.store.EmployeeTimeEntries(employeeID)), nil
}

// ListByEmployee implements timeentry.AttendanceService.
func (a *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]timeentry.TimeEntryResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if _, err := a.store.GetEmployee(employeeID); err != nil {
		return nil, err
	}
	return timeentry.NewTimeEntryResponses(sortByDateDesc(a.store.EmployeeTimeEntries(employeeID))), nil
}

// ListAll implements timeentry.AttendanceService.
func (a *AttendanceServiceImpl) ListAll(ctx context.Context) ([]timeentry.TimeEntryResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return timeentry.NewTimeEntryResponses(sortByDateDesc(a.store.AllTimeEntries())), nil
}

// Summarize builds the history view of one employee's entries: newest date
// first, with total and average hours per recorded day.
func Summarize(entries []timeentry.TimeEntry) timeentry.HistoryResponse {
	sorted := sortByDateDesc(entries)

	hours := make([]float64, 0, len(sorted))
	for _, e := range sorted {
		hours = append(hours, e.TotalHours)
	}
	total := timeentry.SumHours(hours...)

	resp := timeentry.HistoryResponse{
		TotalDays:  len(sorted),
		TotalHours: total,
		Entries:    timeentry.NewTimeEntryResponses(sorted),
	}
	if len(sorted) > 0 {
		resp.AverageHours = timeentry.RoundHours(total / float64(len(sorted)))
	}
	return resp
}

func sortByDateDesc(entries []timeentry.TimeEntry) []timeentry.TimeEntry {
	out := make([]timeentry.TimeEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// employeeID returns the caller's ID. Directory identities must still have an
// active record, so a token outliving its employee cannot add entries.
func (a *AttendanceServiceImpl) employeeID(ctx context.Context) (string, error) {
	session, err := jwt.SessionFromContext(ctx)
	if err != nil {
		return "", err
	}
	if session.IsAdmin || auth.IsReservedEmail(session.Identity.Email) {
		return session.Identity.ID, nil
	}
	if _, err := a.store.ActiveEmployee(session.Identity.ID); err != nil {
		return "", err
	}
	return session.Identity.ID, nil
}

func requireAdmin(ctx context.Context) error {
	session, err := jwt.SessionFromContext(ctx)
	if err != nil {
		return err
	}
	if !session.IsAdmin {
		return auth.ErrAdminRequired
	}
	return nil
}
