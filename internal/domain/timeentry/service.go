package timeentry

import "context"

// AttendanceService covers clocking for the authenticated identity and
// time entry reads for administrators.
type AttendanceService interface {
	// CurrentEntry returns today's entry for the caller, nil when none exists
	CurrentEntry(ctx context.Context) (*TimeEntryResponse, error)

	ClockIn(ctx context.Context) (ClockResponse, error)
	ClockOut(ctx context.Context) (ClockResponse, error)

	// History returns the caller's entries with summary totals
	History(ctx context.Context) (HistoryResponse, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]TimeEntryResponse, error)
	ListAll(ctx context.Context) ([]TimeEntryResponse, error)
}
