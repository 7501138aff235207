package directory

import (
	"context"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
)

// Repository persists each part of the snapshot independently.
type Repository interface {
	Load(ctx context.Context) (Snapshot, error)

	// SaveSession stores the session, or removes it when nil
	SaveSession(ctx context.Context, session *auth.Session) error
	SaveEmployees(ctx context.Context, employees []employee.Employee) error
	SaveTimeEntries(ctx context.Context, entries []timeentry.TimeEntry) error
	SaveDepartments(ctx context.Context, departments []string) error
	SavePositions(ctx context.Context, positions []string) error
}
