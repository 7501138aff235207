package dashboard

import (
	"context"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/directory"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
)

// SnapshotReader is the read side of the store the dashboard needs.
type SnapshotReader interface {
	Snapshot() directory.Snapshot
	Today() string
}

type DashboardServiceImpl struct {
	store  SnapshotReader
	policy dashboard.Policy
}

func NewDashboardService(store SnapshotReader, policy dashboard.Policy) dashboard.DashboardService {
	if policy.IsZero() {
		policy = dashboard.DefaultPolicy()
	}
	return &DashboardServiceImpl{
		store:  store,
		policy: policy,
	}
}

// GetDashboard evaluates every section over one snapshot.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, filter dashboard.DashboardFilter) (dashboard.DashboardResponse, error) {
	if err := filter.Validate(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	snap := s.store.Snapshot()
	today := s.store.Today()
	todayAll := EntriesOn(snap.TimeEntries, today)

	employees := FilterEmployees(snap.Employees, todayAll, filter.Criteria(s.policy))

	selected := make(map[string]struct{}, len(employees))
	for _, e := range employees {
		selected[e.ID] = struct{}{}
	}
	todayEntries := make([]timeentry.TimeEntry, 0, len(todayAll))
	for _, te := range todayAll {
		if _, ok := selected[te.EmployeeID]; ok {
			todayEntries = append(todayEntries, te)
		}
	}

	return dashboard.DashboardResponse{
		Date:         today,
		Counts:       CountToday(employees, todayEntries, s.policy),
		Departments:  AggregateByDepartment(employees, snap.TimeEntries),
		DailyStatus:  BuildDailyStatus(employees, todayEntries, s.policy),
		LateArrivals: LateArrivals(employees, todayEntries, s.policy),
		EarlyLeaves:  EarlyLeaves(employees, todayEntries, s.policy),
		TodayEntries: timeentry.NewTimeEntryResponses(todayEntries),
	}, nil
}

func (s *DashboardServiceImpl) TodayCounts(ctx context.Context) (dashboard.Counts, error) {
	snap := s.store.Snapshot()
	return CountToday(snap.Employees, EntriesOn(snap.TimeEntries, s.store.Today()), s.policy), nil
}
