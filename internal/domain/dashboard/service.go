package dashboard

import "context"

type DashboardService interface {
	// GetDashboard aggregates today's attendance for employees matching filter
	GetDashboard(ctx context.Context, filter DashboardFilter) (DashboardResponse, error)

	// TodayCounts returns today's totals across all employees
	TodayCounts(ctx context.Context) (Counts, error)
}
