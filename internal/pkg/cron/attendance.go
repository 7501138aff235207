package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/metrics"
)

// CountsSource reports today's attendance totals.
type CountsSource interface {
	TodayCounts(ctx context.Context) (dashboard.Counts, error)
}

type Publisher interface {
	Publish(event string, data interface{})
}

// AttendanceJobs refreshes attendance gauges and pushes a digest to open
// dashboard streams.
type AttendanceJobs struct {
	source    CountsSource
	publisher Publisher
}

func NewAttendanceJobs(source CountsSource, publisher Publisher) *AttendanceJobs {
	return &AttendanceJobs{
		source:    source,
		publisher: publisher,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("attendance_digest", interval, j.AttendanceDigest)
}

func (j *AttendanceJobs) AttendanceDigest(ctx context.Context) error {
	counts, err := j.source.TodayCounts(ctx)
	if err != nil {
		return fmt.Errorf("load attendance counts: %w", err)
	}

	metrics.SetAttendance(counts.ClockedIn, counts.Completed, counts.LateArrivals, counts.EarlyLeaves)

	if j.publisher != nil {
		j.publisher.Publish("dashboard.digest", counts)
	}

	slog.Info("Cron: attendance digest",
		"active_employees", counts.ActiveEmployees,
		"clocked_in", counts.ClockedIn,
		"completed", counts.Completed,
		"late_arrivals", counts.LateArrivals,
		"early_leaves", counts.EarlyLeaves,
	)

	return nil
}
