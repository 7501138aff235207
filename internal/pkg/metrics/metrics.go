package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timeclock_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timeclock_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timeclock_login_attempts_total",
		Help: "Login attempts by outcome",
	}, []string{"result"})

	clockEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timeclock_clock_events_total",
		Help: "Clock in/out requests by action and whether they changed state",
	}, []string{"action", "result"})

	employeesClockedIn = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "timeclock_employees_clocked_in",
		Help: "Employees with an open entry today",
	})

	employeesCompleted = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "timeclock_employees_completed_today",
		Help: "Employees with a closed entry today",
	})

	lateArrivals = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "timeclock_late_arrivals_today",
		Help: "Entries today that clocked in after the late threshold",
	})

	earlyLeaves = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "timeclock_early_leaves_today",
		Help: "Entries today that clocked out before the early leave threshold",
	})

	streamSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "timeclock_stream_subscribers",
		Help: "Open dashboard event streams",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveLogin counts a login attempt; result is "success" or "failure".
func ObserveLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

// ObserveClock counts a clock action; applied is false for no-ops.
func ObserveClock(action string, applied bool) {
	result := "applied"
	if !applied {
		result = "noop"
	}
	clockEvents.WithLabelValues(action, result).Inc()
}

// ObserveClockError counts a clock action that failed to persist.
func ObserveClockError(action string) {
	clockEvents.WithLabelValues(action, "error").Inc()
}

// SetAttendance publishes today's attendance totals.
func SetAttendance(clockedIn, completed, late, early int) {
	employeesClockedIn.Set(float64(clockedIn))
	employeesCompleted.Set(float64(completed))
	lateArrivals.Set(float64(late))
	earlyLeaves.Set(float64(early))
}

func IncrementStreams() {
	streamSubscribers.Inc()
}

func DecrementStreams() {
	streamSubscribers.Dec()
}
