package dashboard

import (
	"fmt"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
)

type Granularity string

const (
	GranularityMinute Granularity = "minute"
	GranularityHour   Granularity = "hour"
)

// Policy holds the attendance thresholds. A clock in after LateAfter is late;
// a clock out before EarlyBefore is an early leave. With hour granularity
// only the hour components are compared.
type Policy struct {
	LateAfter   timeentry.Clock
	EarlyBefore timeentry.Clock
	Granularity Granularity
}

func DefaultPolicy() Policy {
	return Policy{
		LateAfter:   timeentry.Clock{Hour: 8, Minute: 3},
		EarlyBefore: timeentry.Clock{Hour: 17, Minute: 0},
		Granularity: GranularityMinute,
	}
}

// NewPolicy builds a policy from "HH:MM" thresholds and a granularity name.
// An empty granularity means minute.
func NewPolicy(lateAfter, earlyBefore, granularity string) (Policy, error) {
	late, err := timeentry.ParseClock(lateAfter)
	if err != nil {
		return Policy{}, fmt.Errorf("late_after: %w", err)
	}
	early, err := timeentry.ParseClock(earlyBefore)
	if err != nil {
		return Policy{}, fmt.Errorf("early_before: %w", err)
	}

	g := Granularity(granularity)
	switch g {
	case "":
		g = GranularityMinute
	case GranularityMinute, GranularityHour:
	default:
		return Policy{}, fmt.Errorf("granularity must be minute or hour, got %q", granularity)
	}

	return Policy{LateAfter: late, EarlyBefore: early, Granularity: g}, nil
}

func (p Policy) IsZero() bool {
	return p == Policy{}
}

// IsLate reports whether a clock in at c counts as a late arrival.
func (p Policy) IsLate(c timeentry.Clock) bool {
	if p.Granularity == GranularityHour {
		return c.Hour > p.LateAfter.Hour
	}
	return c.After(p.LateAfter)
}

// IsEarlyLeave reports whether a clock out at c counts as an early leave.
func (p Policy) IsEarlyLeave(c timeentry.Clock) bool {
	if p.Granularity == GranularityHour {
		return c.Hour < p.EarlyBefore.Hour
	}
	return c.Before(p.EarlyBefore)
}
