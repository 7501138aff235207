package timeentry

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Clock is a time of day at minute resolution.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24h).
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MustParseClock is ParseClock for constants.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) Before(o Clock) bool { return c.Minutes() < o.Minutes() }

func (c Clock) After(o Clock) bool { return c.Minutes() > o.Minutes() }

// ElapsedHours returns clockOut - clockIn on the given date in hours,
// rounded to two decimal places.
func ElapsedHours(date, clockIn, clockOut string) (float64, error) {
	in, err := time.Parse(DateLayout+" "+ClockLayout, date+" "+clockIn)
	if err != nil {
		return 0, fmt.Errorf("parse clock in: %w", err)
	}
	out, err := time.Parse(DateLayout+" "+ClockLayout, date+" "+clockOut)
	if err != nil {
		return 0, fmt.Errorf("parse clock out: %w", err)
	}

	minutes := decimal.NewFromInt(int64(out.Sub(in) / time.Minute))
	return minutes.Div(decimal.NewFromInt(60)).Round(2).InexactFloat64(), nil
}

// RoundHours rounds an hour total to two decimal places.
func RoundHours(h float64) float64 {
	return decimal.NewFromFloat(h).Round(2).InexactFloat64()
}

// SumHours adds hour values without accumulating float error.
func SumHours(values ...float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.Round(2).InexactFloat64()
}
