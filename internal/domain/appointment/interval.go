package appointment

import (
	"strings"
	"time"

	"github.com/R4F43R/barbapp/internal/models"
	"github.com/R4F43R/barbapp/internal/timezone"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// MakeInterval builds [date+clock, date+clock+durationMin). The date's
// location is kept as is.
func MakeInterval(date time.Time, clock string, durationMin int) (Interval, error) {
	if durationMin <= 0 {
		return Interval{}, ErrInvalidDuration
	}

	start, err := AtClock(date, clock)
	if err != nil {
		return Interval{}, err
	}

	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMin) * time.Minute),
	}, nil
}

// Overlaps is true iff a and b share at least one instant. Back-to-back
// intervals do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i, other)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IntervalOf returns the interval an appointment occupies.
func IntervalOf(ap *models.Appointment) Interval {
	return Interval{Start: ap.StartTime, End: ap.EndTime}
}

// AtClock places an HH:MM wall clock on date.
func AtClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(timezone.ClockLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, ErrInvalidTime
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}
