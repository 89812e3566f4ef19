package appointment

import (
	"iter"
	"slices"
	"time"

	"github.com/R4F43R/barbapp/internal/models"
	"github.com/R4F43R/barbapp/internal/timezone"
)

type SlotQuery struct {
	BarberID    uint
	Date        time.Time
	DurationMin int
	Hours       BusinessHours
	Granularity time.Duration
	// Now drops start times already in the past when Date is today.
	Now time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailableSlots validates q and returns the chronological sequence of
// bookable start times for q.BarberID on q.Date. Candidates are the
// granularity grid anchored at opening time plus the end of every occupied
// interval, so the first start right after an appointment is offered even
// when it is off-grid. The sequence is lazy and can be ranged over any number
// of times; it never mutates existing.
func AvailableSlots(q SlotQuery, existing []models.Appointment) (iter.Seq[time.Time], error) {
	if q.DurationMin <= 0 {
		return nil, ErrInvalidDuration
	}
	if q.Granularity <= 0 {
		return nil, ErrInvalidGranularity
	}

	window, err := q.Hours.Window(q.Date)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(q.DurationMin) * time.Minute
	filterPast := !q.Now.IsZero() && timezone.SameDay(q.Date, q.Now.In(q.Date.Location()))

	var busy []Interval
	var ends []time.Time
	for i := range existing {
		ap := &existing[i]
		if ap.BarberID != q.BarberID || !Occupies(ap) {
			continue
		}
		iv := IntervalOf(ap)
		if !iv.End.After(window.Start) || !iv.Start.Before(window.End) {
			continue
		}
		busy = append(busy, iv)
		if !iv.End.Add(duration).After(window.End) {
			// stores may hand back UTC; keep candidates on the query's clock
			ends = append(ends, iv.End.In(q.Date.Location()))
		}
	}
	slices.SortFunc(ends, time.Time.Compare)
	ends = slices.CompactFunc(ends, time.Time.Equal)

	return func(yield func(time.Time) bool) {
		grid, next := window.Start, 0
		for {
			gridOK := !grid.Add(duration).After(window.End)
			endOK := next < len(ends)
			if !gridOK && !endOK {
				return
			}

			var t time.Time
			if endOK && (!gridOK || ends[next].Before(grid)) {
				t = ends[next]
				next++
			} else {
				t = grid
				grid = grid.Add(q.Granularity)
				if endOK && ends[next].Equal(t) {
					next++
				}
			}

			if filterPast && t.Before(q.Now) {
				continue
			}
			if overlapsAny(Interval{Start: t, End: t.Add(duration)}, busy) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}, nil
}

func overlapsAny(iv Interval, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(iv, b) {
			return true
		}
	}
	return false
}

// ToTimeSlots renders start times as HH:MM pairs for a given duration.
func ToTimeSlots(starts iter.Seq[time.Time], durationMin int) []TimeSlot {
	d := time.Duration(durationMin) * time.Minute
	slots := []TimeSlot{}
	for t := range starts {
		slots = append(slots, TimeSlot{
			Start: t.Format(timezone.ClockLayout),
			End:   t.Add(d).Format(timezone.ClockLayout),
		})
	}
	return slots
}
