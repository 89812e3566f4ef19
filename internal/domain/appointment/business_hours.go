package appointment

import (
	"time"
)

// BusinessHours is the daily HH:MM window appointments must fit in.
type BusinessHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Window resolves the hours on date. End must be strictly after start.
func (bh BusinessHours) Window(date time.Time) (Interval, error) {
	start, err := AtClock(date, bh.Open)
	if err != nil {
		return Interval{}, ErrInvalidBusinessHours
	}
	end, err := AtClock(date, bh.Close)
	if err != nil {
		return Interval{}, ErrInvalidBusinessHours
	}
	if !end.After(start) {
		return Interval{}, ErrInvalidBusinessHours
	}
	return Interval{Start: start, End: end}, nil
}

func (bh BusinessHours) Validate() error {
	_, err := bh.Window(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	return err
}

// Contains reports whether iv fits inside the hours of its start day.
func (bh BusinessHours) Contains(iv Interval) (bool, error) {
	w, err := bh.Window(iv.Start)
	if err != nil {
		return false, err
	}
	return !iv.Start.Before(w.Start) && !iv.End.After(w.End), nil
}

// Schedule bundles the shop-wide scheduling configuration.
type Schedule struct {
	Hours       BusinessHours
	Granularity time.Duration
	Location    *time.Location
}
