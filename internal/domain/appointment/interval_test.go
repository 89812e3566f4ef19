package appointment

import (
	"errors"
	"testing"
	"time"
)

func TestMakeInterval(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	iv, err := MakeInterval(day, "10:00", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !iv.Start.Equal(day.Add(10 * time.Hour)) {
		t.Fatalf("expected start 10:00, got %s", iv.Start.Format(time.RFC3339))
	}
	if !iv.End.Equal(day.Add(10*time.Hour + 45*time.Minute)) {
		t.Fatalf("expected end 10:45, got %s", iv.End.Format(time.RFC3339))
	}
	if iv.Duration() != 45*time.Minute {
		t.Fatalf("expected 45m, got %s", iv.Duration())
	}
}

func TestMakeInterval_InvalidDuration(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, d := range []int{0, -30} {
		if _, err := MakeInterval(day, "10:00", d); !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("duration %d: expected ErrInvalidDuration, got %v", d, err)
		}
	}
}

func TestMakeInterval_InvalidClock(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, err := MakeInterval(day, "25:00", 30); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestOverlaps(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	base := Interval{Start: at(14, 0), End: at(14, 30)}

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", base, true},
		{"starts inside", Interval{Start: at(14, 15), End: at(14, 45)}, true},
		{"ends inside", Interval{Start: at(13, 45), End: at(14, 15)}, true},
		{"contains", Interval{Start: at(13, 0), End: at(15, 0)}, true},
		{"back to back after", Interval{Start: at(14, 30), End: at(15, 0)}, false},
		{"back to back before", Interval{Start: at(13, 30), End: at(14, 0)}, false},
		{"disjoint", Interval{Start: at(16, 0), End: at(16, 30)}, false},
	}

	for _, tc := range cases {
		if got := Overlaps(base, tc.other); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		if got := tc.other.Overlaps(base); got != tc.want {
			t.Errorf("%s: overlap is not symmetric", tc.name)
		}
	}
}
