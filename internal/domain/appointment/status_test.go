package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/R4F43R/barbapp/internal/models"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusRejected, StatusCancelled}
	allowed := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusRejected}:    true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCancelled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			if allowed[[2]Status{from, to}] {
				if err != nil {
					t.Errorf("%s -> %s: unexpected error %v", from, to, err)
				}
				continue
			}
			if !errors.Is(err, ErrIllegalTransition) {
				t.Errorf("%s -> %s: expected ErrIllegalTransition, got %v", from, to, err)
			}
		}
	}
}

func TestStatusOccupiesAndTerminal(t *testing.T) {
	if !StatusPending.Occupies() || !StatusConfirmed.Occupies() {
		t.Fatal("pending and confirmed must occupy time")
	}
	if StatusRejected.Occupies() || StatusCancelled.Occupies() {
		t.Fatal("rejected and cancelled must not occupy time")
	}
	if !StatusRejected.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Fatal("rejected and cancelled must be terminal")
	}
	if StatusConfirmed.IsTerminal() {
		t.Fatal("confirmed can still be cancelled")
	}
}

func TestParseStatus(t *testing.T) {
	if st, err := ParseStatus("confirmed"); err != nil || st != StatusConfirmed {
		t.Fatalf("expected confirmed, got %q %v", st, err)
	}
	if _, err := ParseStatus("done"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestTransition_PendingConfirmedCancelled(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusPending)}

	if err := Transition(ap, StatusConfirmed, now); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if ap.ConfirmedAt == nil || !ap.ConfirmedAt.Equal(now) {
		t.Fatal("expected ConfirmedAt to be stamped")
	}

	if err := Transition(ap, StatusPending, now); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("confirmed -> pending: expected ErrIllegalTransition, got %v", err)
	}
	if ap.Status != string(StatusConfirmed) {
		t.Fatalf("illegal transition mutated status to %q", ap.Status)
	}

	if err := Transition(ap, StatusCancelled, now); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if ap.CancelledAt == nil {
		t.Fatal("expected CancelledAt to be stamped")
	}
}

func TestTransition_IllegalLeavesRecordUntouched(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusRejected)}
	before := *ap

	for _, to := range []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusRejected} {
		if err := Transition(ap, to, now); !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("rejected -> %s: expected ErrIllegalTransition, got %v", to, err)
		}
		if *ap != before {
			t.Fatalf("rejected -> %s mutated the record", to)
		}
	}
}

func TestCanSetStatus(t *testing.T) {
	ap := &models.Appointment{BarberID: 2, ClientID: 101}

	cases := []struct {
		name  string
		actor Actor
		to    Status
		ok    bool
	}{
		{"admin confirms", Actor{ID: 999, Role: RoleAdmin}, StatusConfirmed, true},
		{"assigned barber confirms", Actor{ID: 2, Role: RoleBarber}, StatusConfirmed, true},
		{"assigned barber cancels", Actor{ID: 2, Role: RoleBarber}, StatusCancelled, true},
		{"other barber confirms", Actor{ID: 3, Role: RoleBarber}, StatusConfirmed, false},
		{"owner cancels", Actor{ID: 101, Role: RoleClient}, StatusCancelled, true},
		{"owner confirms", Actor{ID: 101, Role: RoleClient}, StatusConfirmed, false},
		{"stranger cancels", Actor{ID: 102, Role: RoleClient}, StatusCancelled, false},
		{"unknown role", Actor{ID: 2, Role: "guest"}, StatusCancelled, false},
	}

	for _, tc := range cases {
		err := CanSetStatus(tc.actor, ap, tc.to)
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrForbidden) {
			t.Errorf("%s: expected ErrForbidden, got %v", tc.name, err)
		}
	}
}
