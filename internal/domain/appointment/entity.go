package appointment

import (
	"time"

	"github.com/R4F43R/barbapp/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to the target status, stamping the matching timestamp.
// ap is left untouched when the transition is not allowed.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusRejected:
		ap.RejectedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}
	return nil
}

// Occupies reports whether ap currently blocks its interval.
func Occupies(ap *models.Appointment) bool {
	return Status(ap.Status).Occupies()
}

// FindConflict returns the first appointment in existing that belongs to
// barberID, still occupies time, and overlaps iv.
func FindConflict(existing []models.Appointment, barberID uint, iv Interval) *models.Appointment {
	for i := range existing {
		ap := &existing[i]
		if ap.BarberID != barberID || !Occupies(ap) {
			continue
		}
		if Overlaps(IntervalOf(ap), iv) {
			return ap
		}
	}
	return nil
}
