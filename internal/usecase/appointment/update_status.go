package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/R4F43R/barbapp/internal/audit"
	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/events"
	"github.com/R4F43R/barbapp/internal/models"
)

type UpdateAppointmentStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events events.Publisher
	log    *zap.Logger
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	pub events.Publisher,
	log *zap.Logger,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:   repo,
		audit:  audit,
		events: orNop(pub),
		log:    orNopLogger(log),
	}
}

// Execute validates the caller-supplied status against the state machine and
// the actor's authority, then applies it atomically. Any failure leaves the
// stored record untouched.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	appointmentID string,
	status string,
	actor domain.Actor,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var from string
	ap, err := uc.repo.UpdateAppointment(ctx, appointmentID, func(ap *models.Appointment) error {
		if err := domain.CanSetStatus(actor, ap, to); err != nil {
			return err
		}
		from = ap.Status
		return domain.Transition(ap, to, time.Now())
	})
	if err != nil {
		uc.log.Info("status change refused",
			zap.String("appointment_id", appointmentID),
			zap.String("to", string(to)),
			zap.Error(err),
		)
		return nil, err
	}

	var actorID *uint
	if actor.ID != 0 {
		actorID = &actor.ID
	}
	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{"from": from, "to": ap.Status, "role": string(actor.Role)},
	})
	publish(ctx, uc.events, uc.log, events.RoutingAppointmentStatusChanged, events.NewAppointmentStatusChanged(ap, from))

	return ap, nil
}
