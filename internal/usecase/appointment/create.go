package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/R4F43R/barbapp/internal/audit"
	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/events"
	"github.com/R4F43R/barbapp/internal/models"
	"github.com/R4F43R/barbapp/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	catalog  domain.Catalog
	schedule domain.Schedule
	audit    *audit.Dispatcher
	events   events.Publisher
	log      *zap.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	catalog domain.Catalog,
	schedule domain.Schedule,
	audit *audit.Dispatcher,
	pub events.Publisher,
	log *zap.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		catalog:  catalog,
		schedule: schedule,
		audit:    audit,
		events:   orNop(pub),
		log:      orNopLogger(log),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	draft domain.Draft,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Borrador completo
	// --------------------------------------------------
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Catálogo
	// --------------------------------------------------
	service, err := uc.catalog.GetService(ctx, draft.ServiceID)
	if err != nil {
		return nil, err
	}
	barber, err := uc.catalog.GetBarber(ctx, draft.BarberID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Intervalo en la zona horaria de la barbería
	// --------------------------------------------------
	day, err := timezone.ParseDate(draft.Date, uc.schedule.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", domain.ErrInvalidDraft)
	}
	iv, err := domain.MakeInterval(day, draft.Time, service.DurationMin)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTime) {
			return nil, fmt.Errorf("%w: invalid time", domain.ErrInvalidDraft)
		}
		return nil, err
	}

	inside, err := uc.schedule.Hours.Contains(iv)
	if err != nil {
		return nil, err
	}
	if !inside {
		return nil, domain.ErrOutsideBusinessHours
	}

	// --------------------------------------------------
	// 4️⃣ Comprobación + inserción atómica
	// --------------------------------------------------
	ap := &models.Appointment{
		ID:          uuid.NewString(),
		ClientID:    draft.ClientID,
		Service:     service.Snapshot(),
		BarberID:    barber.ID,
		BarberName:  barber.Name,
		Date:        day.Format(timezone.DateLayout),
		Time:        iv.Start.Format(timezone.ClockLayout),
		StartTime:   iv.Start,
		EndTime:     iv.End,
		ClientName:  draft.ClientName,
		ClientPhone: draft.ClientPhone,
		Status:      string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateIfFree(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			uc.log.Info("slot conflict",
				zap.Uint("barber_id", ap.BarberID),
				zap.Time("start", ap.StartTime),
				zap.Uint("client_id", ap.ClientID),
			)
			uc.audit.Dispatch(audit.Event{
				ActorID:  &draft.ClientID,
				Action:   "appointment_conflict",
				Entity:   "appointment",
				Metadata: map[string]any{"barber_id": ap.BarberID, "date": ap.Date, "time": ap.Time},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoría + eventos
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorID:  &draft.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
	})
	publish(ctx, uc.events, uc.log, events.RoutingAppointmentCreated, events.NewAppointmentCreated(ap))

	uc.log.Info("appointment created",
		zap.String("appointment_id", ap.ID),
		zap.Uint("barber_id", ap.BarberID),
		zap.Time("start", ap.StartTime),
	)

	return ap, nil
}

// ======================================================
// HELPERS
// ======================================================

// publish is best effort: the appointment is already committed.
func publish(ctx context.Context, pub events.Publisher, log *zap.Logger, key string, v any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := pub.PublishJSON(ctx, key, v); err != nil {
		log.Warn("publish event failed", zap.String("routing_key", key), zap.Error(err))
	}
}

func orNop(pub events.Publisher) events.Publisher {
	if pub == nil {
		return events.NopPublisher{}
	}
	return pub
}

func orNopLogger(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
