package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/httperr"
	"github.com/R4F43R/barbapp/internal/models"
	"github.com/R4F43R/barbapp/internal/timezone"
)

type Step string

const (
	StepService  Step = "SERVICE"
	StepBarber   Step = "BARBER"
	StepDateTime Step = "DATETIME"
	StepConfirm  Step = "CONFIRM"
	StepSuccess  Step = "SUCCESS"
)

// Backend is the appointment side the flow talks to. Calls may be slow or
// remote; the flow never holds its lock across them.
type Backend interface {
	GetAppointmentsForStaff(ctx context.Context, barberID uint) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, draft domain.Draft) (*models.Appointment, error)
}

type Contact struct {
	ClientID uint   `json:"client_id"`
	Name     string `json:"client_name"`
	Phone    string `json:"client_phone"`
}

// State is a read-only copy of the flow.
type State struct {
	Step        Step                `json:"step"`
	Service     *models.Service     `json:"service,omitempty"`
	Barber      *models.Barber      `json:"barber,omitempty"`
	Date        string              `json:"date,omitempty"`
	Time        string              `json:"time,omitempty"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
}

// Flow walks one session through SERVICE -> BARBER -> DATETIME -> CONFIRM ->
// SUCCESS. Every state change bumps gen; a backend result is applied only if
// gen is still the value captured when the call started, so results of calls
// abandoned by Back, Reset or a newer call are dropped.
type Flow struct {
	backend  Backend
	schedule domain.Schedule
	log      *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	step     Step
	service  *models.Service
	barber   *models.Barber
	date     string
	clock    string
	agenda   []models.Appointment
	stale    bool // agenda is known outdated; no slots until a refresh succeeds
	result   *models.Appointment
	gen      uint64
	inflight context.CancelFunc
}

func NewFlow(backend Backend, schedule domain.Schedule, log *zap.Logger) *Flow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flow{
		backend:  backend,
		schedule: schedule,
		log:      log,
		now:      time.Now,
		step:     StepService,
	}
}

// ======================================================
// FORWARD
// ======================================================

func (f *Flow) SelectService(service models.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.expect(StepService); err != nil {
		return err
	}
	if service.DurationMin <= 0 {
		return domain.ErrInvalidDuration
	}

	f.service = &service
	f.advance(StepBarber)
	return nil
}

// SelectStaff fetches the barber's agenda and moves to DATETIME only once it
// arrived. On failure the flow stays in BARBER.
func (f *Flow) SelectStaff(ctx context.Context, barber models.Barber) error {
	f.mu.Lock()
	if err := f.expect(StepBarber); err != nil {
		f.mu.Unlock()
		return err
	}
	callCtx, gen, done := f.begin(ctx)
	f.mu.Unlock()
	defer done()

	agenda, err := f.backend.GetAppointmentsForStaff(callCtx, barber.ID)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		f.log.Info("discarding stale agenda", zap.Uint("barber_id", barber.ID))
		return ErrStaleResult
	}
	if err != nil {
		return unavailable(err)
	}

	f.barber = &barber
	f.agenda = agenda
	f.stale = false
	f.advance(StepDateTime)
	return nil
}

// RefreshAvailability re-reads the selected barber's agenda.
func (f *Flow) RefreshAvailability(ctx context.Context) error {
	f.mu.Lock()
	if err := f.expect(StepDateTime); err != nil {
		f.mu.Unlock()
		return err
	}
	barberID := f.barber.ID
	callCtx, gen, done := f.begin(ctx)
	f.mu.Unlock()
	defer done()

	agenda, err := f.backend.GetAppointmentsForStaff(callCtx, barberID)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		f.log.Info("discarding stale agenda", zap.Uint("barber_id", barberID))
		return ErrStaleResult
	}
	if err != nil {
		return unavailable(err)
	}

	f.agenda = agenda
	f.stale = false
	f.gen++
	return nil
}

// Slots lists the start times offered for date from the cached agenda.
func (f *Flow) Slots(date string) ([]domain.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.expect(StepDateTime); err != nil {
		return nil, err
	}
	return f.slots(date)
}

func (f *Flow) SelectSlot(date, clock string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.expect(StepDateTime); err != nil {
		return err
	}

	slots, err := f.slots(date)
	if err != nil {
		return err
	}

	offered := false
	for _, s := range slots {
		if s.Start == clock {
			offered = true
			break
		}
	}
	if !offered {
		return ErrSlotUnavailable
	}

	f.date, f.clock = date, clock
	f.advance(StepConfirm)
	return nil
}

// Confirm submits the completed draft. A lost race sends the flow back to
// DATETIME with date and time cleared and the agenda re-read, and returns
// ErrSlotConflict. If the re-read fails too, the error also wraps
// ErrUnavailable and no slots are offered until RefreshAvailability succeeds.
func (f *Flow) Confirm(ctx context.Context, contact Contact) (*models.Appointment, error) {
	f.mu.Lock()
	if err := f.expect(StepConfirm); err != nil {
		f.mu.Unlock()
		return nil, err
	}

	draft := domain.Draft{
		ServiceID:   f.service.ID,
		BarberID:    f.barber.ID,
		Date:        f.date,
		Time:        f.clock,
		ClientID:    contact.ClientID,
		ClientName:  contact.Name,
		ClientPhone: contact.Phone,
	}
	if err := draft.Validate(); err != nil {
		f.mu.Unlock()
		return nil, err
	}

	callCtx, gen, done := f.begin(ctx)
	f.mu.Unlock()

	ap, err := f.backend.CreateAppointment(callCtx, draft)
	done()

	f.mu.Lock()

	if gen != f.gen {
		f.mu.Unlock()
		f.log.Warn("discarding stale booking result", zap.Uint("barber_id", draft.BarberID))
		return nil, ErrStaleResult
	}

	switch {
	case err == nil:
		f.result = ap
		f.advance(StepSuccess)
		f.mu.Unlock()
		return ap, nil

	case errors.Is(err, domain.ErrSlotConflict):
		f.date, f.clock = "", ""
		f.agenda = nil
		f.stale = true
		f.advance(StepDateTime)
		f.mu.Unlock()

		f.log.Info("slot taken at confirm, back to slot selection",
			zap.Uint("barber_id", draft.BarberID),
			zap.String("date", draft.Date),
			zap.String("time", draft.Time),
		)
		rerr := f.RefreshAvailability(ctx)
		switch {
		case rerr == nil, errors.Is(rerr, ErrStaleResult):
			return nil, err
		default:
			f.log.Warn("refresh after conflict failed", zap.Error(rerr))
			return nil, errors.Join(err, rerr)
		}

	case httperr.CodeOf(err) != "":
		f.mu.Unlock()
		return nil, err

	default:
		f.mu.Unlock()
		return nil, unavailable(err)
	}
}

// ======================================================
// BACKWARD
// ======================================================

// Back undoes the latest step, dropping the field it added and abandoning any
// call in flight.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepSuccess:
		return ErrFlowFinished
	case StepService:
		return ErrNoPreviousStep
	case StepBarber:
		f.service = nil
		f.advance(StepService)
	case StepDateTime:
		f.barber = nil
		f.agenda = nil
		f.stale = false
		f.advance(StepBarber)
	case StepConfirm:
		f.date, f.clock = "", ""
		f.advance(StepDateTime)
	}
	return nil
}

// Reset starts over with an empty draft. Allowed from any step.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.service = nil
	f.barber = nil
	f.date, f.clock = "", ""
	f.agenda = nil
	f.stale = false
	f.result = nil
	f.advance(StepService)
}

func (f *Flow) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := State{
		Step: f.step,
		Date: f.date,
		Time: f.clock,
	}
	if f.service != nil {
		s := *f.service
		st.Service = &s
	}
	if f.barber != nil {
		b := *f.barber
		st.Barber = &b
	}
	if f.result != nil {
		ap := *f.result
		st.Appointment = &ap
	}
	return st
}

// ======================================================
// INTERNAL (caller holds mu)
// ======================================================

func (f *Flow) expect(step Step) error {
	if f.step == step {
		return nil
	}
	if f.step == StepSuccess {
		return ErrFlowFinished
	}
	return fmt.Errorf("%w: flow is at %s", ErrWrongStep, f.step)
}

// advance moves to step and abandons whatever call is in flight.
func (f *Flow) advance(step Step) {
	f.step = step
	f.gen++
	f.abandon()
}

// begin starts a backend call that supersedes any call in flight.
func (f *Flow) begin(ctx context.Context) (context.Context, uint64, context.CancelFunc) {
	f.abandon()
	f.gen++

	callCtx, cancel := context.WithCancel(ctx)
	f.inflight = cancel
	return callCtx, f.gen, cancel
}

func (f *Flow) abandon() {
	if f.inflight != nil {
		f.inflight()
		f.inflight = nil
	}
}

func (f *Flow) slots(date string) ([]domain.TimeSlot, error) {
	if f.stale {
		return nil, fmt.Errorf("%w: availability must be refreshed", ErrUnavailable)
	}

	day, err := timezone.ParseDate(date, f.schedule.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTime, date)
	}

	starts, err := domain.AvailableSlots(domain.SlotQuery{
		BarberID:    f.barber.ID,
		Date:        day,
		DurationMin: f.service.DurationMin,
		Hours:       f.schedule.Hours,
		Granularity: f.schedule.Granularity,
		Now:         f.now(),
	}, f.agenda)
	if err != nil {
		return nil, err
	}
	return domain.ToTimeSlots(starts, f.service.DurationMin), nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
