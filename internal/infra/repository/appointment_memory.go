package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/infra/lock"
	"github.com/R4F43R/barbapp/internal/models"
)

// AppointmentMemoryRepository keeps appointments for the process lifetime.
// Creates are serialised per barber through locks; records are guarded by mu
// and always handed out as copies.
type AppointmentMemoryRepository struct {
	locks lock.Locker

	mu       sync.RWMutex
	byID     map[string]*models.Appointment
	byBarber map[uint][]string
	byClient map[uint][]string
}

func NewAppointmentMemoryRepository(locks lock.Locker) *AppointmentMemoryRepository {
	if locks == nil {
		locks = lock.NewLocalLocker()
	}
	return &AppointmentMemoryRepository{
		locks:    locks,
		byID:     make(map[string]*models.Appointment),
		byBarber: make(map[uint][]string),
		byClient: make(map[uint][]string),
	}
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentMemoryRepository) CreateIfFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	unlock, err := r.locks.Lock(ctx, lock.BarberKey(ap.BarberID))
	if err != nil {
		return fmt.Errorf("lock barber %d: %w", ap.BarberID, err)
	}
	defer unlock()

	if err := r.assertFree(ap); err != nil {
		return err
	}

	// other barbers may insert meanwhile; this barber's timeline is frozen by the lock
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	ap.CreatedAt = now
	ap.UpdatedAt = now

	stored := *ap
	r.byID[ap.ID] = &stored
	r.byBarber[ap.BarberID] = append(r.byBarber[ap.BarberID], ap.ID)
	r.byClient[ap.ClientID] = append(r.byClient[ap.ClientID], ap.ID)

	return nil
}

func (r *AppointmentMemoryRepository) assertFree(ap *models.Appointment) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.byID[ap.ID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAppointment, ap.ID)
	}

	agenda := r.collect(r.byBarber[ap.BarberID])
	if domain.FindConflict(agenda, ap.BarberID, domain.IntervalOf(ap)) != nil {
		return domain.ErrSlotConflict
	}
	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentMemoryRepository) UpdateAppointment(
	ctx context.Context,
	id string,
	mutate func(ap *models.Appointment) error,
) (*models.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}

	work := *stored
	if err := mutate(&work); err != nil {
		return nil, err
	}
	work.UpdatedAt = time.Now()

	*stored = work
	out := work
	return &out, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	out := *stored
	return &out, nil
}

func (r *AppointmentMemoryRepository) ListByBarber(
	ctx context.Context,
	barberID uint,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(r.byBarber[barberID]), nil
}

func (r *AppointmentMemoryRepository) ListByClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(r.byClient[clientID]), nil
}

func (r *AppointmentMemoryRepository) ListAll(ctx context.Context) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Appointment, 0, len(r.byID))
	for _, ap := range r.byID {
		out = append(out, *ap)
	}
	sortChronologically(out)
	return out, nil
}

// collect copies the records for ids; caller holds mu.
func (r *AppointmentMemoryRepository) collect(ids []string) []models.Appointment {
	out := make([]models.Appointment, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.byID[id])
	}
	sortChronologically(out)
	return out
}

// Compile-time check
var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
