package appointment

import (
	"context"

	"github.com/R4F43R/barbapp/internal/models"
)

type Repository interface {
	// -------- Appointment (create / conflict) --------

	// CreateIfFree runs the overlap check and the insert as one atomic unit
	// for ap.BarberID. It returns ErrSlotConflict and stores nothing when a
	// pending/confirmed appointment of the same barber overlaps ap.
	CreateIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------

	// UpdateAppointment loads the appointment, applies mutate and persists
	// the result atomically. A mutate error leaves the record unchanged.
	UpdateAppointment(
		ctx context.Context,
		id string,
		mutate func(ap *models.Appointment) error,
	) (*models.Appointment, error)

	// -------- Appointment (reads) --------
	// Reads return copies ordered by start time.

	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)

	ListByBarber(ctx context.Context, barberID uint) ([]models.Appointment, error)

	ListByClient(ctx context.Context, clientID uint) ([]models.Appointment, error)

	ListAll(ctx context.Context) ([]models.Appointment, error)
}

// Catalog is the static services/staff collaborator.
type Catalog interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)

	ListBarbers(ctx context.Context) ([]models.Barber, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	CreateBarber(ctx context.Context, b *models.Barber) error
	DeleteBarber(ctx context.Context, id uint) error
}
