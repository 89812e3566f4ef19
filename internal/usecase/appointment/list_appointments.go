package appointment

import (
	"context"

	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/models"
)

// ListAppointments serves the read paths; results are chronological copies.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// ForStaff lists a barber's agenda. Removed barbers keep their history, so an
// unknown id simply yields whatever the store holds for it.
func (uc *ListAppointments) ForStaff(
	ctx context.Context,
	barberID uint,
) ([]models.Appointment, error) {
	return uc.repo.ListByBarber(ctx, barberID)
}

func (uc *ListAppointments) ForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {
	return uc.repo.ListByClient(ctx, clientID)
}

func (uc *ListAppointments) All(ctx context.Context) ([]models.Appointment, error) {
	return uc.repo.ListAll(ctx)
}
