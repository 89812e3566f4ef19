package booking

import (
	"context"

	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/models"
	ucAppointment "github.com/R4F43R/barbapp/internal/usecase/appointment"
)

// LocalBackend serves flows from the in-process use cases.
type LocalBackend struct {
	create *ucAppointment.CreateAppointment
	list   *ucAppointment.ListAppointments
}

func NewLocalBackend(
	create *ucAppointment.CreateAppointment,
	list *ucAppointment.ListAppointments,
) *LocalBackend {
	return &LocalBackend{create: create, list: list}
}

func (b *LocalBackend) GetAppointmentsForStaff(ctx context.Context, barberID uint) ([]models.Appointment, error) {
	return b.list.ForStaff(ctx, barberID)
}

func (b *LocalBackend) CreateAppointment(ctx context.Context, draft domain.Draft) (*models.Appointment, error) {
	return b.create.Execute(ctx, draft)
}

var _ Backend = (*LocalBackend)(nil)
