package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/timezone"
)

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      string // YYYY-MM-DD
}

type GetAvailability struct {
	repo     domain.Repository
	catalog  domain.Catalog
	schedule domain.Schedule
	now      func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	catalog domain.Catalog,
	schedule domain.Schedule,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		catalog:  catalog,
		schedule: schedule,
		now:      time.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]domain.TimeSlot, error) {

	if _, err := uc.catalog.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}
	service, err := uc.catalog.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	day, err := timezone.ParseDate(in.Date, uc.schedule.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTime, in.Date)
	}

	existing, err := uc.repo.ListByBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	starts, err := domain.AvailableSlots(domain.SlotQuery{
		BarberID:    in.BarberID,
		Date:        day,
		DurationMin: service.DurationMin,
		Hours:       uc.schedule.Hours,
		Granularity: uc.schedule.Granularity,
		Now:         uc.now(),
	}, existing)
	if err != nil {
		return nil, err
	}

	return domain.ToTimeSlots(starts, service.DurationMin), nil
}
