package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/httperr"
	"github.com/R4F43R/barbapp/internal/infra/lock"
	"github.com/R4F43R/barbapp/internal/models"
)

type AppointmentGormRepository struct {
	db    *gorm.DB
	locks lock.Locker
}

func NewAppointmentGormRepository(db *gorm.DB, locks lock.Locker) *AppointmentGormRepository {
	if locks == nil {
		locks = lock.NewLocalLocker()
	}
	return &AppointmentGormRepository{db: db, locks: locks}
}

// forUpdate adds row locking where the dialect supports it.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateIfFree takes the barber lock (process-local or redis), then checks and
// inserts inside one transaction. On postgres the exclusion constraint is the
// last line of defence and is reported as a slot conflict too.
func (r *AppointmentGormRepository) CreateIfFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	unlock, err := r.locks.Lock(ctx, lock.BarberKey(ap.BarberID))
	if err != nil {
		return fmt.Errorf("lock barber %d: %w", ap.BarberID, err)
	}
	defer unlock()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Appointment
		if err := forUpdate(tx).
			Select("id").
			Where(
				"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.BarberID,
				[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
				ap.EndTime,
				ap.StartTime,
			).
			Limit(1).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return domain.ErrSlotConflict
		}

		return tx.Create(ap).Error
	})

	if err != nil {
		return createError(ap.ID, err)
	}
	return nil
}

// createError maps constraint violations raised by the insert to domain errors.
func createError(id string, err error) error {
	switch {
	case errors.Is(err, domain.ErrSlotConflict), httperr.IsExclusionConflict(err):
		return domain.ErrSlotConflict
	case errors.Is(err, gorm.ErrDuplicatedKey), httperr.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAppointment, id)
	default:
		return fmt.Errorf("create appointment: %w", err)
	}
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	id string,
	mutate func(ap *models.Appointment) error,
) (*models.Appointment, error) {

	var ap models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			Where("id = ?", id).
			First(&ap).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAppointmentNotFound
			}
			return err
		}

		if err := mutate(&ap); err != nil {
			return err
		}

		return tx.Save(&ap).Error
	})

	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListByBarber(
	ctx context.Context,
	barberID uint,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("start_time ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListByClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("start_time ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAll(ctx context.Context) ([]models.Appointment, error) {
	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Order("start_time ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
