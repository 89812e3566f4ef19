package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// Seed inserts the default menu and staff into empty tables.
func (r *CatalogGormRepository) Seed(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Service{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			services := DefaultServices()
			if err := tx.Create(&services).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Barber{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			barbers := DefaultBarbers()
			if err := tx.Create(&barbers).Error; err != nil {
				return err
			}
		}

		// seeded rows carry explicit ids; move the serial past them
		if tx.Dialector.Name() == "postgres" {
			for _, table := range []string{"services", "barbers"} {
				if err := tx.Exec(
					"SELECT setval(pg_get_serial_sequence(?, 'id'), COALESCE((SELECT MAX(id) FROM "+table+"), 1))",
					table,
				).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *CatalogGormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	barbers := []models.Barber{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *CatalogGormRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	var b models.Barber
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *CatalogGormRepository) CreateBarber(ctx context.Context, b *models.Barber) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *CatalogGormRepository) DeleteBarber(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Barber{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaffNotFound
	}
	return nil
}

var _ domain.Catalog = (*CatalogGormRepository)(nil)
