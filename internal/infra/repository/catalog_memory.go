package repository

import (
	"context"
	"slices"
	"sync"

	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/models"
)

type CatalogMemoryRepository struct {
	mu       sync.RWMutex
	services []models.Service
	barbers  []models.Barber
	nextID   uint
}

func NewCatalogMemoryRepository(services []models.Service, barbers []models.Barber) *CatalogMemoryRepository {
	c := &CatalogMemoryRepository{
		services: slices.Clone(services),
		barbers:  slices.Clone(barbers),
	}
	for _, b := range barbers {
		c.nextID = max(c.nextID, b.ID)
	}
	return c
}

func (c *CatalogMemoryRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.services), nil
}

func (c *CatalogMemoryRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, s := range c.services {
		if s.ID == id {
			out := s
			return &out, nil
		}
	}
	return nil, domain.ErrServiceNotFound
}

func (c *CatalogMemoryRepository) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.barbers), nil
}

func (c *CatalogMemoryRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, b := range c.barbers {
		if b.ID == id {
			out := b
			return &out, nil
		}
	}
	return nil, domain.ErrStaffNotFound
}

func (c *CatalogMemoryRepository) CreateBarber(ctx context.Context, b *models.Barber) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	b.ID = c.nextID
	c.barbers = append(c.barbers, *b)
	return nil
}

// DeleteBarber removes the staff profile; its appointments stay in the store.
func (c *CatalogMemoryRepository) DeleteBarber(ctx context.Context, id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.barbers, func(b models.Barber) bool { return b.ID == id })
	if i < 0 {
		return domain.ErrStaffNotFound
	}
	c.barbers = slices.Delete(c.barbers, i, i+1)
	return nil
}

var _ domain.Catalog = (*CatalogMemoryRepository)(nil)
