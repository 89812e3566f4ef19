package models

import "time"

// Service is a catalog entry. Appointments copy it into ServiceSnapshot at
// creation so later catalog edits never move an occupied interval.
type Service struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `json:"price"`
	DurationMin int     `gorm:"not null" json:"duration"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type ServiceSnapshot struct {
	ID          uint    `json:"id"`
	Name        string  `gorm:"size:100" json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration"`
}

func (s Service) Snapshot() ServiceSnapshot {
	return ServiceSnapshot{
		ID:          s.ID,
		Name:        s.Name,
		Price:       s.Price,
		DurationMin: s.DurationMin,
	}
}
