package models

import "time"

type Barber struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Specialty string `gorm:"size:255" json:"specialty"`
	// ImageRef is either an absolute URL or an object key in the staff image bucket.
	ImageRef string `gorm:"size:255" json:"imageUrl"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
