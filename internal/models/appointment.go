package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;size:64" json:"id"`

	ClientID uint `gorm:"index" json:"clientId"`

	Service ServiceSnapshot `gorm:"embedded;embeddedPrefix:service_" json:"service"`

	BarberID   uint   `gorm:"index:idx_appointments_barber_start" json:"barberId"`
	BarberName string `gorm:"size:100" json:"barberName"`

	// Date (YYYY-MM-DD) and Time (HH:MM) are what the client picked;
	// StartTime/EndTime are the derived half-open interval.
	Date string `gorm:"size:10" json:"date"`
	Time string `gorm:"size:5" json:"time"`

	StartTime time.Time `gorm:"index:idx_appointments_barber_start" json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	ClientName  string `gorm:"size:100" json:"clientName"`
	ClientPhone string `gorm:"size:30" json:"clientPhone"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
