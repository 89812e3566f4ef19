package events

import (
	"time"

	"github.com/R4F43R/barbapp/internal/models"
)

type AppointmentCreated struct {
	AppointmentID string    `json:"appointment_id"`
	BarberID      uint      `json:"barber_id"`
	ClientID      uint      `json:"client_id"`
	ServiceID     uint      `json:"service_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

type AppointmentStatusChanged struct {
	AppointmentID string    `json:"appointment_id"`
	BarberID      uint      `json:"barber_id"`
	ClientID      uint      `json:"client_id"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	ChangedAt     time.Time `json:"changed_at"`
}

func NewAppointmentCreated(ap *models.Appointment) AppointmentCreated {
	return AppointmentCreated{
		AppointmentID: ap.ID,
		BarberID:      ap.BarberID,
		ClientID:      ap.ClientID,
		ServiceID:     ap.Service.ID,
		StartTime:     ap.StartTime,
		EndTime:       ap.EndTime,
	}
}

func NewAppointmentStatusChanged(ap *models.Appointment, from string) AppointmentStatusChanged {
	return AppointmentStatusChanged{
		AppointmentID: ap.ID,
		BarberID:      ap.BarberID,
		ClientID:      ap.ClientID,
		From:          from,
		To:            ap.Status,
		ChangedAt:     ap.UpdatedAt,
	}
}
