package dto

import (
	"github.com/R4F43R/barbapp/internal/booking"
	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
)

type BookingSessionDTO struct {
	SessionID string        `json:"session_id"`
	State     booking.State `json:"state"`
}

type SlotsDTO struct {
	Date  string            `json:"date"`
	Slots []domain.TimeSlot `json:"slots"`
}
