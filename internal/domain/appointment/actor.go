package appointment

import "github.com/R4F43R/barbapp/internal/models"

type Role string

const (
	RoleClient Role = "client"
	RoleBarber Role = "barber"
	RoleAdmin  Role = "admin"
)

// Actor is whoever asks for a status change.
type Actor struct {
	ID   uint
	Role Role
}

// CanSetStatus checks who may drive ap to the target status: staff decide
// confirm/reject on their own agenda, clients may only cancel their own
// appointments, admins may do anything the state machine allows.
func CanSetStatus(actor Actor, ap *models.Appointment, to Status) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleBarber:
		if ap.BarberID == actor.ID {
			return nil
		}
	case RoleClient:
		if ap.ClientID == actor.ID && to == StatusCancelled {
			return nil
		}
	}
	return ErrForbidden
}
