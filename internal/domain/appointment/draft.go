package appointment

import (
	"fmt"
	"strings"

	"github.com/R4F43R/barbapp/internal/validators"
)

// Draft is a booking submission. Only a draft that passes Validate may be
// turned into an appointment.
type Draft struct {
	ServiceID uint   `json:"service_id"`
	BarberID  uint   `json:"barber_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM

	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
}

// Missing lists the required fields that are not set yet.
func (d Draft) Missing() []string {
	var missing []string
	if d.ServiceID == 0 {
		missing = append(missing, "service")
	}
	if d.BarberID == 0 {
		missing = append(missing, "barber")
	}
	if strings.TrimSpace(d.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(d.Time) == "" {
		missing = append(missing, "time")
	}
	if d.ClientID == 0 {
		missing = append(missing, "client_id")
	}
	if strings.TrimSpace(d.ClientName) == "" {
		missing = append(missing, "client_name")
	}
	if strings.TrimSpace(d.ClientPhone) == "" {
		missing = append(missing, "client_phone")
	}
	return missing
}

func (d Draft) Validate() error {
	if missing := d.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidDraft, strings.Join(missing, ", "))
	}
	if !validators.IsPhoneValid(d.ClientPhone) {
		return fmt.Errorf("%w: invalid client_phone", ErrInvalidDraft)
	}
	return nil
}
