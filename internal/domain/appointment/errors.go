package appointment

import "github.com/R4F43R/barbapp/internal/httperr"

// ===============================
// Domain Errors
// ===============================

var (
	// caller bugs on the pure scheduling functions
	ErrInvalidDuration      = httperr.ErrBusiness("invalid_duration")
	ErrInvalidBusinessHours = httperr.ErrBusiness("invalid_business_hours")
	ErrInvalidGranularity   = httperr.ErrBusiness("invalid_granularity")
	ErrInvalidTime          = httperr.ErrBusiness("invalid_date_or_time")

	ErrInvalidDraft         = httperr.ErrBusiness("invalid_draft")
	ErrOutsideBusinessHours = httperr.ErrBusiness("outside_business_hours")
	ErrSlotConflict         = httperr.ErrBusiness("slot_conflict")
	ErrAppointmentNotFound  = httperr.ErrBusiness("appointment_not_found")
	ErrDuplicateAppointment = httperr.ErrBusiness("appointment_exists")
	ErrIllegalTransition    = httperr.ErrBusiness("illegal_transition")
	ErrInvalidStatus        = httperr.ErrBusiness("invalid_status")
	ErrForbidden            = httperr.ErrBusiness("forbidden")

	ErrStaffNotFound   = httperr.ErrBusiness("staff_not_found")
	ErrServiceNotFound = httperr.ErrBusiness("service_not_found")
)
