package booking

import "github.com/R4F43R/barbapp/internal/httperr"

var (
	ErrWrongStep       = httperr.ErrBusiness("booking_wrong_step")
	ErrNoPreviousStep  = httperr.ErrBusiness("booking_no_previous_step")
	ErrFlowFinished    = httperr.ErrBusiness("booking_finished")
	ErrStaleResult     = httperr.ErrBusiness("booking_stale_result")
	ErrSlotUnavailable = httperr.ErrBusiness("booking_slot_unavailable")
	ErrSessionNotFound = httperr.ErrBusiness("booking_session_not_found")

	// ErrUnavailable wraps transport failures; the flow keeps its state and
	// the call can be retried.
	ErrUnavailable = httperr.ErrBusiness("booking_backend_unavailable")
)
