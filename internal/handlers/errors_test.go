package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/R4F43R/barbapp/internal/booking"
	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/httperr"
)

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"conflict", domain.ErrSlotConflict, http.StatusConflict, "slot_conflict", ""},
		{"duplicate", fmt.Errorf("%w: apt-1", domain.ErrDuplicateAppointment), http.StatusConflict, "appointment_exists", ""},
		{"conflict with failed refresh", errors.Join(domain.ErrSlotConflict, fmt.Errorf("%w: %w", booking.ErrUnavailable, errors.New("reset"))), http.StatusConflict, "slot_conflict", ""},
		{"illegal", domain.ErrIllegalTransition, http.StatusUnprocessableEntity, "illegal_transition", ""},
		{"not found", domain.ErrAppointmentNotFound, http.StatusNotFound, "appointment_not_found", ""},
		{"draft detail", fmt.Errorf("%w: missing client_phone", domain.ErrInvalidDraft), http.StatusBadRequest, "invalid_draft", "missing client_phone"},
		{"transport", fmt.Errorf("%w: %w", booking.ErrUnavailable, errors.New("dial tcp")), http.StatusServiceUnavailable, "booking_backend_unavailable", ""},
		{"unknown business code", httperr.ErrBusiness("mystery"), http.StatusInternalServerError, "internal_error", ""},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			writeError(c, zap.NewNop(), tt.err)

			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			var body httperr.HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.code {
				t.Fatalf("expected %q, got %q", tt.code, body.Code)
			}
			if tt.message != "" && !strings.Contains(body.Message, tt.message) {
				t.Fatalf("message %q lacks %q", body.Message, tt.message)
			}
			if strings.Contains(body.Message, "dial tcp") {
				t.Fatal("transport detail leaked to the client")
			}
		})
	}
}
