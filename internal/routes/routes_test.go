package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/R4F43R/barbapp/internal/audit"
	"github.com/R4F43R/barbapp/internal/config"
	"github.com/R4F43R/barbapp/internal/events"
	"github.com/R4F43R/barbapp/internal/infra/repository"
	"github.com/R4F43R/barbapp/internal/infra/storage"
)

const secret = "test-secret"

type server struct {
	t *testing.T
	r *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:       secret,
		BusinessOpen:    "09:00",
		BusinessClose:   "18:00",
		SlotGranularity: 30 * time.Minute,
		Timezone:        "UTC",
		RateLimitPerMin: 1000,
		SessionTTL:      30 * time.Minute,
	}

	dispatcher := audit.NewDispatcher(audit.NewLogSink(zap.NewNop()), zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = dispatcher.Close(context.Background())
	})

	r := gin.New()
	RegisterRoutes(ctx, r, Infra{
		Appointments: repository.NewAppointmentMemoryRepository(nil),
		Catalog:      repository.NewCatalogMemoryRepository(repository.DefaultServices(), repository.DefaultBarbers()),
		Audit:        dispatcher,
		Events:       events.NopPublisher{},
		Images:       storage.PassthroughResolver{},
	}, cfg, zap.NewNop())

	return &server{t: t, r: r}
}

func token(t *testing.T, sub uint, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func (s *server) do(method, path, tok string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func expect(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
	if code != "" {
		body := decode[map[string]any](t, w)
		if body["error_code"] != code {
			t.Fatalf("expected error_code %q, got %v", code, body["error_code"])
		}
	}
}

type appointmentBody struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	BarberID uint   `json:"barberId"`
	ClientID uint   `json:"clientId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

func draftBody(barberID, serviceID uint, clock string) map[string]any {
	return map[string]any{
		"service_id":   serviceID,
		"barber_id":    barberID,
		"date":         "2024-06-01",
		"time":         clock,
		"client_name":  "Andrés Cliente",
		"client_phone": "+34 600 123 456",
	}
}

// ======================================================
// TESTS
// ======================================================

func TestCatalogRoutes(t *testing.T) {
	s := newServer(t)

	expect(t, s.do(http.MethodGet, "/health", "", nil), http.StatusOK, "")

	w := s.do(http.MethodGet, "/api/services", "", nil)
	expect(t, w, http.StatusOK, "")
	if got := decode[map[string]any](t, w)["total"]; got != float64(4) {
		t.Fatalf("expected 4 services, got %v", got)
	}

	w = s.do(http.MethodGet, "/api/barbers", "", nil)
	expect(t, w, http.StatusOK, "")
	if !strings.Contains(w.Body.String(), `"imageUrl":"https://picsum.photos/seed/javier/400/400"`) {
		t.Fatalf("image url missing: %s", w.Body.String())
	}
}

func TestAdminManagesBarbers(t *testing.T) {
	s := newServer(t)
	admin := token(t, 1, "admin")

	expect(t, s.do(http.MethodPost, "/api/barbers", token(t, 101, "client"), map[string]any{"name": "Nuevo"}), http.StatusForbidden, "")

	w := s.do(http.MethodPost, "/api/barbers", admin, map[string]any{"name": "Nuevo", "specialty": "Fade"})
	expect(t, w, http.StatusCreated, "")
	created := decode[map[string]any](t, w)
	if created["id"] != float64(4) {
		t.Fatalf("unexpected barber %v", created)
	}

	expect(t, s.do(http.MethodDelete, "/api/barbers/4", admin, nil), http.StatusNoContent, "")
	expect(t, s.do(http.MethodDelete, "/api/barbers/4", admin, nil), http.StatusNotFound, "staff_not_found")
	expect(t, s.do(http.MethodDelete, "/api/barbers/abc", admin, nil), http.StatusBadRequest, "invalid_id")
}

func TestAppointmentRoutes(t *testing.T) {
	s := newServer(t)
	client := token(t, 101, "client")
	otherClient := token(t, 102, "client")
	barber2 := token(t, 2, "barber")
	admin := token(t, 1, "admin")

	expect(t, s.do(http.MethodPost, "/api/appointments", "", draftBody(2, 1, "14:00")), http.StatusUnauthorized, "")

	w := s.do(http.MethodPost, "/api/appointments", client, draftBody(2, 1, "14:00"))
	expect(t, w, http.StatusCreated, "")
	ap := decode[appointmentBody](t, w)
	if ap.Status != "pending" || ap.ClientID != 101 || ap.Time != "14:00" {
		t.Fatalf("unexpected appointment %+v", ap)
	}

	expect(t, s.do(http.MethodPost, "/api/appointments", otherClient, draftBody(2, 3, "14:15")), http.StatusConflict, "slot_conflict")

	incomplete := draftBody(2, 1, "15:00")
	delete(incomplete, "client_phone")
	expect(t, s.do(http.MethodPost, "/api/appointments", client, incomplete), http.StatusBadRequest, "invalid_draft")
	expect(t, s.do(http.MethodPost, "/api/appointments", client, draftBody(2, 4, "17:30")), http.StatusBadRequest, "outside_business_hours")

	// status changes
	statusPath := "/api/appointments/" + ap.ID + "/status"
	expect(t, s.do(http.MethodPut, statusPath, client, map[string]string{"status": "confirmed"}), http.StatusForbidden, "forbidden")
	expect(t, s.do(http.MethodPut, statusPath, barber2, map[string]string{"status": "done"}), http.StatusBadRequest, "invalid_status")
	expect(t, s.do(http.MethodPut, statusPath, barber2, map[string]string{"status": "confirmed"}), http.StatusOK, "")
	expect(t, s.do(http.MethodPut, statusPath, barber2, map[string]string{"status": "pending"}), http.StatusUnprocessableEntity, "illegal_transition")
	expect(t, s.do(http.MethodPut, "/api/appointments/nope/status", admin, map[string]string{"status": "confirmed"}), http.StatusNotFound, "appointment_not_found")

	// reads
	expect(t, s.do(http.MethodGet, "/api/appointments/client/101", client, nil), http.StatusOK, "")
	expect(t, s.do(http.MethodGet, "/api/appointments/client/101", otherClient, nil), http.StatusForbidden, "forbidden")
	expect(t, s.do(http.MethodGet, "/api/appointments/barber/2", barber2, nil), http.StatusOK, "")
	expect(t, s.do(http.MethodGet, "/api/appointments/barber/3", barber2, nil), http.StatusForbidden, "forbidden")
	expect(t, s.do(http.MethodGet, "/api/appointments", barber2, nil), http.StatusForbidden, "")

	w = s.do(http.MethodGet, "/api/appointments", admin, nil)
	expect(t, w, http.StatusOK, "")
	list := decode[struct {
		Data  []appointmentBody `json:"data"`
		Total int               `json:"total"`
	}](t, w)
	if list.Total != 1 || list.Data[0].ID != ap.ID || list.Data[0].Status != "confirmed" {
		t.Fatalf("unexpected list %+v", list)
	}

	// owner cancels; the slot is free again
	expect(t, s.do(http.MethodPut, statusPath, client, map[string]string{"status": "cancelled"}), http.StatusOK, "")
	expect(t, s.do(http.MethodPost, "/api/appointments", otherClient, draftBody(2, 3, "14:15")), http.StatusCreated, "")
}

func TestAvailabilityRoute(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/api/appointments", token(t, 101, "client"), draftBody(1, 2, "10:00"))
	expect(t, w, http.StatusCreated, "")
	ap := decode[appointmentBody](t, w)
	expect(t, s.do(http.MethodPut, "/api/appointments/"+ap.ID+"/status", token(t, 1, "barber"), map[string]string{"status": "confirmed"}), http.StatusOK, "")

	w = s.do(http.MethodGet, "/api/barbers/1/availability?date=2024-06-01&service_id=2", "", nil)
	expect(t, w, http.StatusOK, "")
	body := w.Body.String()
	for _, want := range []string{`"start":"09:00"`, `"start":"10:45"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %s in %s", want, body)
		}
	}
	for _, banned := range []string{`"start":"09:30"`, `"start":"10:00"`} {
		if strings.Contains(body, banned) {
			t.Fatalf("unexpected %s in %s", banned, body)
		}
	}

	expect(t, s.do(http.MethodGet, "/api/barbers/1/availability?date=2024-06-01", "", nil), http.StatusBadRequest, "missing_params")
	expect(t, s.do(http.MethodGet, "/api/barbers/9/availability?date=2024-06-01&service_id=2", "", nil), http.StatusNotFound, "staff_not_found")
	expect(t, s.do(http.MethodGet, "/api/barbers/1/availability?date=junio&service_id=2", "", nil), http.StatusBadRequest, "invalid_date_or_time")
}

func TestBookingSessionRoutes(t *testing.T) {
	s := newServer(t)
	client := token(t, 101, "client")

	w := s.do(http.MethodPost, "/api/booking/sessions", client, nil)
	expect(t, w, http.StatusCreated, "")
	id := decode[map[string]any](t, w)["session_id"].(string)
	base := "/api/booking/sessions/" + id

	expect(t, s.do(http.MethodGet, base, token(t, 102, "client"), nil), http.StatusNotFound, "booking_session_not_found")
	expect(t, s.do(http.MethodPost, base+"/slot", client, map[string]string{"date": "2024-06-01", "time": "14:00"}), http.StatusConflict, "booking_wrong_step")

	expect(t, s.do(http.MethodPost, base+"/service", client, map[string]uint{"service_id": 42}), http.StatusNotFound, "service_not_found")
	expect(t, s.do(http.MethodPost, base+"/service", client, map[string]uint{"service_id": 1}), http.StatusOK, "")
	expect(t, s.do(http.MethodPost, base+"/barber", client, map[string]uint{"barber_id": 2}), http.StatusOK, "")

	w = s.do(http.MethodGet, base+"/slots?date=2024-06-01", client, nil)
	expect(t, w, http.StatusOK, "")
	if !strings.Contains(w.Body.String(), `"start":"14:00"`) {
		t.Fatalf("14:00 not offered: %s", w.Body.String())
	}

	expect(t, s.do(http.MethodPost, base+"/slot", client, map[string]string{"date": "2024-06-01", "time": "14:10"}), http.StatusBadRequest, "booking_slot_unavailable")
	expect(t, s.do(http.MethodPost, base+"/slot", client, map[string]string{"date": "2024-06-01", "time": "14:00"}), http.StatusOK, "")

	// someone else takes the slot before confirmation
	expect(t, s.do(http.MethodPost, "/api/appointments", token(t, 102, "client"), draftBody(2, 1, "14:00")), http.StatusCreated, "")

	confirm := map[string]string{"client_name": "Andrés Cliente", "client_phone": "+34 600 123 456"}
	expect(t, s.do(http.MethodPost, base+"/confirm", client, confirm), http.StatusConflict, "slot_conflict")

	w = s.do(http.MethodGet, base, client, nil)
	expect(t, w, http.StatusOK, "")
	state := decode[map[string]any](t, w)["state"].(map[string]any)
	if state["step"] != "DATETIME" || state["time"] != nil {
		t.Fatalf("expected slot selection after conflict, got %v", state)
	}

	w = s.do(http.MethodGet, base+"/slots?date=2024-06-01", client, nil)
	if strings.Contains(w.Body.String(), `"start":"14:00"`) {
		t.Fatalf("taken slot still offered: %s", w.Body.String())
	}

	expect(t, s.do(http.MethodPost, base+"/slot", client, map[string]string{"date": "2024-06-01", "time": "14:30"}), http.StatusOK, "")
	w = s.do(http.MethodPost, base+"/confirm", client, confirm)
	expect(t, w, http.StatusCreated, "")
	state = decode[map[string]any](t, w)["state"].(map[string]any)
	if state["step"] != "SUCCESS" || state["appointment"] == nil {
		t.Fatalf("expected SUCCESS, got %v", state)
	}

	expect(t, s.do(http.MethodPost, base+"/back", client, nil), http.StatusConflict, "booking_finished")
	w = s.do(http.MethodPost, base+"/reset", client, nil)
	expect(t, w, http.StatusOK, "")
	if decode[map[string]any](t, w)["state"].(map[string]any)["step"] != "SERVICE" {
		t.Fatal("reset did not return to SERVICE")
	}

	expect(t, s.do(http.MethodDelete, base, client, nil), http.StatusNoContent, "")
	expect(t, s.do(http.MethodGet, base, client, nil), http.StatusNotFound, "booking_session_not_found")
}
