package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/R4F43R/barbapp/internal/booking"
	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/dto"
	"github.com/R4F43R/barbapp/internal/httperr"
	"github.com/R4F43R/barbapp/internal/httpresp"
	"github.com/R4F43R/barbapp/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

// BookingHandler exposes one booking flow per session. Sessions belong to the
// authenticated user that created them.
type BookingHandler struct {
	sessions *booking.Registry
	catalog  domain.Catalog
	log      *zap.Logger
}

func NewBookingHandler(
	sessions *booking.Registry,
	catalog domain.Catalog,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		sessions: sessions,
		catalog:  catalog,
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SelectServiceRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
}

type SelectBarberRequest struct {
	BarberID uint `json:"barber_id" binding:"required"`
}

type SelectSlotRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type ConfirmRequest struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
}

// ======================================================
// SESSIONS
// ======================================================

func (h *BookingHandler) Start(c *gin.Context) {
	id, flow := h.sessions.Create(middleware.ActorFrom(c).ID)

	httpresp.Created(c, dto.BookingSessionDTO{
		SessionID: id,
		State:     flow.Snapshot(),
	})
}

func (h *BookingHandler) Get(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	h.state(c, flow)
}

func (h *BookingHandler) Discard(c *gin.Context) {
	if _, ok := h.flow(c); !ok {
		return
	}
	h.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ======================================================
// STEPS
// ======================================================

func (h *BookingHandler) SelectService(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	var req SelectServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Servicio obligatorio.")
		return
	}

	service, err := h.catalog.GetService(c.Request.Context(), req.ServiceID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if err := flow.SelectService(*service); err != nil {
		writeError(c, h.log, err)
		return
	}
	h.state(c, flow)
}

func (h *BookingHandler) SelectBarber(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	var req SelectBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Barbero obligatorio.")
		return
	}

	barber, err := h.catalog.GetBarber(c.Request.Context(), req.BarberID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if err := flow.SelectStaff(c.Request.Context(), *barber); err != nil {
		writeError(c, h.log, err)
		return
	}
	h.state(c, flow)
}

func (h *BookingHandler) Slots(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_params", "Fecha obligatoria.")
		return
	}

	slots, err := flow.Slots(date)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.SlotsDTO{Date: date, Slots: slots})
}

func (h *BookingHandler) Refresh(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	if err := flow.RefreshAvailability(c.Request.Context()); err != nil {
		writeError(c, h.log, err)
		return
	}
	h.state(c, flow)
}

func (h *BookingHandler) SelectSlot(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	var req SelectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Fecha y hora obligatorias.")
		return
	}

	if err := flow.SelectSlot(req.Date, req.Time); err != nil {
		writeError(c, h.log, err)
		return
	}
	h.state(c, flow)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	_, err := flow.Confirm(c.Request.Context(), booking.Contact{
		ClientID: middleware.ActorFrom(c).ID,
		Name:     req.ClientName,
		Phone:    req.ClientPhone,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.BookingSessionDTO{
		SessionID: c.Param("id"),
		State:     flow.Snapshot(),
	})
}

func (h *BookingHandler) Back(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	if err := flow.Back(); err != nil {
		writeError(c, h.log, err)
		return
	}
	h.state(c, flow)
}

func (h *BookingHandler) Reset(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	flow.Reset()
	h.state(c, flow)
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) flow(c *gin.Context) (*booking.Flow, bool) {
	flow, err := h.sessions.Get(c.Param("id"), middleware.ActorFrom(c).ID)
	if err != nil {
		writeError(c, h.log, err)
		return nil, false
	}
	return flow, true
}

func (h *BookingHandler) state(c *gin.Context, flow *booking.Flow) {
	httpresp.OK(c, dto.BookingSessionDTO{
		SessionID: c.Param("id"),
		State:     flow.Snapshot(),
	})
}
