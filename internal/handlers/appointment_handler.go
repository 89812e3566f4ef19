package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/dto"
	"github.com/R4F43R/barbapp/internal/httperr"
	"github.com/R4F43R/barbapp/internal/httpresp"
	"github.com/R4F43R/barbapp/internal/middleware"
	ucAppointment "github.com/R4F43R/barbapp/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	updateStatusUC *ucAppointment.UpdateAppointmentStatus
	listUC         *ucAppointment.ListAppointments
	availabilityUC *ucAppointment.GetAvailability
	log            *zap.Logger
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateStatusUC *ucAppointment.UpdateAppointmentStatus,
	listUC *ucAppointment.ListAppointments,
	availabilityUC *ucAppointment.GetAvailability,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		updateStatusUC: updateStatusUC,
		listUC:         listUC,
		availabilityUC: availabilityUC,
		log:            log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID   uint   `json:"service_id"`
	BarberID    uint   `json:"barber_id"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:mm
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

// Create books for the caller. Clients always book for themselves; staff and
// admins book on behalf of the client_id in the body.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	actor := middleware.ActorFrom(c)
	if actor.Role == domain.RoleClient {
		req.ClientID = actor.ID
	}

	ap, err := h.createUC.Execute(c.Request.Context(), domain.Draft{
		ServiceID:   req.ServiceID,
		BarberID:    req.BarberID,
		Date:        req.Date,
		Time:        req.Time,
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Estado obligatorio.")
		return
	}

	ap, err := h.updateStatusUC.Execute(
		c.Request.Context(),
		c.Param("id"),
		req.Status,
		middleware.ActorFrom(c),
	)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LISTS
// ======================================================

// ListForBarber is the barber's own agenda; admins may read any.
func (h *AppointmentHandler) ListForBarber(c *gin.Context) {
	barberID, ok := parseID(c, "barberId")
	if !ok {
		return
	}

	actor := middleware.ActorFrom(c)
	if actor.Role != domain.RoleAdmin && !(actor.Role == domain.RoleBarber && actor.ID == barberID) {
		writeError(c, h.log, domain.ErrForbidden)
		return
	}

	apps, err := h.listUC.ForStaff(c.Request.Context(), barberID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, apps)
}

func (h *AppointmentHandler) ListForClient(c *gin.Context) {
	clientID, ok := parseID(c, "clientId")
	if !ok {
		return
	}

	actor := middleware.ActorFrom(c)
	if actor.Role != domain.RoleAdmin && !(actor.Role == domain.RoleClient && actor.ID == clientID) {
		writeError(c, h.log, domain.ErrForbidden)
		return
	}

	apps, err := h.listUC.ForClient(c.Request.Context(), clientID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, apps)
}

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	apps, err := h.listUC.All(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, apps)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	barberID, ok := parseID(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	serviceIDStr := c.Query("service_id")
	if date == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Fecha y servicio obligatorios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Servicio inválido.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		BarberID:  barberID,
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.SlotsDTO{Date: date, Slots: slots})
}
