package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/R4F43R/barbapp/internal/audit"
	domain "github.com/R4F43R/barbapp/internal/domain/appointment"
	"github.com/R4F43R/barbapp/internal/dto"
	"github.com/R4F43R/barbapp/internal/httperr"
	"github.com/R4F43R/barbapp/internal/httpresp"
	"github.com/R4F43R/barbapp/internal/infra/storage"
	"github.com/R4F43R/barbapp/internal/middleware"
	"github.com/R4F43R/barbapp/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type CatalogHandler struct {
	catalog domain.Catalog
	images  storage.ImageResolver
	audit   *audit.Dispatcher
	log     *zap.Logger
}

func NewCatalogHandler(
	catalog domain.Catalog,
	images storage.ImageResolver,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CatalogHandler {
	if images == nil {
		images = storage.PassthroughResolver{}
	}
	return &CatalogHandler{
		catalog: catalog,
		images:  images,
		audit:   audit,
		log:     log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBarberRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
	ImageRef  string `json:"image_ref"`
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.catalog.ListServices(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, services)
}

// ======================================================
// BARBERS
// ======================================================

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.catalog.ListBarbers(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out := make([]dto.BarberDTO, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, h.toDTO(c, b))
	}
	httpresp.List(c, out)
}

func (h *CatalogHandler) CreateBarber(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	b := &models.Barber{
		Name:      req.Name,
		Specialty: req.Specialty,
		ImageRef:  req.ImageRef,
	}
	if err := h.catalog.CreateBarber(c.Request.Context(), b); err != nil {
		writeError(c, h.log, err)
		return
	}

	actor := middleware.ActorFrom(c)
	h.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: uintString(b.ID),
	})

	httpresp.Created(c, h.toDTO(c, *b))
}

// DeleteBarber removes the profile only; existing appointments are kept.
func (h *CatalogHandler) DeleteBarber(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteBarber(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}

	actor := middleware.ActorFrom(c)
	h.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "barber_deleted",
		Entity:   "barber",
		EntityID: uintString(id),
	})

	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) toDTO(c *gin.Context, b models.Barber) dto.BarberDTO {
	url, err := h.images.Resolve(c.Request.Context(), b.ImageRef)
	if err != nil {
		h.log.Warn("resolve barber image", zap.Uint("barber_id", b.ID), zap.Error(err))
		url = ""
	}
	return dto.BarberDTO{
		ID:        b.ID,
		Name:      b.Name,
		Specialty: b.Specialty,
		ImageURL:  url,
	}
}
