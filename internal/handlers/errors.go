package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/R4F43R/barbapp/internal/httperr"
)

type errorInfo struct {
	status  int
	message string
}

var businessErrors = map[string]errorInfo{
	"invalid_duration":       {http.StatusBadRequest, "Duración de servicio inválida."},
	"invalid_business_hours": {http.StatusBadRequest, "Horario comercial inválido."},
	"invalid_granularity":    {http.StatusBadRequest, "Intervalo de reserva inválido."},
	"invalid_date_or_time":   {http.StatusBadRequest, "Fecha u hora inválida."},
	"invalid_draft":          {http.StatusBadRequest, "Faltan datos de la reserva."},
	"invalid_status":         {http.StatusBadRequest, "Estado desconocido."},
	"outside_business_hours": {http.StatusBadRequest, "La cita no cabe en el horario de la barbería."},

	"slot_conflict":      {http.StatusConflict, "Ese horario acaba de ser reservado. Elige otro."},
	"appointment_exists": {http.StatusConflict, "La cita ya existe."},

	"appointment_not_found": {http.StatusNotFound, "Cita no encontrada."},
	"staff_not_found":       {http.StatusNotFound, "Barbero no encontrado."},
	"service_not_found":     {http.StatusNotFound, "Servicio no encontrado."},

	"illegal_transition": {http.StatusUnprocessableEntity, "Cambio de estado no permitido."},
	"forbidden":          {http.StatusForbidden, "No tienes permiso para esta acción."},

	"booking_wrong_step":        {http.StatusConflict, "Paso de reserva incorrecto."},
	"booking_no_previous_step":  {http.StatusConflict, "No hay paso anterior."},
	"booking_finished":          {http.StatusConflict, "La reserva ya está completada."},
	"booking_stale_result":      {http.StatusConflict, "La reserva cambió mientras se procesaba."},
	"booking_slot_unavailable":  {http.StatusBadRequest, "Ese horario no está disponible."},
	"booking_session_not_found": {http.StatusNotFound, "Sesión de reserva no encontrada."},

	"booking_backend_unavailable": {http.StatusServiceUnavailable, "Servicio no disponible. Inténtalo de nuevo."},
}

// writeError maps business errors to their HTTP status; anything else is a 500.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	code := httperr.CodeOf(err)
	info, ok := businessErrors[code]
	if !ok {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	message := info.message
	if detail := strings.TrimPrefix(err.Error(), code+": "); detail != err.Error() && info.status == http.StatusBadRequest {
		message += " (" + detail + ")"
	}
	httperr.Write(c, info.status, code, message)
}
