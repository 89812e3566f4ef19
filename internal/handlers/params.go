package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/R4F43R/barbapp/internal/httperr"
)

// parseID reads a positive numeric path param, answering 400 otherwise.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido: "+param+".")
		return 0, false
	}
	return uint(id), true
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
