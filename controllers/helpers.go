// controllers/helpers.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"reservas-backend/services"
	"reservas-backend/utils"
)

// parseIDParam reads the numeric :id path parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "Identificador no válido")
		return 0, false
	}
	return uint(id), true
}

// detail strips the sentinel prefix from a wrapped service error, leaving
// the human-readable part.
func detail(err error, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error())
	return strings.TrimPrefix(msg, ": ")
}

// respondServiceError maps the service error taxonomy onto HTTP. Storage
// errors stay opaque: the raw cause was already logged by the service layer.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "error.validation", detail(err, services.ErrValidation))
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.notFound", detail(err, services.ErrNotFound))
	case errors.Is(err, services.ErrRoomNotAvailable):
		utils.JSONError(c, http.StatusConflict, "error.roomNotAvailable", detail(err, services.ErrRoomNotAvailable))
	case errors.Is(err, services.ErrDateConflict):
		utils.JSONError(c, http.StatusConflict, "error.dateConflict", detail(err, services.ErrDateConflict))
	case errors.Is(err, services.ErrDuplicateRoom):
		utils.JSONError(c, http.StatusConflict, "error.duplicateRoomNumber", detail(err, services.ErrDuplicateRoom))
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "error.conflict", detail(err, services.ErrConflict))
	case errors.Is(err, services.ErrState):
		utils.JSONError(c, http.StatusConflict, "error.invalidState", detail(err, services.ErrState))
	default:
		log.Printf("unhandled service error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Error interno del servidor")
	}
}
