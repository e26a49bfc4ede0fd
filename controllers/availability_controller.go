// controllers/availability_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reservas-backend/services"
	"reservas-backend/utils"
)

type AvailabilityController struct {
	Svc *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Svc: svc}
}

// SearchAvailable handles POST /api/habitaciones/disponibles.
func (ctrl *AvailabilityController) SearchAvailable(c *gin.Context) {
	var p services.SearchParams
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload",
			"Payload no válido: se esperan entrada, salida, adultos y ninos")
		return
	}

	rooms, err := ctrl.Svc.Search(p)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetCalendar handles GET /api/habitaciones/:id/disponibilidad?mes=&anio=.
func (ctrl *AvailabilityController) GetCalendar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	mes, _ := strconv.Atoi(c.DefaultQuery("mes", "0"))
	anio, _ := strconv.Atoi(c.DefaultQuery("anio", "0"))

	calendar, err := ctrl.Svc.Calendar(id, mes, anio)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, calendar)
}
