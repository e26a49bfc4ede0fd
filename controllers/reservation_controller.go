// controllers/reservation_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reservas-backend/services"
	"reservas-backend/utils"
)

type CancelPayload struct {
	Motivo string `json:"motivo"`
}

type ReservationController struct {
	Svc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{Svc: svc}
}

// CreateReservation handles POST /api/reservas/crear.
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var input services.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload",
			"Payload no válido: se esperan habitacion_id, datos_personales, datos_busqueda, pago_id y total")
		return
	}
	if input.HabitacionID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "habitacion_id es requerido")
		return
	}

	reserva, err := ctrl.Svc.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"reservaId": reserva.ID,
		"reserva": gin.H{
			"id":         reserva.ID,
			"codigo":     reserva.Codigo,
			"habitacion": reserva.Habitacion.Nombre,
			"numero":     reserva.Habitacion.Numero,
			"cliente":    reserva.ClienteNombre + " " + reserva.ClienteApellido,
			"email":      reserva.ClienteEmail,
			"entrada":    reserva.FechaEntrada.Format(utils.DateLayout),
			"salida":     reserva.FechaSalida.Format(utils.DateLayout),
			"total":      reserva.Total,
			"pagoId":     reserva.PagoID,
		},
		"message": "Reserva creada exitosamente",
	})
}

// GetReservation handles GET /api/reservas/:id.
func (ctrl *ReservationController) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	reserva, err := ctrl.Svc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reserva)
}

// GetReservationsByRoom handles GET /api/reservas/habitacion/:id.
func (ctrl *ReservationController) GetReservationsByRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	reservas, err := ctrl.Svc.ListByRoom(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservas)
}

// CancelReservation handles PATCH /api/reservas/:id/cancelar.
func (ctrl *ReservationController) CancelReservation(c *gin.Context) {
	ctrl.cancel(c, false)
}

// CancelReservationAdmin handles PATCH /api/reservas/:id/cancelar-admin, the
// back-office cancellation without the date-window rule.
func (ctrl *ReservationController) CancelReservationAdmin(c *gin.Context) {
	ctrl.cancel(c, true)
}

func (ctrl *ReservationController) cancel(c *gin.Context, admin bool) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload CancelPayload
	_ = c.ShouldBindJSON(&payload) // motivo is optional

	var result *services.CancelResult
	var err error
	if admin {
		result, err = ctrl.Svc.CancelByAdmin(id, payload.Motivo)
	} else {
		result, err = ctrl.Svc.Cancel(id, payload.Motivo)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{
		"success": true,
		"message": "Reserva cancelada exitosamente",
	}
	if result.Reembolso != nil {
		resp["reembolso"] = gin.H{
			"monto":  result.Reembolso.MontoReembolsado,
			"motivo": result.Reembolso.Motivo,
		}
	}
	c.JSON(http.StatusOK, resp)
}
