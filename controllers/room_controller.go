// controllers/room_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reservas-backend/models"
	"reservas-backend/services"
	"reservas-backend/utils"
)

type RoomPayload struct {
	Numero      string  `json:"numero" binding:"required"`
	Nombre      string  `json:"nombre" binding:"required"`
	Tipo        string  `json:"tipo"`
	Descripcion string  `json:"descripcion"`
	Capacidad   int     `json:"capacidad" binding:"required"`
	Precio      float64 `json:"precio"`
	Imagen      string  `json:"imagen"`
	Estado      string  `json:"estado"`
}

type EstadoPayload struct {
	Estado string `json:"estado" binding:"required"`
}

type RoomController struct {
	Svc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{Svc: svc}
}

func (p *RoomPayload) toModel() *models.Room {
	return &models.Room{
		Numero:      p.Numero,
		Nombre:      p.Nombre,
		Tipo:        p.Tipo,
		Descripcion: p.Descripcion,
		Capacidad:   p.Capacidad,
		Precio:      p.Precio,
		Imagen:      p.Imagen,
		Estado:      p.Estado,
	}
}

// GetRooms handles GET /api/habitaciones.
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.Svc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetRoomsWithReservations handles GET /api/habitaciones/con-reservas.
func (ctrl *RoomController) GetRoomsWithReservations(c *gin.Context) {
	rooms, err := ctrl.Svc.ListWithActiveCounts()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// CreateRoom handles POST /api/habitaciones.
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var payload RoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload",
			"Payload no válido: se esperan numero, nombre y capacidad")
		return
	}

	room := payload.toModel()
	if err := ctrl.Svc.Create(room); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// UpdateRoom handles PUT /api/habitaciones/:id.
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload RoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload",
			"Payload no válido: se esperan numero, nombre y capacidad")
		return
	}

	room, err := ctrl.Svc.Update(id, payload.toModel())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// UpdateRoomEstado handles PATCH /api/habitaciones/:id/estado.
func (ctrl *RoomController) UpdateRoomEstado(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload EstadoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "estado es requerido")
		return
	}

	room, err := ctrl.Svc.UpdateEstado(id, payload.Estado)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Estado actualizado a "+room.Estado, room)
}

// CheckInRoom handles PATCH /api/habitaciones/:id/checkin.
func (ctrl *RoomController) CheckInRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := ctrl.Svc.CheckIn(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Check-in realizado para habitación "+room.Numero, room)
}

// CheckOutRoom handles PATCH /api/habitaciones/:id/checkout.
func (ctrl *RoomController) CheckOutRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := ctrl.Svc.CheckOut(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Check-out realizado para habitación "+room.Numero, room)
}

// DeleteRoom handles DELETE /api/habitaciones/:id.
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.Svc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Habitación eliminada exitosamente", nil)
}
