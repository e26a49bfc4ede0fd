package models

import (
	"time"
)

// Room estados set manually by the front desk. The estado flag and the
// reservation calendar are independent axes: an "ocupada" room can still
// take future-dated bookings.
const (
	RoomAvailable   = "disponible"
	RoomOccupied    = "ocupada"
	RoomMaintenance = "mantenimiento"
)

// ValidRoomEstado reports whether estado is one of the three manual states.
func ValidRoomEstado(estado string) bool {
	switch estado {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Numero      string  `gorm:"column:numero;uniqueIndex;type:varchar(20)" json:"numero"`
	Nombre      string  `gorm:"column:nombre;type:varchar(100)" json:"nombre"`
	Tipo        string  `gorm:"column:tipo;type:varchar(50)" json:"tipo"`
	Descripcion string  `gorm:"column:descripcion;type:text" json:"descripcion"`
	Capacidad   int     `gorm:"column:capacidad" json:"capacidad"`
	Precio      float64 `gorm:"column:precio" json:"precio"`
	Imagen      string  `gorm:"column:imagen;type:varchar(255)" json:"imagen,omitempty"`
	Estado      string  `gorm:"column:estado;type:varchar(20);default:disponible" json:"estado"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Room) TableName() string { return "habitaciones" }

// RoomWithReservations is the read model for the room list that carries
// the number of active confirmed reservations per room.
type RoomWithReservations struct {
	Room
	ReservasActivas int64 `json:"reservas_activas"`
}
