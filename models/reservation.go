package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reservation estado lifecycle. "pendiente" is reserved for manual/offline
// bookings and is never produced by the online flow; "completada" is an
// externally observed post-stay fact, not a guarded transition.
const (
	ReservationPending   = "pendiente"
	ReservationConfirmed = "confirmada"
	ReservationCancelled = "cancelada"
	ReservationCompleted = "completada"
)

// Payment states as reported by the payment gateway (trusted at the edge).
const (
	PaymentPending   = "pendiente"
	PaymentCompleted = "completado"
	PaymentRefunded  = "reembolsado"
)

type Reservation struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	HabitacionID uint   `gorm:"column:habitacion_id;index" json:"habitacion_id"`
	Codigo       string `gorm:"column:codigo;type:varchar(36);uniqueIndex" json:"codigo"`

	ClienteNombre       string `gorm:"column:cliente_nombre;type:varchar(100)" json:"cliente_nombre"`
	ClienteApellido     string `gorm:"column:cliente_apellido;type:varchar(100)" json:"cliente_apellido"`
	ClienteEmail        string `gorm:"column:cliente_email;type:varchar(150);index" json:"cliente_email"`
	ClienteTelefono     string `gorm:"column:cliente_telefono;type:varchar(30)" json:"cliente_telefono"`
	ClienteNacionalidad string `gorm:"column:cliente_nacionalidad;type:varchar(50)" json:"cliente_nacionalidad"`

	// FechaSalida is exclusive: the guest occupies [entrada, salida) nights.
	FechaEntrada time.Time `gorm:"column:fecha_entrada" json:"fecha_entrada"`
	FechaSalida  time.Time `gorm:"column:fecha_salida" json:"fecha_salida"`

	Adultos int     `gorm:"column:adultos;default:1" json:"adultos"`
	Ninos   int     `gorm:"column:ninos;default:0" json:"ninos"`
	Total   float64 `gorm:"column:total" json:"total"`

	PagoID     string `gorm:"column:pago_id;type:varchar(100)" json:"pago_id"`
	EstadoPago string `gorm:"column:estado_pago;type:varchar(20);default:pendiente" json:"estado_pago"`
	Estado     string `gorm:"column:estado;type:varchar(20);default:confirmada" json:"estado"`

	// Raw search payload that produced this booking, kept for audit.
	Busqueda datatypes.JSON `gorm:"column:busqueda" json:"busqueda,omitempty"`

	FechaReserva time.Time `gorm:"column:fecha_reserva;autoCreateTime" json:"fecha_reserva"`
	UpdatedAt    time.Time `json:"-"`

	Habitacion Room           `gorm:"foreignKey:HabitacionID;references:ID" json:"habitacion,omitempty"`
	Fechas     []ReservedDate `gorm:"foreignKey:ReservaID" json:"fechas,omitempty"`
}

func (Reservation) TableName() string { return "reservas" }

// Noches returns the number of allocated nights, [entrada, salida).
func (r *Reservation) Noches() int {
	return int(r.FechaSalida.Sub(r.FechaEntrada).Hours() / 24)
}
