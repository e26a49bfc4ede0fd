package models

import (
	"time"
)

// ReservedDate is the authoritative conflict index: one row per night a
// confirmed reservation holds on a room. Rows are deleted when the
// reservation is cancelled, so the (habitacion_id, fecha) unique index only
// ever contains live allocations and the database itself rejects a second
// booking of the same night.
type ReservedDate struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	HabitacionID uint      `gorm:"column:habitacion_id;uniqueIndex:idx_habitacion_fecha" json:"habitacion_id"`
	ReservaID    uint      `gorm:"column:reserva_id;index" json:"reserva_id"`
	Fecha        time.Time `gorm:"column:fecha;uniqueIndex:idx_habitacion_fecha" json:"fecha"`
}

func (ReservedDate) TableName() string { return "fechas_reservadas" }
