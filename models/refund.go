package models

import (
	"time"
)

// Refund is an append-only ledger entry recorded when a paid reservation is
// cancelled. No money moves here; the rows exist for reconciliation with the
// payment gateway.
type Refund struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ReservaID        uint      `gorm:"column:reserva_id;index" json:"reserva_id"`
	MontoReembolsado float64   `gorm:"column:monto_reembolsado" json:"monto_reembolsado"`
	Motivo           string    `gorm:"column:motivo;type:varchar(255)" json:"motivo"`
	FechaReembolso   time.Time `gorm:"column:fecha_reembolso;autoCreateTime" json:"fecha_reembolso"`
}

func (Refund) TableName() string { return "reembolsos" }
