// services/reservation_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reservas-backend/models"
	"reservas-backend/utils"
)

// ReservationService owns the booking transaction and the reservation
// lifecycle. All calendar mutation runs inside a single gorm transaction;
// the transaction boundary is the only synchronization between concurrent
// requests.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// GuestDetails are the pass-through guest identity fields; they are not
// owned here.
type GuestDetails struct {
	Nombre       string `json:"nombre"`
	Apellido     string `json:"apellido"`
	Email        string `json:"email"`
	Telefono     string `json:"telefono"`
	Nacionalidad string `json:"nacionalidad"`
}

// CreateReservationInput is a booking request whose payment has already been
// validated by the gateway; pago_id and total are trusted at this boundary.
type CreateReservationInput struct {
	HabitacionID    uint         `json:"habitacion_id"`
	DatosPersonales GuestDetails `json:"datos_personales"`
	DatosBusqueda   SearchParams `json:"datos_busqueda"`
	PagoID          string       `json:"pago_id"`
	Total           float64      `json:"total"`
	EstadoPago      string       `json:"estado_pago,omitempty"`
}

// Create turns a booking request into a confirmed reservation plus one
// allocation row per night, atomically. The room row is locked FOR UPDATE so
// concurrent attempts on the same room serialize; re-checking the calendar
// inside the transaction guarantees at most one commits per contested night.
func (s *ReservationService) Create(input CreateReservationInput) (*models.Reservation, error) {
	entrada, salida, err := parseStayRange(input.DatosBusqueda.Entrada, input.DatosBusqueda.Salida)
	if err != nil {
		return nil, err
	}
	plazas := input.DatosBusqueda.Adultos + input.DatosBusqueda.Ninos
	if input.DatosBusqueda.Adultos <= 0 || input.DatosBusqueda.Ninos < 0 {
		return nil, fmt.Errorf("%w: el número de huéspedes no es válido", ErrValidation)
	}
	if strings.TrimSpace(input.DatosPersonales.Nombre) == "" ||
		strings.TrimSpace(input.DatosPersonales.Email) == "" {
		return nil, fmt.Errorf("%w: nombre y email del cliente son requeridos", ErrValidation)
	}

	estadoPago := input.EstadoPago
	if estadoPago == "" {
		estadoPago = models.PaymentCompleted
	}
	if estadoPago != models.PaymentPending && estadoPago != models.PaymentCompleted {
		return nil, fmt.Errorf("%w: estado de pago no válido", ErrValidation)
	}

	nacionalidad := input.DatosPersonales.Nacionalidad
	if nacionalidad == "" {
		nacionalidad = "No especificada"
	}

	busquedaJSON, _ := json.Marshal(input.DatosBusqueda) // best-effort snapshot

	var created models.Reservation

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		// 1. Re-verify the room under a row lock. The lock serializes
		// concurrent bookings against the same room's calendar.
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, input.HabitacionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: habitación no encontrada", ErrNotFound)
			}
			return storageErr("cargar habitación", err)
		}
		if room.Estado != models.RoomAvailable {
			return fmt.Errorf("%w: la habitación no está disponible", ErrRoomNotAvailable)
		}
		if room.Capacidad < plazas {
			return fmt.Errorf("%w: la habitación no tiene capacidad suficiente", ErrRoomNotAvailable)
		}

		// 2. Re-check the calendar inside the transaction.
		var ocupadas int64
		if err := tx.Table("fechas_reservadas fr").
			Joins("JOIN reservas r ON r.id = fr.reserva_id").
			Where("fr.habitacion_id = ?", room.ID).
			Where("r.estado = ?", models.ReservationConfirmed).
			Where("fr.fecha >= ? AND fr.fecha < ?", entrada, salida).
			Count(&ocupadas).Error; err != nil {
			return storageErr("verificar fechas reservadas", err)
		}
		if ocupadas > 0 {
			return fmt.Errorf("%w: la habitación ya está reservada en esas fechas", ErrDateConflict)
		}

		// 3. Insert the reservation, confirmed at creation.
		created = models.Reservation{
			HabitacionID:        room.ID,
			Codigo:              uuid.NewString(),
			ClienteNombre:       input.DatosPersonales.Nombre,
			ClienteApellido:     input.DatosPersonales.Apellido,
			ClienteEmail:        input.DatosPersonales.Email,
			ClienteTelefono:     input.DatosPersonales.Telefono,
			ClienteNacionalidad: nacionalidad,
			FechaEntrada:        entrada,
			FechaSalida:         salida,
			Adultos:             input.DatosBusqueda.Adultos,
			Ninos:               input.DatosBusqueda.Ninos,
			Total:               input.Total,
			PagoID:              input.PagoID,
			EstadoPago:          estadoPago,
			Estado:              models.ReservationConfirmed,
			Busqueda:            datatypes.JSON(busquedaJSON),
		}
		if err := tx.Create(&created).Error; err != nil {
			return storageErr("crear reserva", err)
		}

		// 4. One allocation row per night, inserted explicitly. The unique
		// (habitacion_id, fecha) index backstops the calendar check.
		for d := entrada; d.Before(salida); d = d.AddDate(0, 0, 1) {
			fecha := models.ReservedDate{
				HabitacionID: room.ID,
				ReservaID:    created.ID,
				Fecha:        d,
			}
			if err := tx.Create(&fecha).Error; err != nil {
				if isDuplicateKey(err) {
					return fmt.Errorf("%w: la habitación ya está reservada en esas fechas", ErrDateConflict)
				}
				return storageErr("registrar fecha reservada", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	var result models.Reservation
	if err := s.DB.Preload("Habitacion").Preload("Fechas").
		First(&result, created.ID).Error; err != nil {
		return nil, storageErr("recargar reserva", err)
	}
	return &result, nil
}

// CancelResult reports a cancellation plus the refund recorded for it, if any.
type CancelResult struct {
	Reserva   *models.Reservation `json:"reserva"`
	Reembolso *models.Refund      `json:"reembolso,omitempty"`
}

// Cancel moves a confirmed reservation to cancelada, frees its allocated
// nights and, when the stay was paid, records exactly one refund — all in one
// transaction. Cancelling on or after the check-in day is rejected.
func (s *ReservationService) Cancel(id uint, motivo string) (*CancelResult, error) {
	return s.cancel(id, motivo, false)
}

// CancelByAdmin is the back-office override: same transition without the
// cancellation-window rule.
func (s *ReservationService) CancelByAdmin(id uint, motivo string) (*CancelResult, error) {
	return s.cancel(id, motivo, true)
}

func (s *ReservationService) cancel(id uint, motivo string, force bool) (*CancelResult, error) {
	if strings.TrimSpace(motivo) == "" {
		motivo = "Cancelación voluntaria"
	}

	var reserva models.Reservation
	var reembolso *models.Refund

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reserva, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: reserva no encontrada", ErrNotFound)
			}
			return storageErr("cargar reserva", err)
		}

		switch reserva.Estado {
		case models.ReservationCancelled:
			return fmt.Errorf("%w: la reserva ya está cancelada", ErrState)
		case models.ReservationCompleted:
			return fmt.Errorf("%w: la reserva ya está completada", ErrState)
		}

		if !force {
			if utils.DaysUntil(utils.Today(), reserva.FechaEntrada) <= 0 {
				return fmt.Errorf("%w: no se puede cancelar una reserva el mismo día del check-in o después", ErrState)
			}
		}

		if err := tx.Model(&reserva).Update("estado", models.ReservationCancelled).Error; err != nil {
			return storageErr("cancelar reserva", err)
		}
		if err := tx.Where("reserva_id = ?", reserva.ID).
			Delete(&models.ReservedDate{}).Error; err != nil {
			return storageErr("liberar fechas reservadas", err)
		}

		if reserva.EstadoPago == models.PaymentCompleted {
			refund := models.Refund{
				ReservaID:        reserva.ID,
				MontoReembolsado: reserva.Total,
				Motivo:           motivo,
			}
			if err := tx.Create(&refund).Error; err != nil {
				return storageErr("registrar reembolso", err)
			}
			if err := tx.Model(&reserva).Update("estado_pago", models.PaymentRefunded).Error; err != nil {
				return storageErr("actualizar estado de pago", err)
			}
			reembolso = &refund
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &CancelResult{Reserva: &reserva, Reembolso: reembolso}, nil
}

// GetByID loads a reservation with its room and allocated nights.
func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var reserva models.Reservation
	if err := s.DB.Preload("Habitacion").Preload("Fechas").
		First(&reserva, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reserva no encontrada", ErrNotFound)
		}
		return nil, storageErr("cargar reserva", err)
	}
	return &reserva, nil
}

// ListByRoom returns the non-cancelled reservations of a room, with their
// allocated nights, ordered by check-in date.
func (s *ReservationService) ListByRoom(roomID uint) ([]models.Reservation, error) {
	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: habitación no encontrada", ErrNotFound)
		}
		return nil, storageErr("cargar habitación", err)
	}

	var reservas []models.Reservation
	if err := s.DB.Preload("Fechas").
		Where("habitacion_id = ? AND estado <> ?", roomID, models.ReservationCancelled).
		Order("fecha_entrada ASC").
		Find(&reservas).Error; err != nil {
		return nil, storageErr("listar reservas de la habitación", err)
	}
	return reservas, nil
}
