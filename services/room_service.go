// services/room_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"reservas-backend/models"
	"reservas-backend/utils"
)

// RoomService is the operator-facing room catalog: CRUD plus the manual
// estado flag. Manual check-in/check-out only flips that flag; it never
// touches the reservation calendar.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// estadoOrder keeps the front-desk listing stable: available first, then
// occupied, then maintenance.
const estadoOrder = "CASE WHEN estado = 'disponible' THEN 1 WHEN estado = 'ocupada' THEN 2 ELSE 3 END, numero ASC"

func (s *RoomService) List() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order(estadoOrder).Find(&rooms).Error; err != nil {
		return nil, storageErr("listar habitaciones", err)
	}
	return rooms, nil
}

// ListWithActiveCounts returns every room together with its count of
// confirmed reservations that have not checked out yet.
func (s *RoomService) ListWithActiveCounts() ([]models.RoomWithReservations, error) {
	var rooms []models.RoomWithReservations
	if err := s.DB.Table("habitaciones h").
		Select("h.*, COUNT(CASE WHEN r.estado = ? AND r.fecha_salida >= ? THEN 1 END) AS reservas_activas",
			models.ReservationConfirmed, utils.Today()).
		Joins("LEFT JOIN reservas r ON r.habitacion_id = h.id").
		Group("h.id").
		Order("h.numero ASC").
		Scan(&rooms).Error; err != nil {
		return nil, storageErr("listar habitaciones con reservas", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: habitación no encontrada", ErrNotFound)
		}
		return nil, storageErr("cargar habitación", err)
	}
	return &room, nil
}

func validateRoom(room *models.Room) error {
	if strings.TrimSpace(room.Numero) == "" || strings.TrimSpace(room.Nombre) == "" {
		return fmt.Errorf("%w: número y nombre son requeridos", ErrValidation)
	}
	if room.Capacidad <= 0 {
		return fmt.Errorf("%w: la capacidad debe ser mayor que cero", ErrValidation)
	}
	if room.Precio < 0 {
		return fmt.Errorf("%w: el precio no puede ser negativo", ErrValidation)
	}
	if room.Estado != "" && !models.ValidRoomEstado(room.Estado) {
		return fmt.Errorf("%w: estado no válido, use: disponible, ocupada o mantenimiento", ErrValidation)
	}
	return nil
}

func (s *RoomService) Create(room *models.Room) error {
	if err := validateRoom(room); err != nil {
		return err
	}
	if room.Estado == "" {
		room.Estado = models.RoomAvailable
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Room{}).
			Where("numero = ?", room.Numero).
			Count(&count).Error; err != nil {
			return storageErr("verificar número de habitación", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: ya existe una habitación con el número %s", ErrDuplicateRoom, room.Numero)
		}
		if err := tx.Create(room).Error; err != nil {
			if isDuplicateKey(err) {
				return fmt.Errorf("%w: ya existe una habitación con el número %s", ErrDuplicateRoom, room.Numero)
			}
			return storageErr("crear habitación", err)
		}
		return nil
	})
}

func (s *RoomService) Update(id uint, in *models.Room) (*models.Room, error) {
	if err := validateRoom(in); err != nil {
		return nil, err
	}

	var room models.Room
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: habitación no encontrada", ErrNotFound)
			}
			return storageErr("cargar habitación", err)
		}

		var count int64
		if err := tx.Model(&models.Room{}).
			Where("numero = ? AND id <> ?", in.Numero, id).
			Count(&count).Error; err != nil {
			return storageErr("verificar número de habitación", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: ya existe una habitación con el número %s", ErrDuplicateRoom, in.Numero)
		}

		room.Numero = in.Numero
		room.Nombre = in.Nombre
		room.Tipo = in.Tipo
		room.Descripcion = in.Descripcion
		room.Capacidad = in.Capacidad
		room.Precio = in.Precio
		room.Imagen = in.Imagen
		if in.Estado != "" {
			room.Estado = in.Estado
		}
		if err := tx.Save(&room).Error; err != nil {
			if isDuplicateKey(err) {
				return fmt.Errorf("%w: ya existe una habitación con el número %s", ErrDuplicateRoom, in.Numero)
			}
			return storageErr("actualizar habitación", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &room, nil
}

// UpdateEstado sets the manual occupancy flag. It is deliberately orthogonal
// to the calendar: flagging a room ocupada does not cancel future bookings.
func (s *RoomService) UpdateEstado(id uint, estado string) (*models.Room, error) {
	if !models.ValidRoomEstado(estado) {
		return nil, fmt.Errorf("%w: estado no válido, use: disponible, ocupada o mantenimiento", ErrValidation)
	}
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(room).Update("estado", estado).Error; err != nil {
		return nil, storageErr("actualizar estado", err)
	}
	return room, nil
}

// CheckIn marks an available room as occupied. Explicit operator action; the
// booking flow never flips this flag.
func (s *RoomService) CheckIn(id uint) (*models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if room.Estado != models.RoomAvailable {
		return nil, fmt.Errorf("%w: no se puede hacer check-in, la habitación está en estado %s", ErrState, room.Estado)
	}
	if err := s.DB.Model(room).Update("estado", models.RoomOccupied).Error; err != nil {
		return nil, storageErr("realizar check-in", err)
	}
	return room, nil
}

// CheckOut releases an occupied room.
func (s *RoomService) CheckOut(id uint) (*models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if room.Estado != models.RoomOccupied {
		return nil, fmt.Errorf("%w: no se puede hacer check-out, la habitación está en estado %s", ErrState, room.Estado)
	}
	if err := s.DB.Model(room).Update("estado", models.RoomAvailable).Error; err != nil {
		return nil, storageErr("realizar check-out", err)
	}
	return room, nil
}

// Delete removes a room unless it still has confirmed future reservations.
func (s *RoomService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: habitación no encontrada", ErrNotFound)
			}
			return storageErr("cargar habitación", err)
		}

		var activas int64
		if err := tx.Model(&models.Reservation{}).
			Where("habitacion_id = ? AND estado = ? AND fecha_salida > ?",
				id, models.ReservationConfirmed, utils.Today()).
			Count(&activas).Error; err != nil {
			return storageErr("verificar reservas activas", err)
		}
		if activas > 0 {
			return fmt.Errorf("%w: la habitación tiene reservas confirmadas activas", ErrConflict)
		}

		if err := tx.Where("habitacion_id = ?", id).
			Delete(&models.ReservedDate{}).Error; err != nil {
			return storageErr("eliminar fechas reservadas", err)
		}
		if err := tx.Delete(&room).Error; err != nil {
			return storageErr("eliminar habitación", err)
		}
		return nil
	})
}
