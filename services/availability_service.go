// services/availability_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"reservas-backend/models"
	"reservas-backend/utils"
)

// AvailabilityService answers read-only questions about the reservation
// calendar: which rooms are free for a stay, and how a room's month looks.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// SearchParams is a stay request: [entrada, salida) and the party size.
type SearchParams struct {
	Entrada string `json:"entrada"`
	Salida  string `json:"salida"`
	Adultos int    `json:"adultos"`
	Ninos   int    `json:"ninos"`
}

// parseStayRange validates and parses an [entrada, salida) pair.
func parseStayRange(entrada, salida string) (time.Time, time.Time, error) {
	if entrada == "" || salida == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: las fechas de entrada y salida son requeridas", ErrValidation)
	}
	in, err := utils.ParseDate(entrada)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha de entrada no válida", ErrValidation)
	}
	out, err := utils.ParseDate(salida)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha de salida no válida", ErrValidation)
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: la fecha de salida debe ser posterior a la de entrada", ErrValidation)
	}
	return in, out, nil
}

// Search returns the rooms that can host the party for the whole stay:
// manually available, big enough, and with no confirmed night allocated in
// [entrada, salida). Ordered by price ascending.
func (s *AvailabilityService) Search(p SearchParams) ([]models.Room, error) {
	entrada, salida, err := parseStayRange(p.Entrada, p.Salida)
	if err != nil {
		return nil, err
	}
	plazas := p.Adultos + p.Ninos
	if p.Adultos <= 0 || p.Ninos < 0 {
		return nil, fmt.Errorf("%w: el número de huéspedes no es válido", ErrValidation)
	}

	occupied := s.DB.Table("fechas_reservadas fr").
		Select("fr.habitacion_id").
		Joins("JOIN reservas r ON r.id = fr.reserva_id").
		Where("r.estado = ?", models.ReservationConfirmed).
		Where("fr.fecha >= ? AND fr.fecha < ?", entrada, salida)

	var rooms []models.Room
	if err := s.DB.
		Where("estado = ?", models.RoomAvailable).
		Where("capacidad >= ?", plazas).
		Where("id NOT IN (?)", occupied).
		Order("precio ASC").
		Find(&rooms).Error; err != nil {
		return nil, storageErr("buscar habitaciones disponibles", err)
	}
	return rooms, nil
}

// CalendarDay is one day of a room's month view.
type CalendarDay struct {
	Fecha     string `json:"fecha"`
	Dia       int    `json:"dia"`
	DiaSemana int    `json:"dia_semana"`
	Estado    string `json:"estado"` // disponible | reservada
}

// MonthCalendar is the per-day availability of one room for a month plus the
// confirmed reservations whose interval intersects it.
type MonthCalendar struct {
	HabitacionID  uint                 `json:"habitacion_id"`
	Mes           int                  `json:"mes"`
	Anio          int                  `json:"anio"`
	Dias          []CalendarDay        `json:"dias"`
	Reservas      []models.Reservation `json:"reservas"`
	TotalReservas int                  `json:"total_reservas"`
}

// Calendar builds the month view for a room. A zero mes/anio pair defaults to
// the current month.
func (s *AvailabilityService) Calendar(roomID uint, mes, anio int) (*MonthCalendar, error) {
	if mes == 0 && anio == 0 {
		now := time.Now().UTC()
		mes, anio = int(now.Month()), now.Year()
	}
	if mes < 1 || mes > 12 || anio < 1 {
		return nil, fmt.Errorf("%w: mes o año no válido", ErrValidation)
	}

	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: habitación no encontrada", ErrNotFound)
		}
		return nil, storageErr("cargar habitación", err)
	}

	primerDia := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
	ultimoDia := primerDia.AddDate(0, 1, -1)

	var fechas []time.Time
	if err := s.DB.Table("fechas_reservadas fr").
		Joins("JOIN reservas r ON r.id = fr.reserva_id").
		Where("fr.habitacion_id = ?", roomID).
		Where("r.estado = ?", models.ReservationConfirmed).
		Where("fr.fecha BETWEEN ? AND ?", primerDia, ultimoDia).
		Order("fr.fecha ASC").
		Pluck("fr.fecha", &fechas).Error; err != nil {
		return nil, storageErr("cargar fechas reservadas", err)
	}

	reservadas := make(map[string]bool, len(fechas))
	for _, f := range fechas {
		reservadas[f.Format(utils.DateLayout)] = true
	}

	dias := make([]CalendarDay, 0, ultimoDia.Day())
	for d := primerDia; !d.After(ultimoDia); d = d.AddDate(0, 0, 1) {
		estado := models.RoomAvailable
		key := d.Format(utils.DateLayout)
		if reservadas[key] {
			estado = "reservada"
		}
		dias = append(dias, CalendarDay{
			Fecha:     key,
			Dia:       d.Day(),
			DiaSemana: int(d.Weekday()),
			Estado:    estado,
		})
	}

	// Three-way interval overlap: entrada in range, salida in range, or the
	// stay spans the whole month.
	var reservas []models.Reservation
	if err := s.DB.
		Where("habitacion_id = ? AND estado = ?", roomID, models.ReservationConfirmed).
		Where("(fecha_entrada BETWEEN ? AND ?) OR (fecha_salida BETWEEN ? AND ?) OR (fecha_entrada <= ? AND fecha_salida >= ?)",
			primerDia, ultimoDia, primerDia, ultimoDia, primerDia, ultimoDia).
		Order("fecha_entrada ASC").
		Find(&reservas).Error; err != nil {
		return nil, storageErr("cargar reservas del mes", err)
	}

	return &MonthCalendar{
		HabitacionID:  roomID,
		Mes:           mes,
		Anio:          anio,
		Dias:          dias,
		Reservas:      reservas,
		TotalReservas: len(reservas),
	}, nil
}
