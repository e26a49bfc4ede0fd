package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reservas-backend/config"
	"reservas-backend/models"
	"reservas-backend/utils"
)

// newTestDB opens an isolated in-memory SQLite database and runs the
// migrations. A single pooled connection keeps the database alive and
// serializes transactions the way the production row locks do.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

func createRoom(t *testing.T, db *gorm.DB, numero string, capacidad int, precio float64) models.Room {
	t.Helper()
	room := models.Room{
		Numero:    numero,
		Nombre:    "Habitación " + numero,
		Tipo:      "doble",
		Capacidad: capacidad,
		Precio:    precio,
		Estado:    models.RoomAvailable,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

// futureDate is today + days, formatted for the wire.
func futureDate(days int) string {
	return utils.Today().AddDate(0, 0, days).Format(utils.DateLayout)
}

func bookingInput(roomID uint, entrada, salida string, adultos, ninos int) CreateReservationInput {
	return CreateReservationInput{
		HabitacionID: roomID,
		DatosPersonales: GuestDetails{
			Nombre:   "Ana",
			Apellido: "García",
			Email:    "ana@example.com",
			Telefono: "+34600000000",
		},
		DatosBusqueda: SearchParams{
			Entrada: entrada,
			Salida:  salida,
			Adultos: adultos,
			Ninos:   ninos,
		},
		PagoID: "pay_123",
		Total:  200,
	}
}

func allocatedDates(t *testing.T, db *gorm.DB, reservaID uint) []time.Time {
	t.Helper()
	var fechas []time.Time
	require.NoError(t, db.Model(&models.ReservedDate{}).
		Where("reserva_id = ?", reservaID).
		Order("fecha ASC").
		Pluck("fecha", &fechas).Error)
	return fechas
}
