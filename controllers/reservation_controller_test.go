package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reservas-backend/config"
	"reservas-backend/controllers"
	"reservas-backend/models"
	"reservas-backend/routes"
	"reservas-backend/services"
	"reservas-backend/utils"
)

// setupTestRouter assembles the full stack on an in-memory SQLite database.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	cfg := &config.ServerConfig{
		CORSOrigins:     []string{"*"},
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 1,
	}
	router := routes.SetupRouter(cfg,
		controllers.NewAvailabilityController(services.NewAvailabilityService(db)),
		controllers.NewReservationController(services.NewReservationService(db)),
		controllers.NewRoomController(services.NewRoomService(db)),
	)
	return router, db
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func futureDate(days int) string {
	return utils.Today().AddDate(0, 0, days).Format(utils.DateLayout)
}

func reservationPayload(roomID uint, entrada, salida string) map[string]interface{} {
	return map[string]interface{}{
		"habitacion_id": roomID,
		"datos_personales": map[string]string{
			"nombre":       "Ana",
			"apellido":     "García",
			"email":        "ana@example.com",
			"telefono":     "+34600000000",
			"nacionalidad": "Española",
		},
		"datos_busqueda": map[string]interface{}{
			"entrada": entrada,
			"salida":  salida,
			"adultos": 2,
			"ninos":   0,
		},
		"pago_id": "pay_123",
		"total":   200,
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHealth(t *testing.T) {
	router, _ := setupTestRouter(t)
	w := doJSON(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingFlow(t *testing.T) {
	router, db := setupTestRouter(t)

	room := models.Room{Numero: "101", Nombre: "Doble", Tipo: "doble", Capacidad: 2, Precio: 100, Estado: models.RoomAvailable}
	require.NoError(t, db.Create(&room).Error)

	// Search shows the room.
	w := doJSON(router, http.MethodPost, "/api/habitaciones/disponibles", map[string]interface{}{
		"entrada": futureDate(10), "salida": futureDate(12), "adultos": 2, "ninos": 0,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var search struct {
		Data []models.Room `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &search))
	require.Len(t, search.Data, 1)

	// Book it.
	w = doJSON(router, http.MethodPost, "/api/reservas/crear", reservationPayload(room.ID, futureDate(10), futureDate(12)))
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ReservaID uint `json:"reservaId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ReservaID)

	// Overlap conflicts.
	w = doJSON(router, http.MethodPost, "/api/reservas/crear", reservationPayload(room.ID, futureDate(11), futureDate(13)))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error.dateConflict", errorCode(t, w))

	// Fetch it back.
	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/reservas/%d", created.ReservaID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Cancel with refund (payment defaults to completado).
	w = doJSON(router, http.MethodPatch, fmt.Sprintf("/api/reservas/%d/cancelar", created.ReservaID),
		map[string]string{"motivo": "cambio de planes"})
	require.Equal(t, http.StatusOK, w.Code)
	var cancelled struct {
		Reembolso struct {
			Monto float64 `json:"monto"`
		} `json:"reembolso"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelled))
	assert.Equal(t, 200.0, cancelled.Reembolso.Monto)

	// Cancelled is terminal.
	w = doJSON(router, http.MethodPatch, fmt.Sprintf("/api/reservas/%d/cancelar", created.ReservaID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error.invalidState", errorCode(t, w))

	// The freed range books again.
	w = doJSON(router, http.MethodPost, "/api/reservas/crear", reservationPayload(room.ID, futureDate(11), futureDate(13)))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBookingValidationResponses(t *testing.T) {
	router, db := setupTestRouter(t)

	room := models.Room{Numero: "101", Nombre: "Doble", Capacidad: 2, Precio: 100, Estado: models.RoomAvailable}
	require.NoError(t, db.Create(&room).Error)

	// Not JSON at all.
	req, _ := http.NewRequest(http.MethodPost, "/api/reservas/crear", bytes.NewBufferString("no-json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Inverted dates.
	w = doJSON(router, http.MethodPost, "/api/reservas/crear", reservationPayload(room.ID, futureDate(12), futureDate(10)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error.validation", errorCode(t, w))

	// Unknown room.
	w = doJSON(router, http.MethodPost, "/api/reservas/crear", reservationPayload(999, futureDate(10), futureDate(12)))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unknown reservation.
	w = doJSON(router, http.MethodPatch, "/api/reservas/999/cancelar", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoomEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/habitaciones", map[string]interface{}{
		"numero": "201", "nombre": "Familiar", "tipo": "familiar", "capacidad": 4, "precio": 180,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data models.Room `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.Data.ID)
	assert.Equal(t, models.RoomAvailable, created.Data.Estado)

	// Duplicate numero.
	w = doJSON(router, http.MethodPost, "/api/habitaciones", map[string]interface{}{
		"numero": "201", "nombre": "Otra", "capacidad": 2,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error.duplicateRoomNumber", errorCode(t, w))

	// Missing required fields.
	w = doJSON(router, http.MethodPost, "/api/habitaciones", map[string]interface{}{"nombre": "Sin número"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Check-in, then check-out.
	w = doJSON(router, http.MethodPatch, fmt.Sprintf("/api/habitaciones/%d/checkin", created.Data.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodPatch, fmt.Sprintf("/api/habitaciones/%d/checkin", created.Data.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doJSON(router, http.MethodPatch, fmt.Sprintf("/api/habitaciones/%d/checkout", created.Data.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCalendarEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	room := models.Room{Numero: "101", Nombre: "Doble", Capacidad: 2, Precio: 100, Estado: models.RoomAvailable}
	require.NoError(t, db.Create(&room).Error)

	w := doJSON(router, http.MethodPost, "/api/reservas/crear", reservationPayload(room.ID, "2027-03-10", "2027-03-12"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/habitaciones/%d/disponibilidad?mes=3&anio=2027", room.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data services.MonthCalendar `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Dias, 31)
	assert.Equal(t, 1, resp.Data.TotalReservas)

	w = doJSON(router, http.MethodGet, "/api/habitaciones/999/disponibilidad?mes=3&anio=2027", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
