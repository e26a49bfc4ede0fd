package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservas-backend/models"
)

func TestCreateRoomValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	err := svc.Create(&models.Room{Nombre: "Sin número", Capacidad: 2})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Create(&models.Room{Numero: "101", Nombre: "Doble", Capacidad: 0})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Create(&models.Room{Numero: "101", Nombre: "Doble", Capacidad: 2, Precio: -5})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Create(&models.Room{Numero: "101", Nombre: "Doble", Capacidad: 2, Estado: "libre"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRoomDuplicateNumero(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	first := &models.Room{Numero: "101", Nombre: "Doble", Capacidad: 2, Precio: 100}
	require.NoError(t, svc.Create(first))
	assert.Equal(t, models.RoomAvailable, first.Estado)

	err := svc.Create(&models.Room{Numero: "101", Nombre: "Otra", Capacidad: 2, Precio: 90})
	assert.ErrorIs(t, err, ErrDuplicateRoom)
}

func TestUpdateRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	room := createRoom(t, db, "101", 2, 100)
	other := createRoom(t, db, "102", 2, 100)

	updated, err := svc.Update(room.ID, &models.Room{
		Numero: "101", Nombre: "Doble Premium", Capacidad: 3, Precio: 130,
	})
	require.NoError(t, err)
	assert.Equal(t, "Doble Premium", updated.Nombre)
	assert.Equal(t, 3, updated.Capacidad)

	// Renumbering onto an existing room is rejected.
	_, err = svc.Update(other.ID, &models.Room{Numero: "101", Nombre: "Doble", Capacidad: 2})
	assert.ErrorIs(t, err, ErrDuplicateRoom)

	_, err = svc.Update(999, &models.Room{Numero: "300", Nombre: "Suite", Capacidad: 2})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEstado(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	room := createRoom(t, db, "101", 2, 100)

	updated, err := svc.UpdateEstado(room.ID, models.RoomMaintenance)
	require.NoError(t, err)
	assert.Equal(t, models.RoomMaintenance, updated.Estado)

	_, err = svc.UpdateEstado(room.ID, "libre")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateEstado(999, models.RoomAvailable)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckInCheckOut(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	room := createRoom(t, db, "101", 2, 100)

	checkedIn, err := svc.CheckIn(room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, checkedIn.Estado)

	// Already occupied: a second check-in is an invalid transition.
	_, err = svc.CheckIn(room.ID)
	assert.ErrorIs(t, err, ErrState)

	checkedOut, err := svc.CheckOut(room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, checkedOut.Estado)

	_, err = svc.CheckOut(room.ID)
	assert.ErrorIs(t, err, ErrState)
}

func TestDeleteRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	reservations := NewReservationService(db)

	room := createRoom(t, db, "101", 2, 100)
	reserva, err := reservations.Create(bookingInput(room.ID, futureDate(5), futureDate(7), 2, 0))
	require.NoError(t, err)

	// Active confirmed reservations protect the room.
	err = svc.Delete(room.ID)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = reservations.Cancel(reserva.ID, "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(room.ID))

	_, err = svc.GetByID(room.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListWithActiveCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	reservations := NewReservationService(db)

	roomA := createRoom(t, db, "101", 2, 100)
	roomB := createRoom(t, db, "102", 2, 100)

	_, err := reservations.Create(bookingInput(roomA.ID, futureDate(5), futureDate(7), 2, 0))
	require.NoError(t, err)
	cancelled, err := reservations.Create(bookingInput(roomA.ID, futureDate(10), futureDate(12), 2, 0))
	require.NoError(t, err)
	_, err = reservations.Cancel(cancelled.ID, "")
	require.NoError(t, err)

	rooms, err := svc.ListWithActiveCounts()
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	counts := map[uint]int64{}
	for _, r := range rooms {
		counts[r.ID] = r.ReservasActivas
	}
	assert.EqualValues(t, 1, counts[roomA.ID])
	assert.EqualValues(t, 0, counts[roomB.ID])
}
