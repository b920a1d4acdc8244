package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferry-backend/internal/booking"
	"ferry-backend/internal/domain"
	"ferry-backend/internal/domain/models"
)

func newTicketService(t *testing.T) (TicketService, *booking.ReservationManager) {
	t.Helper()
	route := models.RouteDefinition{
		ID:   "R1",
		Name: "Rute Uji",
		Stops: []models.Stop{
			{ID: "a", Name: "Pelabuhan A", Seq: 0},
			{ID: "b", Name: "Pelabuhan B", Seq: 1},
			{ID: "c", Name: "Pelabuhan C", Seq: 2},
		},
	}
	fares := []models.SegmentFare{
		{Origin: 0, Destination: 1, Price: 100000},
		{Origin: 0, Destination: 2, Price: 150000},
		{Origin: 1, Destination: 2, Price: 120000},
	}
	catalogs, err := booking.NewCatalogSet([]models.RouteDefinition{route}, map[string][]models.SegmentFare{"R1": fares})
	require.NoError(t, err)

	store := booking.NewMemStore()
	require.NoError(t, store.CreateTrip(models.TripInstance{
		ID: "T1", RouteID: "R1", VesselName: "MV Uji", Capacity: 20, Status: models.TripScheduled,
		TripDate: "2026-09-10", TripTime: "08:00",
	}))

	manager := booking.NewReservationManager(booking.ManagerConfig{
		Store:    store,
		Trips:    store,
		Catalogs: catalogs,
		HoldTTL:  10 * time.Minute,
	})
	service := TicketService{Manager: manager, Trips: store, Catalogs: catalogs}
	return service, manager
}

func TestGenerateETicketConfirmed(t *testing.T) {
	service, manager := newTicketService(t)

	held, err := manager.Hold(booking.HoldRequest{
		TripID: "T1", Origin: 0, Destination: 2, SeatCount: 2,
		PassengerName: "Budi Santoso", PassengerPhone: "08123456789",
	})
	require.NoError(t, err)
	_, err = manager.Confirm(held.ID)
	require.NoError(t, err)

	data, filename, err := service.GenerateETicket(held.ID)
	require.NoError(t, err)
	assert.Equal(t, "eticket-"+held.ID+".pdf", filename)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateETicketRejectsHeld(t *testing.T) {
	service, manager := newTicketService(t)

	held, err := manager.Hold(booking.HoldRequest{TripID: "T1", Origin: 0, Destination: 1, SeatCount: 1})
	require.NoError(t, err)

	_, _, err = service.GenerateETicket(held.ID)
	assert.True(t, domain.IsValidation(err))
}

func TestGenerateETicketUnknownReservation(t *testing.T) {
	service, _ := newTicketService(t)

	_, _, err := service.GenerateETicket("tidak-ada")
	assert.True(t, domain.IsNotFound(err))
}
