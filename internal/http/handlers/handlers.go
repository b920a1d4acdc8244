package handlers

import (
	"ferry-backend/internal/booking"
)

// API bundles the collaborators the booking endpoints need.
type API struct {
	Manager  *booking.ReservationManager
	Trips    booking.TripStore
	Catalogs *booking.CatalogSet
}

func NewAPI(manager *booking.ReservationManager, trips booking.TripStore, catalogs *booking.CatalogSet) *API {
	return &API{Manager: manager, Trips: trips, Catalogs: catalogs}
}
