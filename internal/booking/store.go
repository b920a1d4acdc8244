package booking

import (
	"time"

	"ferry-backend/internal/domain/models"
)

// ReservationStore persists reservation rows. Implementations must make
// UpdateState an atomic compare-and-set on the state column; the manager
// relies on it to serialize Confirm against the expiry sweep.
type ReservationStore interface {
	Create(res models.Reservation) error
	Get(id string) (models.Reservation, error)
	// UpdateState writes next's mutable fields only when the stored state
	// still equals from. Returns false when the row was missing or already
	// transitioned.
	UpdateState(next models.Reservation, from models.ReservationState) (bool, error)
	// ListActiveByTrip returns reservations in HELD or CONFIRMED for one
	// trip, used to rebuild the leg ledger on load.
	ListActiveByTrip(tripID string) ([]models.Reservation, error)
	// ListExpiredHeld returns HELD reservations whose hold_expiry is
	// before now, across all trips.
	ListExpiredHeld(now time.Time) ([]models.Reservation, error)
	// CountByTrip returns the number of reservations ever created for a
	// trip, any state. Guards capacity immutability.
	CountByTrip(tripID string) (int, error)
}

// TripStore persists trip instances.
type TripStore interface {
	GetTrip(id string) (models.TripInstance, error)
	ListTrips() ([]models.TripInstance, error)
	CreateTrip(trip models.TripInstance) error
	// UpdateTripCapacity fails with a conflict once any reservation
	// exists for the trip.
	UpdateTripCapacity(id string, capacity int) error
	UpdateTripStatus(id string, status models.TripStatus) error
}
