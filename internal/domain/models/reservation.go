package models

import (
	"time"

	"ferry-backend/internal/domain"
)

// ReservationState tags the reservation lifecycle. HELD is the only
// non-terminal state.
type ReservationState string

const (
	StateHeld      ReservationState = "HELD"
	StateConfirmed ReservationState = "CONFIRMED"
	StateReleased  ReservationState = "RELEASED"
	StateExpired   ReservationState = "EXPIRED"
)

// Terminal reports whether the state is final.
func (s ReservationState) Terminal() bool { return s != StateHeld }

// Reservation is a booking of seatCount seats on the segment
// [Origin, Destination) of one trip.
type Reservation struct {
	ID             string           `json:"id"`
	TripID         string           `json:"trip_id"`
	Origin         int              `json:"origin"`
	Destination    int              `json:"destination"`
	SeatCount      int              `json:"seat_count"`
	State          ReservationState `json:"state"`
	HoldExpiry     time.Time        `json:"hold_expiry"`
	PricePerSeat   int64            `json:"price_per_seat"`
	Total          int64            `json:"total"`
	PassengerName  string           `json:"passenger_name"`
	PassengerPhone string           `json:"passenger_phone"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// CoversLeg reports whether the reservation's segment crosses leg i.
func (r Reservation) CoversLeg(i int) bool {
	return i >= r.Origin && i < r.Destination
}

// Active reports whether the reservation counts against the ledger.
func (r Reservation) Active() bool {
	return r.State == StateHeld || r.State == StateConfirmed
}

// HoldExpired reports whether a HELD reservation has outlived its TTL.
func (r Reservation) HoldExpired(now time.Time) bool {
	return r.State == StateHeld && r.HoldExpiry.Before(now)
}

// Confirmed returns the reservation transitioned to CONFIRMED. Pure; the
// caller persists the result. Repeated confirmation is a no-op success.
func (r Reservation) Confirmed(now time.Time) (Reservation, error) {
	switch r.State {
	case StateConfirmed:
		return r, nil
	case StateHeld:
		if r.HoldExpiry.Before(now) {
			return r, domain.NotHeldError{ReservationID: r.ID, State: string(StateExpired)}
		}
		r.State = StateConfirmed
		r.HoldExpiry = time.Time{}
		r.UpdatedAt = now
		return r, nil
	default:
		return r, domain.NotHeldError{ReservationID: r.ID, State: string(r.State)}
	}
}

// Released returns the reservation transitioned to RELEASED. The caller is
// responsible for returning seats to the ledger when the prior state was
// HELD. Repeated release, and release of an expired hold, are no-ops.
func (r Reservation) Released(now time.Time) (Reservation, error) {
	switch r.State {
	case StateReleased, StateExpired:
		return r, nil
	case StateConfirmed:
		return r, domain.ConfirmedReleaseError{ReservationID: r.ID}
	default:
		r.State = StateReleased
		r.UpdatedAt = now
		return r, nil
	}
}

// Expired returns the reservation transitioned to EXPIRED. Only a HELD
// reservation past its expiry qualifies.
func (r Reservation) Expired(now time.Time) (Reservation, error) {
	if r.State != StateHeld {
		return r, domain.NotHeldError{ReservationID: r.ID, State: string(r.State)}
	}
	if !r.HoldExpiry.Before(now) {
		return r, domain.ConflictError{Resource: "reservation", Msg: "hold belum kedaluwarsa"}
	}
	r.State = StateExpired
	r.UpdatedAt = now
	return r, nil
}
