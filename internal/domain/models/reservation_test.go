package models

import (
	"testing"
	"time"

	"ferry-backend/internal/domain"
)

func heldReservation(expiry time.Time) Reservation {
	return Reservation{
		ID:          "res-1",
		TripID:      "T1",
		Origin:      1,
		Destination: 3,
		SeatCount:   2,
		State:       StateHeld,
		HoldExpiry:  expiry,
	}
}

func TestConfirmedClearsExpiry(t *testing.T) {
	now := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	res := heldReservation(now.Add(time.Minute))

	next, err := res.Confirmed(now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if next.State != StateConfirmed {
		t.Fatalf("state = %s, want CONFIRMED", next.State)
	}
	if !next.HoldExpiry.IsZero() {
		t.Fatalf("hold expiry should be cleared, got %v", next.HoldExpiry)
	}
	if res.State != StateHeld {
		t.Fatalf("transition must not mutate the receiver")
	}
}

func TestConfirmedPastExpiryFails(t *testing.T) {
	now := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	res := heldReservation(now.Add(-time.Second))

	if _, err := res.Confirmed(now); !domain.IsNotHeld(err) {
		t.Fatalf("expected NotHeldError, got %v", err)
	}
}

func TestConfirmedIdempotent(t *testing.T) {
	now := time.Now().UTC()
	res := heldReservation(now.Add(time.Minute))
	res.State = StateConfirmed

	next, err := res.Confirmed(now)
	if err != nil || next.State != StateConfirmed {
		t.Fatalf("repeated confirm should be a no-op success, got %v %s", err, next.State)
	}
}

func TestReleasedTransitions(t *testing.T) {
	now := time.Now().UTC()

	held := heldReservation(now.Add(time.Minute))
	next, err := held.Released(now)
	if err != nil || next.State != StateReleased {
		t.Fatalf("release of held: got %v %s", err, next.State)
	}

	for _, terminal := range []ReservationState{StateReleased, StateExpired} {
		res := heldReservation(now)
		res.State = terminal
		next, err := res.Released(now)
		if err != nil || next.State != terminal {
			t.Fatalf("release of %s should be idempotent no-op, got %v %s", terminal, err, next.State)
		}
	}

	confirmed := heldReservation(now)
	confirmed.State = StateConfirmed
	if _, err := confirmed.Released(now); !domain.IsConfirmedRelease(err) {
		t.Fatalf("release of confirmed should fail, got %v", err)
	}
}

func TestExpiredTransitions(t *testing.T) {
	now := time.Now().UTC()

	stale := heldReservation(now.Add(-time.Minute))
	next, err := stale.Expired(now)
	if err != nil || next.State != StateExpired {
		t.Fatalf("expire of stale hold: got %v %s", err, next.State)
	}

	fresh := heldReservation(now.Add(time.Minute))
	if _, err := fresh.Expired(now); !domain.IsConflict(err) {
		t.Fatalf("expire of fresh hold should fail, got %v", err)
	}

	confirmed := heldReservation(now)
	confirmed.State = StateConfirmed
	if _, err := confirmed.Expired(now); !domain.IsNotHeld(err) {
		t.Fatalf("expire of confirmed should fail, got %v", err)
	}
}

func TestCoversLeg(t *testing.T) {
	res := heldReservation(time.Now())
	want := map[int]bool{0: false, 1: true, 2: true, 3: false}
	for leg, covered := range want {
		if res.CoversLeg(leg) != covered {
			t.Fatalf("CoversLeg(%d) = %v, want %v", leg, !covered, covered)
		}
	}
}
