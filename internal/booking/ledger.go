package booking

import "ferry-backend/internal/domain"

// LegLedger keeps the booked-seat count per leg for one trip and enforces
// the capacity invariant. Implementations are not safe for concurrent use;
// the ReservationManager serializes access behind the trip lock.
type LegLedger interface {
	// Legs returns the number of legs (stops - 1).
	Legs() int
	// AvailableSeats returns capacity minus the maximum booked count over
	// the legs in [origin, destination).
	AvailableSeats(origin, destination int) (int, error)
	// Reserve books count seats on every leg in [origin, destination),
	// all-or-nothing. InsufficientCapacityError when the segment does not
	// fit; the ledger is left untouched.
	Reserve(origin, destination, count int) error
	// Release returns count seats on every leg in [origin, destination).
	// A counter that would go negative is a LedgerInvariantError.
	Release(origin, destination, count int) error
	// Counts returns a copy of the per-leg booked counts.
	Counts() []int
}

// SliceLedger is the plain-array ledger. O(legs) per operation, which is
// fine for route sizes in the tens of stops; TreeLedger serves larger
// routes behind the same interface.
type SliceLedger struct {
	capacity int
	booked   []int
}

// NewSliceLedger builds a ledger for a route with the given leg count.
func NewSliceLedger(legs, capacity int) *SliceLedger {
	return &SliceLedger{capacity: capacity, booked: make([]int, legs)}
}

func (l *SliceLedger) Legs() int { return len(l.booked) }

func (l *SliceLedger) checkRange(origin, destination int) error {
	if origin < 0 || destination <= origin || destination > len(l.booked) {
		return domain.InvalidRangeError{Origin: origin, Destination: destination, Stops: len(l.booked) + 1}
	}
	return nil
}

func (l *SliceLedger) AvailableSeats(origin, destination int) (int, error) {
	if err := l.checkRange(origin, destination); err != nil {
		return 0, err
	}
	peak := 0
	for leg := origin; leg < destination; leg++ {
		if l.booked[leg] > peak {
			peak = l.booked[leg]
		}
	}
	return l.capacity - peak, nil
}

func (l *SliceLedger) Reserve(origin, destination, count int) error {
	if count <= 0 {
		return domain.InvalidSeatCountError{Count: count}
	}
	available, err := l.AvailableSeats(origin, destination)
	if err != nil {
		return err
	}
	if available < count {
		return domain.InsufficientCapacityError{Requested: count, Available: available}
	}
	for leg := origin; leg < destination; leg++ {
		l.booked[leg] += count
	}
	return nil
}

func (l *SliceLedger) Release(origin, destination, count int) error {
	if count <= 0 {
		return domain.InvalidSeatCountError{Count: count}
	}
	if err := l.checkRange(origin, destination); err != nil {
		return err
	}
	for leg := origin; leg < destination; leg++ {
		if l.booked[leg] < count {
			return domain.LedgerInvariantError{Leg: leg, Msg: "release below zero"}
		}
	}
	for leg := origin; leg < destination; leg++ {
		l.booked[leg] -= count
	}
	return nil
}

func (l *SliceLedger) Counts() []int {
	out := make([]int, len(l.booked))
	copy(out, l.booked)
	return out
}
