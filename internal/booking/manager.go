package booking

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ferry-backend/internal/domain"
	"ferry-backend/internal/domain/models"
	"ferry-backend/internal/utils"
)

// DefaultHoldTTL bounds how long a hold survives without confirmation when
// the caller does not pass its own TTL.
const DefaultHoldTTL = 10 * time.Minute

// ManagerConfig wires a ReservationManager.
type ManagerConfig struct {
	Store    ReservationStore
	Trips    TripStore
	Catalogs *CatalogSet
	// HoldTTL defaults to DefaultHoldTTL.
	HoldTTL time.Duration
	// Now defaults to utils.NowUTC. Tests inject a fixed clock.
	Now func() time.Time
	// NewLedger defaults to the plain slice ledger.
	NewLedger func(legs, capacity int) LegLedger
	// RequestID is carried into log lines.
	RequestID string
}

// ReservationManager drives the Hold/Confirm/Release/Expire state machine
// over the per-trip leg ledgers. Ledger and reservation-state mutation for a
// trip happen as one unit behind that trip's lock; trips never share a lock.
type ReservationManager struct {
	store     ReservationStore
	trips     TripStore
	catalogs  *CatalogSet
	holdTTL   time.Duration
	now       func() time.Time
	newLedger func(legs, capacity int) LegLedger
	requestID string

	mu      sync.Mutex
	ledgers map[string]*tripLedger
}

// tripLedger pairs one trip's ledger with its lock. The ledger is rebuilt
// lazily from active reservations the first time the trip is touched, and
// again whenever the stored capacity no longer matches the one it was built
// with. Capacity only changes while the trip has zero reservations, so the
// rebuild is cheap.
type tripLedger struct {
	mu       sync.Mutex
	ledger   LegLedger
	capacity int
}

func NewReservationManager(cfg ManagerConfig) *ReservationManager {
	m := &ReservationManager{
		store:     cfg.Store,
		trips:     cfg.Trips,
		catalogs:  cfg.Catalogs,
		holdTTL:   cfg.HoldTTL,
		now:       cfg.Now,
		newLedger: cfg.NewLedger,
		requestID: cfg.RequestID,
		ledgers:   make(map[string]*tripLedger),
	}
	if m.holdTTL <= 0 {
		m.holdTTL = DefaultHoldTTL
	}
	if m.now == nil {
		m.now = utils.NowUTC
	}
	if m.newLedger == nil {
		m.newLedger = func(legs, capacity int) LegLedger { return NewSliceLedger(legs, capacity) }
	}
	return m
}

func (m *ReservationManager) entry(tripID string) *tripLedger {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.ledgers[tripID]
	if !ok {
		e = &tripLedger{}
		m.ledgers[tripID] = e
	}
	return e
}

// withTripLedger runs fn inside the trip's critical section with a loaded
// ledger. fn must not call external collaborators.
func (m *ReservationManager) withTripLedger(tripID string, fn func(trip models.TripInstance, catalog *SegmentCatalog, ledger LegLedger) error) error {
	trip, err := m.trips.GetTrip(tripID)
	if err != nil {
		return err
	}
	catalog, err := m.catalogs.ForRoute(trip.RouteID)
	if err != nil {
		return err
	}

	e := m.entry(tripID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ledger == nil || e.capacity != trip.Capacity {
		ledger, err := m.rebuildLedger(trip, catalog)
		if err != nil {
			return err
		}
		e.ledger = ledger
		e.capacity = trip.Capacity
	}
	return fn(trip, catalog, e.ledger)
}

// rebuildLedger recomputes leg counters from reservations in HELD or
// CONFIRMED. Stored rows that no longer fit the capacity mean the data is
// corrupt, not that a passenger lost a race.
func (m *ReservationManager) rebuildLedger(trip models.TripInstance, catalog *SegmentCatalog) (LegLedger, error) {
	ledger := m.newLedger(catalog.Route().NumLegs(), trip.Capacity)
	active, err := m.store.ListActiveByTrip(trip.ID)
	if err != nil {
		return nil, domain.InternalError{Msg: "gagal memuat reservasi aktif", Err: err}
	}
	for _, res := range active {
		if err := ledger.Reserve(res.Origin, res.Destination, res.SeatCount); err != nil {
			return nil, domain.LedgerInvariantError{
				TripID: trip.ID,
				Leg:    res.Origin,
				Msg:    fmt.Sprintf("stored reservation %s does not fit capacity: %v", res.ID, err),
			}
		}
	}
	return ledger, nil
}

// HoldRequest carries the parameters of one Hold call.
type HoldRequest struct {
	TripID         string
	Origin         int
	Destination    int
	SeatCount      int
	HoldTTL        time.Duration
	PassengerName  string
	PassengerPhone string
}

// Hold reserves seats on a segment and creates a HELD reservation with
// hold_expiry = now + TTL. InsufficientCapacityError is the normal outcome
// under contention and leaves the ledger untouched.
func (m *ReservationManager) Hold(req HoldRequest) (models.Reservation, error) {
	if req.SeatCount <= 0 {
		return models.Reservation{}, domain.InvalidSeatCountError{Count: req.SeatCount}
	}
	ttl := req.HoldTTL
	if ttl <= 0 {
		ttl = m.holdTTL
	}

	var out models.Reservation
	err := m.withTripLedger(req.TripID, func(trip models.TripInstance, catalog *SegmentCatalog, ledger LegLedger) error {
		if trip.Status != models.TripScheduled {
			return domain.ConflictError{Resource: "trip", Msg: "trip tidak dapat dipesan (status " + string(trip.Status) + ")"}
		}
		fare, err := catalog.Fare(req.Origin, req.Destination)
		if err != nil {
			return err
		}

		if err := ledger.Reserve(req.Origin, req.Destination, req.SeatCount); err != nil {
			var short domain.InsufficientCapacityError
			if errors.As(err, &short) {
				short.TripID = trip.ID
				return short
			}
			return err
		}

		now := m.now()
		res := models.Reservation{
			ID:             uuid.NewString(),
			TripID:         trip.ID,
			Origin:         req.Origin,
			Destination:    req.Destination,
			SeatCount:      req.SeatCount,
			State:          models.StateHeld,
			HoldExpiry:     now.Add(ttl),
			PricePerSeat:   fare,
			Total:          fare * int64(req.SeatCount),
			PassengerName:  req.PassengerName,
			PassengerPhone: req.PassengerPhone,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := m.store.Create(res); err != nil {
			// Undo the range increment so the failed write has no effect.
			if undoErr := ledger.Release(req.Origin, req.Destination, req.SeatCount); undoErr != nil {
				utils.LogEvent(m.requestID, "booking", "hold", "undo release failed: "+undoErr.Error())
			}
			return domain.InternalError{Msg: "gagal menyimpan reservasi", Err: err}
		}
		out = res
		return nil
	})
	return out, err
}

// Confirm moves a HELD, unexpired reservation to CONFIRMED. The ledger is
// untouched, so only the reservation row itself is serialized: a
// compare-and-set on the state column decides the race against the sweep.
func (m *ReservationManager) Confirm(id string) (models.Reservation, error) {
	res, err := m.store.Get(id)
	if err != nil {
		return models.Reservation{}, err
	}
	next, err := res.Confirmed(m.now())
	if err != nil {
		return models.Reservation{}, err
	}
	if res.State == models.StateConfirmed {
		return res, nil
	}

	ok, err := m.store.UpdateState(next, models.StateHeld)
	if err != nil {
		return models.Reservation{}, domain.InternalError{Msg: "gagal mengubah status reservasi", Err: err}
	}
	if !ok {
		// Lost the race; re-read and report what actually happened.
		cur, err := m.store.Get(id)
		if err != nil {
			return models.Reservation{}, err
		}
		if cur.State == models.StateConfirmed {
			return cur, nil
		}
		return models.Reservation{}, domain.NotHeldError{ReservationID: id, State: string(cur.State)}
	}
	return next, nil
}

// Release returns a HELD reservation's seats to the ledger and marks it
// RELEASED. Already-released and already-expired reservations are a no-op
// success; CONFIRMED ones need the cancel-confirmed operation.
func (m *ReservationManager) Release(id string) (models.Reservation, error) {
	res, err := m.store.Get(id)
	if err != nil {
		return models.Reservation{}, err
	}
	if res.State == models.StateReleased || res.State == models.StateExpired {
		return res, nil
	}
	if res.State == models.StateConfirmed {
		return models.Reservation{}, domain.ConfirmedReleaseError{ReservationID: id}
	}

	var out models.Reservation
	err = m.withTripLedger(res.TripID, func(trip models.TripInstance, catalog *SegmentCatalog, ledger LegLedger) error {
		cur, err := m.store.Get(id)
		if err != nil {
			return err
		}
		next, err := cur.Released(m.now())
		if err != nil {
			return err
		}
		if cur.State != models.StateHeld {
			out = cur
			return nil
		}
		ok, err := m.store.UpdateState(next, models.StateHeld)
		if err != nil {
			return domain.InternalError{Msg: "gagal mengubah status reservasi", Err: err}
		}
		if !ok {
			// Swept meanwhile; expired is an idempotent-release success.
			out, err = m.store.Get(id)
			return err
		}
		if err := ledger.Release(cur.Origin, cur.Destination, cur.SeatCount); err != nil {
			return m.alertInvariant(trip.ID, err)
		}
		out = next
		return nil
	})
	if err != nil {
		return models.Reservation{}, err
	}
	return out, nil
}

// CancelConfirmed is the externally-owned cancellation of a CONFIRMED
// booking: it releases the ledger seats and marks the reservation RELEASED.
// Refund handling stays with the payment collaborator.
func (m *ReservationManager) CancelConfirmed(id string) (models.Reservation, error) {
	res, err := m.store.Get(id)
	if err != nil {
		return models.Reservation{}, err
	}

	var out models.Reservation
	err = m.withTripLedger(res.TripID, func(trip models.TripInstance, catalog *SegmentCatalog, ledger LegLedger) error {
		cur, err := m.store.Get(id)
		if err != nil {
			return err
		}
		switch cur.State {
		case models.StateReleased:
			out = cur
			return nil
		case models.StateConfirmed:
			next := cur
			next.State = models.StateReleased
			next.UpdatedAt = m.now()
			ok, err := m.store.UpdateState(next, models.StateConfirmed)
			if err != nil {
				return domain.InternalError{Msg: "gagal mengubah status reservasi", Err: err}
			}
			if !ok {
				out, err = m.store.Get(id)
				return err
			}
			if err := ledger.Release(cur.Origin, cur.Destination, cur.SeatCount); err != nil {
				return m.alertInvariant(trip.ID, err)
			}
			out = next
			return nil
		case models.StateHeld:
			return domain.ValidationError{Field: "reservation", Msg: "masih hold, gunakan release"}
		default:
			return domain.NotHeldError{ReservationID: id, State: string(cur.State)}
		}
	})
	if err != nil {
		return models.Reservation{}, err
	}
	return out, nil
}

// ExpireSweep reclaims seats of HELD reservations past their expiry. One bad
// record is logged and skipped so the rest still get reclaimed. Returns the
// number of reservations expired.
func (m *ReservationManager) ExpireSweep(now time.Time) (int, error) {
	expired, err := m.store.ListExpiredHeld(now)
	if err != nil {
		return 0, domain.InternalError{Msg: "gagal memuat hold kedaluwarsa", Err: err}
	}

	byTrip := map[string][]models.Reservation{}
	for _, res := range expired {
		byTrip[res.TripID] = append(byTrip[res.TripID], res)
	}

	count := 0
	for tripID, group := range byTrip {
		err := m.withTripLedger(tripID, func(trip models.TripInstance, catalog *SegmentCatalog, ledger LegLedger) error {
			for _, stale := range group {
				cur, err := m.store.Get(stale.ID)
				if err != nil {
					utils.LogEvent(m.requestID, "sweep", "expire", "skip "+stale.ID+": "+err.Error())
					continue
				}
				next, err := cur.Expired(now)
				if err != nil {
					// Confirmed or released in the meantime.
					continue
				}
				ok, err := m.store.UpdateState(next, models.StateHeld)
				if err != nil || !ok {
					if err != nil {
						utils.LogEvent(m.requestID, "sweep", "expire", "skip "+stale.ID+": "+err.Error())
					}
					continue
				}
				if err := ledger.Release(cur.Origin, cur.Destination, cur.SeatCount); err != nil {
					return m.alertInvariant(trip.ID, err)
				}
				count++
			}
			return nil
		})
		if err != nil {
			utils.LogEvent(m.requestID, "sweep", "expire", "trip "+tripID+": "+err.Error())
		}
	}
	return count, nil
}

// ListSegments enumerates bookable segments of a trip with live
// availability, inside the trip's critical section so reads match the
// latest committed write.
func (m *ReservationManager) ListSegments(tripID string, minSeats int) ([]Segment, error) {
	var out []Segment
	err := m.withTripLedger(tripID, func(trip models.TripInstance, catalog *SegmentCatalog, ledger LegLedger) error {
		segments, err := catalog.ListSegments(ledger, minSeats)
		if err != nil {
			return err
		}
		out = segments
		return nil
	})
	return out, err
}

// GetReservation reads one reservation row.
func (m *ReservationManager) GetReservation(id string) (models.Reservation, error) {
	return m.store.Get(id)
}

// LedgerCounts snapshots the per-leg booked counts of a trip.
func (m *ReservationManager) LedgerCounts(tripID string) ([]int, error) {
	var out []int
	err := m.withTripLedger(tripID, func(trip models.TripInstance, catalog *SegmentCatalog, ledger LegLedger) error {
		out = ledger.Counts()
		return nil
	})
	return out, err
}

// AvailableSeats returns the free seats on one segment of a trip.
func (m *ReservationManager) AvailableSeats(tripID string, origin, destination int) (int, error) {
	var out int
	err := m.withTripLedger(tripID, func(trip models.TripInstance, catalog *SegmentCatalog, ledger LegLedger) error {
		available, err := ledger.AvailableSeats(origin, destination)
		if err != nil {
			return err
		}
		out = available
		return nil
	})
	return out, err
}

func (m *ReservationManager) alertInvariant(tripID string, err error) error {
	var violation domain.LedgerInvariantError
	if errors.As(err, &violation) {
		violation.TripID = tripID
		utils.LogEvent(m.requestID, "booking", "invariant", "ALERT "+violation.Error())
		return violation
	}
	return err
}
