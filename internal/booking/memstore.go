package booking

import (
	"sort"
	"sync"
	"time"

	"ferry-backend/internal/domain"
	"ferry-backend/internal/domain/models"
)

// MemStore is an in-memory ReservationStore and TripStore. It backs tests
// and DB-less runs; the MySQL repositories implement the same ports.
type MemStore struct {
	mu           sync.Mutex
	reservations map[string]models.Reservation
	trips        map[string]models.TripInstance
}

func NewMemStore() *MemStore {
	return &MemStore{
		reservations: make(map[string]models.Reservation),
		trips:        make(map[string]models.TripInstance),
	}
}

func (s *MemStore) Create(res models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.reservations[res.ID]; dup {
		return domain.ConflictError{Resource: "reservation", Msg: "id sudah ada"}
	}
	s.reservations[res.ID] = res
	return nil
}

func (s *MemStore) Get(id string) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return models.Reservation{}, domain.NotFoundError{Resource: "reservation", ID: id}
	}
	return res, nil
}

func (s *MemStore) UpdateState(next models.Reservation, from models.ReservationState) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.reservations[next.ID]
	if !ok || cur.State != from {
		return false, nil
	}
	s.reservations[next.ID] = next
	return true, nil
}

func (s *MemStore) ListActiveByTrip(tripID string) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Reservation{}
	for _, res := range s.reservations {
		if res.TripID == tripID && res.Active() {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) ListExpiredHeld(now time.Time) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Reservation{}
	for _, res := range s.reservations {
		if res.HoldExpired(now) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) CountByTrip(tripID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, res := range s.reservations {
		if res.TripID == tripID {
			n++
		}
	}
	return n, nil
}

func (s *MemStore) GetTrip(id string) (models.TripInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	trip, ok := s.trips[id]
	if !ok {
		return models.TripInstance{}, domain.NotFoundError{Resource: "trip", ID: id}
	}
	return trip, nil
}

func (s *MemStore) ListTrips() ([]models.TripInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TripInstance, 0, len(s.trips))
	for _, trip := range s.trips {
		out = append(out, trip)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) CreateTrip(trip models.TripInstance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.trips[trip.ID]; dup {
		return domain.ConflictError{Resource: "trip", Msg: "id sudah ada"}
	}
	s.trips[trip.ID] = trip
	return nil
}

func (s *MemStore) UpdateTripCapacity(id string, capacity int) error {
	if capacity <= 0 {
		return domain.ValidationError{Field: "capacity", Msg: "harus positif"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	trip, ok := s.trips[id]
	if !ok {
		return domain.NotFoundError{Resource: "trip", ID: id}
	}
	for _, res := range s.reservations {
		if res.TripID == id {
			return domain.ConflictError{Resource: "trip", Msg: "kapasitas tidak dapat diubah setelah ada reservasi"}
		}
	}
	trip.Capacity = capacity
	s.trips[id] = trip
	return nil
}

func (s *MemStore) UpdateTripStatus(id string, status models.TripStatus) error {
	if !status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	trip, ok := s.trips[id]
	if !ok {
		return domain.NotFoundError{Resource: "trip", ID: id}
	}
	trip.Status = status
	s.trips[id] = trip
	return nil
}
