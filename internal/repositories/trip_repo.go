package repositories

import (
	"database/sql"

	intconfig "ferry-backend/internal/config"
	"ferry-backend/internal/domain"
	"ferry-backend/internal/domain/models"
)

// TripRepo persists trip instances in MySQL and implements
// booking.TripStore.
type TripRepo struct {
	DB *sql.DB
}

func (r TripRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `id, route_id, vessel_name, capacity, status, trip_date, trip_time`

func (r TripRepo) GetTrip(id string) (models.TripInstance, error) {
	var (
		trip   models.TripInstance
		status string
	)
	err := r.db().QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id=?`, id).Scan(
		&trip.ID, &trip.RouteID, &trip.VesselName, &trip.Capacity, &status, &trip.TripDate, &trip.TripTime,
	)
	if err == sql.ErrNoRows {
		return models.TripInstance{}, domain.NotFoundError{Resource: "trip", ID: id}
	}
	if err != nil {
		return models.TripInstance{}, err
	}
	trip.Status = models.TripStatus(status)
	return trip, nil
}

func (r TripRepo) ListTrips() ([]models.TripInstance, error) {
	rows, err := r.db().Query(`SELECT ` + tripColumns + ` FROM trips ORDER BY trip_date ASC, trip_time ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripInstance{}
	for rows.Next() {
		var (
			trip   models.TripInstance
			status string
		)
		if err := rows.Scan(&trip.ID, &trip.RouteID, &trip.VesselName, &trip.Capacity, &status, &trip.TripDate, &trip.TripTime); err != nil {
			return out, err
		}
		trip.Status = models.TripStatus(status)
		out = append(out, trip)
	}
	return out, rows.Err()
}

func (r TripRepo) CreateTrip(trip models.TripInstance) error {
	if trip.Capacity <= 0 {
		return domain.ValidationError{Field: "capacity", Msg: "harus positif"}
	}
	if !trip.Status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
	}
	_, err := r.db().Exec(`INSERT INTO trips (`+tripColumns+`) VALUES (?,?,?,?,?,?,?)`,
		trip.ID, trip.RouteID, trip.VesselName, trip.Capacity, string(trip.Status), trip.TripDate, trip.TripTime,
	)
	return err
}

// UpdateTripCapacity rejects the change once any reservation exists; the
// ledger's capacity bound must never move under live bookings.
func (r TripRepo) UpdateTripCapacity(id string, capacity int) error {
	if capacity <= 0 {
		return domain.ValidationError{Field: "capacity", Msg: "harus positif"}
	}
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM reservations WHERE trip_id=?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return domain.ConflictError{Resource: "trip", Msg: "kapasitas tidak dapat diubah setelah ada reservasi"}
	}
	result, err := r.db().Exec(`UPDATE trips SET capacity=? WHERE id=?`, capacity, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "trip", ID: id}
	}
	return nil
}

func (r TripRepo) UpdateTripStatus(id string, status models.TripStatus) error {
	if !status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
	}
	result, err := r.db().Exec(`UPDATE trips SET status=? WHERE id=?`, string(status), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "trip", ID: id}
	}
	return nil
}

// SeedTrips inserts catalog trips that are not present yet. Existing rows
// win so operator edits survive restarts.
func (r TripRepo) SeedTrips(trips []models.TripInstance) error {
	for _, trip := range trips {
		_, err := r.db().Exec(`INSERT IGNORE INTO trips (`+tripColumns+`) VALUES (?,?,?,?,?,?,?)`,
			trip.ID, trip.RouteID, trip.VesselName, trip.Capacity, string(trip.Status), trip.TripDate, trip.TripTime,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
