package repositories

import (
	"database/sql"
	"time"

	intconfig "ferry-backend/internal/config"
	"ferry-backend/internal/domain"
	"ferry-backend/internal/domain/models"
)

// ReservationRepo persists reservations in MySQL. It implements
// booking.ReservationStore; the state compare-and-set rides on the
// conditional UPDATE's affected-row count.
type ReservationRepo struct {
	DB *sql.DB
}

func (r ReservationRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const reservationColumns = `id, trip_id, origin_idx, destination_idx, seat_count, state, hold_expiry,
	price_per_seat, total, passenger_name, passenger_phone, created_at, updated_at`

func (r ReservationRepo) Create(res models.Reservation) error {
	_, err := r.db().Exec(`INSERT INTO reservations (`+reservationColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		res.ID, res.TripID, res.Origin, res.Destination, res.SeatCount, string(res.State),
		nullTime(res.HoldExpiry), res.PricePerSeat, res.Total,
		res.PassengerName, res.PassengerPhone, res.CreatedAt, res.UpdatedAt,
	)
	return err
}

func (r ReservationRepo) Get(id string) (models.Reservation, error) {
	row := r.db().QueryRow(`SELECT `+reservationColumns+` FROM reservations WHERE id=?`, id)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return models.Reservation{}, domain.NotFoundError{Resource: "reservation", ID: id}
	}
	return res, err
}

func (r ReservationRepo) UpdateState(next models.Reservation, from models.ReservationState) (bool, error) {
	result, err := r.db().Exec(
		`UPDATE reservations SET state=?, hold_expiry=?, updated_at=? WHERE id=? AND state=?`,
		string(next.State), nullTime(next.HoldExpiry), next.UpdatedAt, next.ID, string(from),
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r ReservationRepo) ListActiveByTrip(tripID string) ([]models.Reservation, error) {
	rows, err := r.db().Query(`SELECT `+reservationColumns+` FROM reservations
		WHERE trip_id=? AND state IN ('HELD','CONFIRMED') ORDER BY created_at ASC, id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r ReservationRepo) ListExpiredHeld(now time.Time) ([]models.Reservation, error) {
	rows, err := r.db().Query(`SELECT `+reservationColumns+` FROM reservations
		WHERE state='HELD' AND hold_expiry IS NOT NULL AND hold_expiry < ? ORDER BY hold_expiry ASC, id ASC`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r ReservationRepo) CountByTrip(tripID string) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM reservations WHERE trip_id=?`, tripID).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (models.Reservation, error) {
	var (
		res    models.Reservation
		state  string
		expiry sql.NullTime
	)
	err := row.Scan(
		&res.ID, &res.TripID, &res.Origin, &res.Destination, &res.SeatCount, &state, &expiry,
		&res.PricePerSeat, &res.Total, &res.PassengerName, &res.PassengerPhone,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return models.Reservation{}, err
	}
	res.State = models.ReservationState(state)
	if expiry.Valid {
		res.HoldExpiry = expiry.Time
	}
	return res, nil
}

func collectReservations(rows *sql.Rows) ([]models.Reservation, error) {
	out := []models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
