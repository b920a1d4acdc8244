package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"ferry-backend/internal/domain"
	"ferry-backend/internal/domain/models"
)

func reservationRows(res models.Reservation) *sqlmock.Rows {
	var expiry any
	if !res.HoldExpiry.IsZero() {
		expiry = res.HoldExpiry
	}
	return sqlmock.NewRows([]string{
		"id", "trip_id", "origin_idx", "destination_idx", "seat_count", "state", "hold_expiry",
		"price_per_seat", "total", "passenger_name", "passenger_phone", "created_at", "updated_at",
	}).AddRow(
		res.ID, res.TripID, res.Origin, res.Destination, res.SeatCount, string(res.State), expiry,
		res.PricePerSeat, res.Total, res.PassengerName, res.PassengerPhone, res.CreatedAt, res.UpdatedAt,
	)
}

func sampleReservation() models.Reservation {
	now := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	return models.Reservation{
		ID: "res-1", TripID: "T1", Origin: 0, Destination: 2, SeatCount: 4,
		State: models.StateHeld, HoldExpiry: now.Add(10 * time.Minute),
		PricePerSeat: 150000, Total: 600000,
		PassengerName: "Budi", PassengerPhone: "0812",
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestReservationRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	res := sampleReservation()
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(res.ID, res.TripID, res.Origin, res.Destination, res.SeatCount, "HELD",
			res.HoldExpiry, res.PricePerSeat, res.Total, res.PassengerName, res.PassengerPhone,
			res.CreatedAt, res.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := ReservationRepo{DB: db}
	if err := repo.Create(res); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationRepoGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	columns := []string{
		"id", "trip_id", "origin_idx", "destination_idx", "seat_count", "state", "hold_expiry",
		"price_per_seat", "total", "passenger_name", "passenger_phone", "created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id=").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	repo := ReservationRepo{DB: db}
	if _, err := repo.Get("missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationRepoUpdateStateCAS(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	next := sampleReservation()
	next.State = models.StateConfirmed
	next.HoldExpiry = time.Time{}

	mock.ExpectExec("UPDATE reservations SET state=").
		WithArgs("CONFIRMED", nil, next.UpdatedAt, next.ID, "HELD").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE reservations SET state=").
		WithArgs("CONFIRMED", nil, next.UpdatedAt, next.ID, "HELD").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ReservationRepo{DB: db}

	ok, err := repo.UpdateState(next, models.StateHeld)
	if err != nil || !ok {
		t.Fatalf("first CAS should win: ok=%v err=%v", ok, err)
	}

	ok, err = repo.UpdateState(next, models.StateHeld)
	if err != nil {
		t.Fatalf("second CAS errored: %v", err)
	}
	if ok {
		t.Fatalf("second CAS should lose, row already transitioned")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationRepoListExpiredHeld(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	stale := sampleReservation()
	mock.ExpectQuery("SELECT (.+) FROM reservations\\s+WHERE state='HELD' AND hold_expiry IS NOT NULL AND hold_expiry <").
		WithArgs(now).
		WillReturnRows(reservationRows(stale))

	repo := ReservationRepo{DB: db}
	out, err := repo.ListExpiredHeld(now)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "res-1" || out[0].State != models.StateHeld {
		t.Fatalf("unexpected rows: %+v", out)
	}
	if out[0].HoldExpiry.IsZero() {
		t.Fatalf("hold_expiry should round-trip")
	}
}

func TestReservationRepoListActiveByTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	confirmed := sampleReservation()
	confirmed.ID = "res-2"
	confirmed.State = models.StateConfirmed
	confirmed.HoldExpiry = time.Time{}

	rows := reservationRows(sampleReservation())
	rows.AddRow(confirmed.ID, confirmed.TripID, confirmed.Origin, confirmed.Destination,
		confirmed.SeatCount, "CONFIRMED", nil, confirmed.PricePerSeat, confirmed.Total,
		confirmed.PassengerName, confirmed.PassengerPhone, confirmed.CreatedAt, confirmed.UpdatedAt)

	mock.ExpectQuery("SELECT (.+) FROM reservations\\s+WHERE trip_id=\\? AND state IN").
		WithArgs("T1").
		WillReturnRows(rows)

	repo := ReservationRepo{DB: db}
	out, err := repo.ListActiveByTrip("T1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 rows, got %d", len(out))
	}
	if out[1].State != models.StateConfirmed || !out[1].HoldExpiry.IsZero() {
		t.Fatalf("confirmed row should carry no expiry: %+v", out[1])
	}
}
