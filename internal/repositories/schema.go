package repositories

import "database/sql"

// EnsureSchema creates the booking tables when absent. Kept as inline DDL so
// a fresh database works without a separate migration step.
func EnsureSchema(db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS trips (
	id VARCHAR(64) PRIMARY KEY,
	route_id VARCHAR(64) NOT NULL,
	vessel_name VARCHAR(255) NOT NULL DEFAULT '',
	capacity INT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
	trip_date VARCHAR(20) NOT NULL DEFAULT '',
	trip_time VARCHAR(20) NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_route (route_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS reservations (
	id VARCHAR(64) PRIMARY KEY,
	trip_id VARCHAR(64) NOT NULL,
	origin_idx INT NOT NULL,
	destination_idx INT NOT NULL,
	seat_count INT NOT NULL,
	state VARCHAR(16) NOT NULL,
	hold_expiry DATETIME NULL,
	price_per_seat BIGINT NOT NULL DEFAULT 0,
	total BIGINT NOT NULL DEFAULT 0,
	passenger_name VARCHAR(255) NOT NULL DEFAULT '',
	passenger_phone VARCHAR(100) NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	KEY idx_trip_state (trip_id, state),
	KEY idx_state_expiry (state, hold_expiry)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
