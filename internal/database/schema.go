package database

import (
	"context"
	"database/sql"
)

// Schema statements executed at startup.  CREATE TABLE IF NOT EXISTS
// keeps boot idempotent so the service can run against a fresh
// database without an external migration step.  Date and time-of-day
// columns are fixed-width CHAR: "YYYY-MM-DD" and zero-padded "HH:MM"
// compare lexicographically in chronological order, which the overlap
// re-check at insert time relies on.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS facilities (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		code       VARCHAR(32)  NOT NULL,
		name       VARCHAR(255) NOT NULL,
		type       VARCHAR(32)  NOT NULL,
		location   VARCHAR(255) NULL,
		capacity   INT UNSIGNED NULL,
		is_active  TINYINT(1)   NOT NULL DEFAULT 1,
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_facilities_code (code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		facility_id   BIGINT UNSIGNED NOT NULL,
		facility_code VARCHAR(32)  NOT NULL,
		user_name     VARCHAR(255) NOT NULL,
		user_email    VARCHAR(255) NOT NULL,
		purpose       VARCHAR(512) NULL,
		date          CHAR(10)     NOT NULL,
		start_time    CHAR(5)      NOT NULL,
		end_time      CHAR(5)      NOT NULL,
		status        VARCHAR(16)  NOT NULL DEFAULT 'pending',
		access_code   CHAR(6)      NULL,
		checked_in_at DATETIME     NULL,
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_bookings_slot (facility_code, date, status),
		KEY idx_bookings_user (user_email),
		KEY idx_bookings_sweep (status, checked_in_at),
		CONSTRAINT fk_bookings_facility FOREIGN KEY (facility_id) REFERENCES facilities (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the tables used by the service when they do not
// exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
