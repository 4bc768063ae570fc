package database

import (
	"context"
	"database/sql"
)

// schema lists the CREATE TABLE statements for every table the
// service touches.  Statements are idempotent so EnsureSchema can
// run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'CUSTOMER',
		is_active     TINYINT(1)   NOT NULL DEFAULT 1,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title            VARCHAR(255) NOT NULL,
		description      TEXT NULL,
		poster_url       VARCHAR(512) NULL,
		banner_url       VARCHAR(512) NULL,
		rating           DECIMAL(3,1) NOT NULL DEFAULT 0,
		votes_count      INT UNSIGNED NOT NULL DEFAULT 0,
		duration_minutes INT UNSIGNED NULL,
		release_date     DATE NULL,
		genres           JSON NOT NULL,
		languages        JSON NOT NULL,
		certificate      VARCHAR(8) NULL,
		status           VARCHAR(16) NOT NULL DEFAULT 'now_showing',
		is_featured      TINYINT(1) NOT NULL DEFAULT 0,
		created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS theaters (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		address    VARCHAR(512) NULL,
		city       VARCHAR(128) NOT NULL,
		facilities JSON NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS showtimes (
		id              BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		movie_id        BIGINT UNSIGNED NOT NULL,
		theater_id      BIGINT UNSIGNED NOT NULL,
		show_date       DATE NOT NULL,
		show_time       TIME NOT NULL,
		price_standard  INT UNSIGNED NOT NULL,
		price_premium   INT UNSIGNED NULL,
		available_seats INT UNSIGNED NOT NULL,
		total_seats     INT UNSIGNED NOT NULL,
		is_available    TINYINT(1) NOT NULL DEFAULT 1,
		created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_showtimes_movie_date (movie_id, show_date),
		CONSTRAINT fk_showtimes_movie FOREIGN KEY (movie_id) REFERENCES movies(id),
		CONSTRAINT fk_showtimes_theater FOREIGN KEY (theater_id) REFERENCES theaters(id)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id           CHAR(36) PRIMARY KEY,
		user_id      BIGINT UNSIGNED NOT NULL,
		movie_id     BIGINT UNSIGNED NOT NULL,
		theater_id   BIGINT UNSIGNED NOT NULL,
		showtime_id  BIGINT UNSIGNED NOT NULL,
		seats        JSON NOT NULL,
		total_amount INT UNSIGNED NOT NULL,
		status       VARCHAR(16) NOT NULL DEFAULT 'pending',
		payment_id   VARCHAR(64) NULL,
		booked_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at   DATETIME NULL,
		updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_bookings_showtime_status (showtime_id, status),
		INDEX idx_bookings_user (user_id),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users(id),
		CONSTRAINT fk_bookings_movie FOREIGN KEY (movie_id) REFERENCES movies(id),
		CONSTRAINT fk_bookings_theater FOREIGN KEY (theater_id) REFERENCES theaters(id),
		CONSTRAINT fk_bookings_showtime FOREIGN KEY (showtime_id) REFERENCES showtimes(id)
	)`,
}

// EnsureSchema creates any missing tables.  Existing tables are
// left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
