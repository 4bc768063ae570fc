package repository

import (
	"context"
	"database/sql"

	"github.com/movieslot/booking-api/internal/model"
)

// ShowtimeRepo provides access to the showtimes table.  Showtimes
// carry the seat inventory counter that the booking commit
// decrements; everything else is read-only.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo returns a ShowtimeRepo bound to the given database.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

// show_date is formatted in SQL: parseTime=true would otherwise hand
// the DATE column back as a full timestamp.
const showtimeColumns = `s.id, s.movie_id, s.theater_id, DATE_FORMAT(s.show_date, '%Y-%m-%d'), s.show_time,
       s.price_standard, s.price_premium, s.available_seats, s.total_seats, s.is_available,
       s.created_at, s.updated_at`

// ShowtimeWithTheater pairs a showtime with its theater for picker
// responses, mirroring the one-to-many join the catalog performs.
type ShowtimeWithTheater struct {
	model.Showtime
	Theater model.Theater `json:"theater"`
}

// ListByMovie returns the available showtimes for a movie ordered
// by time of day, each joined with its theater.  When date is
// non-empty ("2006-01-02") only that calendar date is returned.
func (r *ShowtimeRepo) ListByMovie(ctx context.Context, movieID uint64, date string) ([]ShowtimeWithTheater, error) {
	q := `SELECT ` + showtimeColumns + `,
	       t.id, t.name, t.address, t.city, t.facilities, t.created_at, t.updated_at
	FROM showtimes s
	JOIN theaters t ON t.id = s.theater_id
	WHERE s.movie_id = ? AND s.is_available = 1`
	args := []interface{}{movieID}
	if date != "" {
		q += ` AND s.show_date = ?`
		args = append(args, date)
	}
	q += ` ORDER BY s.show_time`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ShowtimeWithTheater
	for rows.Next() {
		var (
			st         ShowtimeWithTheater
			facilities []byte
		)
		err := rows.Scan(
			&st.ID, &st.MovieID, &st.TheaterID, &st.ShowDate, &st.ShowTime,
			&st.PriceStandard, &st.PricePremium, &st.AvailableSeats, &st.TotalSeats,
			&st.IsAvailable, &st.CreatedAt, &st.UpdatedAt,
			&st.Theater.ID, &st.Theater.Name, &st.Theater.Address, &st.Theater.City,
			&facilities, &st.Theater.CreatedAt, &st.Theater.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := decodeStrings(facilities, &st.Theater.Facilities); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// GetByID returns a single showtime or ErrShowtimeNotFound.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (model.Showtime, error) {
	var st model.Showtime
	err := r.db.QueryRowContext(ctx,
		`SELECT `+showtimeColumns+` FROM showtimes s WHERE s.id = ?`, id).Scan(
		&st.ID, &st.MovieID, &st.TheaterID, &st.ShowDate, &st.ShowTime,
		&st.PriceStandard, &st.PricePremium, &st.AvailableSeats, &st.TotalSeats,
		&st.IsAvailable, &st.CreatedAt, &st.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Showtime{}, ErrShowtimeNotFound
	}
	return st, err
}

// SetAvailableSeats overwrites the available-seat counter with the
// caller-computed remainder.  This mirrors the source behaviour: the
// new value is derived from the count read at seat-map load time,
// not decremented atomically in the database.
func (r *ShowtimeRepo) SetAvailableSeats(ctx context.Context, id uint64, remaining uint32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE showtimes SET available_seats = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`,
		remaining, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// The row may exist with an unchanged value; verify before
		// reporting a missing showtime.
		var exists int
		if scanErr := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM showtimes WHERE id = ?`, id).Scan(&exists); scanErr == sql.ErrNoRows {
			return ErrShowtimeNotFound
		}
	}
	return nil
}
