package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/movieslot/booking-api/internal/model"
)

// BookingRepo provides access to the bookings table.  Seat labels
// are stored as a JSON array per booking; the set of labels blocked
// for a showtime is the union over bookings whose status is still
// active (pending, confirmed or paid).
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking row.  The caller supplies the UUID id,
// seats, total and status (pending at the start of checkout).
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	seats, err := encodeStrings(b.Seats)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO bookings
		   (id, user_id, movie_id, theater_id, showtime_id, seats, total_amount, status, payment_id, booked_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.MovieID, b.TheaterID, b.ShowtimeID, seats,
		b.TotalAmount, b.Status, b.PaymentID, b.BookedAt.UTC(), b.ExpiresAt)
	return err
}

// MarkPaid transitions a booking to paid with its payment
// reference.  It returns ErrBookingNotFound when the id matches no
// row.
func (r *BookingRepo) MarkPaid(ctx context.Context, id, paymentID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, payment_id = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`,
		model.BookingPaid, paymentID, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// BookedSeatLabels returns the union of seat labels across all
// bookings for the showtime whose status is pending, confirmed or
// paid.  This is the read-time availability check the seat map
// relies on; there is no transactional guarantee between this read
// and a later commit.
func (r *BookingRepo) BookedSeatLabels(ctx context.Context, showtimeID uint64) ([]string, error) {
	statuses := model.ActiveBookingStatuses
	q := `SELECT seats FROM bookings WHERE showtime_id = ? AND status IN (?` +
		strings.Repeat(",?", len(statuses)-1) + `)`
	args := make([]interface{}, 0, len(statuses)+1)
	args = append(args, showtimeID)
	for _, s := range statuses {
		args = append(args, s)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	labels := []string{}
	seen := make(map[string]struct{})
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var seats []string
		if err := decodeStrings(raw, &seats); err != nil {
			return nil, err
		}
		for _, s := range seats {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				labels = append(labels, s)
			}
		}
	}
	return labels, rows.Err()
}

// BookingDetail is a booking joined with summaries of its movie,
// theater and showtime, as rendered by the booking history view.
type BookingDetail struct {
	model.Booking
	MovieTitle     string  `json:"movie_title"`
	MoviePosterURL *string `json:"movie_poster_url"`
	TheaterName    string  `json:"theater_name"`
	TheaterCity    string  `json:"theater_city"`
	ShowDate       string  `json:"show_date"`
	ShowTime       string  `json:"show_time"`
}

const bookingDetailQuery = `
	SELECT b.id, b.user_id, b.movie_id, b.theater_id, b.showtime_id, b.seats,
	       b.total_amount, b.status, b.payment_id, b.booked_at, b.expires_at, b.updated_at,
	       m.title, m.poster_url, t.name, t.city, DATE_FORMAT(s.show_date, '%Y-%m-%d'), s.show_time
	FROM bookings b
	JOIN movies m ON m.id = b.movie_id
	JOIN theaters t ON t.id = b.theater_id
	JOIN showtimes s ON s.id = b.showtime_id`

// ListByUser returns the user's bookings, newest first, each joined
// with movie, theater and showtime summaries.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		bookingDetailQuery+` WHERE b.user_id = ? ORDER BY b.booked_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []BookingDetail{}
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByIDForUser returns one booking with joined details.  It
// returns ErrBookingNotFound when the row is absent and
// ErrForbidden when it belongs to a different user.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, id string, userID uint64) (BookingDetail, error) {
	row := r.db.QueryRowContext(ctx, bookingDetailQuery+` WHERE b.id = ?`, id)
	d, err := scanBookingDetail(row)
	if err == sql.ErrNoRows {
		return BookingDetail{}, ErrBookingNotFound
	}
	if err != nil {
		return BookingDetail{}, err
	}
	if d.UserID != userID {
		return BookingDetail{}, ErrForbidden
	}
	return d, nil
}

func scanBookingDetail(s rowScanner) (BookingDetail, error) {
	var (
		d     BookingDetail
		seats []byte
	)
	err := s.Scan(
		&d.ID, &d.UserID, &d.MovieID, &d.TheaterID, &d.ShowtimeID, &seats,
		&d.TotalAmount, &d.Status, &d.PaymentID, &d.BookedAt, &d.ExpiresAt, &d.UpdatedAt,
		&d.MovieTitle, &d.MoviePosterURL, &d.TheaterName, &d.TheaterCity,
		&d.ShowDate, &d.ShowTime,
	)
	if err != nil {
		return BookingDetail{}, err
	}
	if err := decodeStrings(seats, &d.Seats); err != nil {
		return BookingDetail{}, err
	}
	return d, nil
}
