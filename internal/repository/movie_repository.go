package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/movieslot/booking-api/internal/model"
)

// MovieRepo provides read access to the movies catalog.  Movies are
// immutable from the customer's perspective, so only queries are
// exposed.  Genres and languages are stored as JSON arrays.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo returns a MovieRepo bound to the given database.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieColumns = `id, title, description, poster_url, banner_url, rating, votes_count,
       duration_minutes, release_date, genres, languages, certificate, status, is_featured,
       created_at, updated_at`

// List returns movies, newest first.  When status is non-empty the
// result is filtered to that lifecycle status.
func (r *MovieRepo) List(ctx context.Context, status string) ([]model.Movie, error) {
	q := `SELECT ` + movieColumns + ` FROM movies`
	args := []interface{}{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByID returns a single movie or ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	m, err := scanMovie(row)
	if err == sql.ErrNoRows {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// GetFeatured returns the featured now_showing movie, or
// ErrMovieNotFound when no movie is flagged.
func (r *MovieRepo) GetFeatured(ctx context.Context) (model.Movie, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE is_featured = 1 AND status = ? LIMIT 1`,
		model.MovieNowShowing)
	m, err := scanMovie(row)
	if err == sql.ErrNoRows {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(s rowScanner) (model.Movie, error) {
	var (
		m         model.Movie
		genres    []byte
		languages []byte
	)
	err := s.Scan(
		&m.ID, &m.Title, &m.Description, &m.PosterURL, &m.BannerURL, &m.Rating, &m.VotesCount,
		&m.DurationMinutes, &m.ReleaseDate, &genres, &languages, &m.Certificate, &m.Status,
		&m.IsFeatured, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return model.Movie{}, err
	}
	if err := decodeStrings(genres, &m.Genres); err != nil {
		return model.Movie{}, err
	}
	if err := decodeStrings(languages, &m.Languages); err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

// decodeStrings unmarshals a JSON array column into a string slice,
// treating NULL as empty.
func decodeStrings(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		*dst = []string{}
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// encodeStrings marshals a string slice for a JSON array column.
func encodeStrings(src []string) ([]byte, error) {
	if src == nil {
		src = []string{}
	}
	return json.Marshal(src)
}
