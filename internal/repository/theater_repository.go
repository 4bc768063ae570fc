package repository

import (
	"context"
	"database/sql"

	"github.com/movieslot/booking-api/internal/model"
)

// TheaterRepo provides read access to the theaters table.
type TheaterRepo struct {
	db *sql.DB
}

// NewTheaterRepo returns a TheaterRepo bound to the given database.
func NewTheaterRepo(db *sql.DB) *TheaterRepo { return &TheaterRepo{db: db} }

const theaterColumns = `id, name, address, city, facilities, created_at, updated_at`

// ListAll returns every theater ordered by name.
func (r *TheaterRepo) ListAll(ctx context.Context) ([]model.Theater, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+theaterColumns+` FROM theaters ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Theater
	for rows.Next() {
		t, err := scanTheater(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByID returns a single theater or ErrTheaterNotFound.
func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (model.Theater, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+theaterColumns+` FROM theaters WHERE id = ?`, id)
	t, err := scanTheater(row)
	if err == sql.ErrNoRows {
		return model.Theater{}, ErrTheaterNotFound
	}
	return t, err
}

func scanTheater(s rowScanner) (model.Theater, error) {
	var (
		t          model.Theater
		facilities []byte
	)
	err := s.Scan(&t.ID, &t.Name, &t.Address, &t.City, &facilities, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Theater{}, err
	}
	if err := decodeStrings(facilities, &t.Facilities); err != nil {
		return model.Theater{}, err
	}
	return t, nil
}
