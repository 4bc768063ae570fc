package database

import (
	"context"
	"database/sql"
	"log"
)

// Seed inserts a small browsable catalog when the movies table is
// empty so a fresh deployment has something to show.  It never
// touches user or booking data.
func Seed(ctx context.Context, db *sql.DB) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		log.Println("seed: count movies failed:", err)
		return
	}
	if count > 0 {
		return
	}

	movies := []struct {
		title, description, genres, languages, certificate, status string
		rating                                                     float64
		votes, duration                                            uint32
		featured                                                   bool
	}{
		{"Interstellar Odyssey", "A crew crosses a wormhole in search of a new home for humanity.",
			`["Sci-Fi","Adventure","Drama"]`, `["English","Hindi"]`, "UA", "now_showing", 8.6, 125430, 169, true},
		{"The Last Monsoon", "Two families weather a season that changes everything.",
			`["Drama","Romance"]`, `["Hindi"]`, "U", "now_showing", 7.9, 48210, 142, false},
		{"Midnight Heist", "A retired safecracker is pulled back for one final job.",
			`["Thriller","Action"]`, `["English"]`, "A", "now_showing", 7.2, 31850, 128, false},
		{"Paper Lanterns", "An animated tale of a lantern maker's impossible wish.",
			`["Animation","Family"]`, `["English","Tamil"]`, "U", "coming_soon", 8.1, 9040, 104, false},
	}
	for _, m := range movies {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO movies (title, description, rating, votes_count, duration_minutes,
			   genres, languages, certificate, status, is_featured)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.title, m.description, m.rating, m.votes, m.duration,
			m.genres, m.languages, m.certificate, m.status, m.featured); err != nil {
			log.Println("seed: insert movie failed:", err)
			return
		}
	}

	theaters := []struct {
		name, address, city, facilities string
	}{
		{"Galaxy Cineplex", "12 MG Road", "Bengaluru", `["Parking","Dolby Atmos","Recliners"]`},
		{"Riverside Screens", "4 Marine Drive", "Mumbai", `["Parking","IMAX"]`},
		{"City Lights Cinema", "88 Park Street", "Kolkata", `["Food Court","Wheelchair Access"]`},
	}
	for _, t := range theaters {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO theaters (name, address, city, facilities) VALUES (?, ?, ?, ?)`,
			t.name, t.address, t.city, t.facilities); err != nil {
			log.Println("seed: insert theater failed:", err)
			return
		}
	}

	// One week of showtimes for the now_showing movies across all
	// theaters.  120 seats matches the default A–J x 12 grid.
	showtimes := []struct {
		movie, theater   uint64
		time             string
		standard         uint32
		premium          sql.NullInt64
		available, total uint32
	}{
		{1, 1, "10:30:00", 200, sql.NullInt64{Int64: 350, Valid: true}, 120, 120},
		{1, 1, "18:45:00", 250, sql.NullInt64{Int64: 400, Valid: true}, 120, 120},
		{1, 2, "21:00:00", 300, sql.NullInt64{Int64: 500, Valid: true}, 120, 120},
		{2, 2, "14:15:00", 180, sql.NullInt64{}, 120, 120},
		{2, 3, "19:30:00", 220, sql.NullInt64{Int64: 320, Valid: true}, 120, 120},
		{3, 1, "22:15:00", 240, sql.NullInt64{}, 120, 120},
		{3, 3, "16:00:00", 200, sql.NullInt64{Int64: 300, Valid: true}, 120, 120},
	}
	for _, s := range showtimes {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO showtimes (movie_id, theater_id, show_date, show_time,
			   price_standard, price_premium, available_seats, total_seats, is_available)
			 VALUES (?, ?, CURDATE(), ?, ?, ?, ?, ?, 1)`,
			s.movie, s.theater, s.time, s.standard, s.premium, s.available, s.total); err != nil {
			log.Println("seed: insert showtime failed:", err)
			return
		}
	}
	log.Println("seed: inserted sample catalog")
}
