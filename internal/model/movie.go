package model

import "time"

// MovieStatus enumerates the lifecycle states of a movie in the
// catalog.  Movies are read-only from the customer's perspective.
const (
	MovieNowShowing = "now_showing"
	MovieComingSoon = "coming_soon"
)

// Movie represents a row in the `movies` table.  Descriptive
// metadata mirrors what the catalog UI renders on movie cards and
// detail pages.  Genres and Languages are stored as JSON arrays in
// the database.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – display title.
//  Description     – synopsis (nullable).
//  PosterURL       – poster image URL (nullable).
//  BannerURL       – wide banner image URL (nullable).
//  Rating          – aggregate rating, 0–10.
//  VotesCount      – number of rating votes.
//  DurationMinutes – running time (nullable).
//  ReleaseDate     – theatrical release date (nullable).
//  Genres          – genre tags.
//  Languages       – audio languages.
//  Certificate     – age certificate such as "UA" (nullable).
//  Status          – lifecycle status (now_showing, coming_soon).
//  IsFeatured      – whether this movie is the homepage feature.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type Movie struct {
	ID              uint64     `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	PosterURL       *string    `json:"poster_url"`
	BannerURL       *string    `json:"banner_url"`
	Rating          float64    `json:"rating"`
	VotesCount      uint32     `json:"votes_count"`
	DurationMinutes *uint32    `json:"duration_minutes"`
	ReleaseDate     *time.Time `json:"release_date"`
	Genres          []string   `json:"genres"`
	Languages       []string   `json:"languages"`
	Certificate     *string    `json:"certificate"`
	Status          string     `json:"status"`
	IsFeatured      bool       `json:"is_featured"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
