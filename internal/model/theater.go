package model

import "time"

// Theater represents a venue where showtimes are scheduled.  It
// corresponds to a row in the `theaters` table.  Facilities is a
// JSON array of amenity tags such as "Parking" or "Dolby Atmos".
//
// Fields:
//  ID         – primary key identifier.
//  Name       – display name of the theater.
//  Address    – street address (nullable).
//  City       – city the theater is located in.
//  Facilities – amenity tags.
//  CreatedAt  – timestamp of creation.
//  UpdatedAt  – timestamp of last update.
type Theater struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Address    *string   `json:"address"`
	City       string    `json:"city"`
	Facilities []string  `json:"facilities"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
