package model

import "time"

// Showtime represents a scheduled screening of a movie at a theater
// with its own pricing and seat inventory.  ShowDate and ShowTime
// are kept as strings in the wire formats used by the database
// ("2006-01-02" and "15:04:05") because they are calendar values,
// not instants.
//
// AvailableSeats is the only field customers ever write: the commit
// workflow decrements it after a successful payment.  The decrement
// is computed client-side from the value read at seat-map load time.
//
// Fields:
//  ID             – primary key identifier.
//  MovieID        – movie being screened.
//  TheaterID      – venue of the screening.
//  ShowDate       – calendar date of the screening.
//  ShowTime       – time of day of the screening.
//  PriceStandard  – price for a standard seat (whole currency units).
//  PricePremium   – price for a premium-row seat (nullable; falls
//                   back to PriceStandard when unset).
//  AvailableSeats – seats still open for sale.
//  TotalSeats     – capacity of the screen.
//  IsAvailable    – whether the showtime is open for booking.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type Showtime struct {
	ID             uint64    `json:"id"`
	MovieID        uint64    `json:"movie_id"`
	TheaterID      uint64    `json:"theater_id"`
	ShowDate       string    `json:"show_date"`
	ShowTime       string    `json:"show_time"`
	PriceStandard  uint32    `json:"price_standard"`
	PricePremium   *uint32   `json:"price_premium"`
	AvailableSeats uint32    `json:"available_seats"`
	TotalSeats     uint32    `json:"total_seats"`
	IsAvailable    bool      `json:"is_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
