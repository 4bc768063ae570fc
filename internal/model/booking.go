package model

import (
	"strings"
	"time"
)

// Booking lifecycle statuses.  A booking is created as pending at
// the start of checkout and moves to paid after the simulated
// payment step.  Confirmed, cancelled and expired exist in the
// schema but no customer-facing transition produces them.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingPaid      = "paid"
	BookingCancelled = "cancelled"
	BookingExpired   = "expired"
)

// ActiveBookingStatuses are the statuses whose seat lists block a
// seat from being selected by another user for the same showtime.
var ActiveBookingStatuses = []string{BookingPending, BookingConfirmed, BookingPaid}

// Booking represents a user's reservation of one or more seats for
// a showtime.  It corresponds to a row in the `bookings` table.
// Bookings use a UUID primary key; the first eight characters,
// upper-cased, serve as the human-facing booking reference.
//
// Fields:
//  ID          – UUID primary key.
//  UserID      – user who made the booking.
//  MovieID     – movie of the booked showtime.
//  TheaterID   – theater of the booked showtime.
//  ShowtimeID  – showtime being booked.
//  Seats       – ordered seat labels such as "A3" (JSON array).
//  TotalAmount – total price in whole currency units.
//  Status      – lifecycle status.
//  PaymentID   – mock payment reference (nullable until paid).
//  BookedAt    – when the booking was created.
//  ExpiresAt   – when a pending booking lapses (nullable; expiry is
//                not enforced by this service).
//  UpdatedAt   – timestamp of last update.
type Booking struct {
	ID          string     `json:"id"`
	UserID      uint64     `json:"user_id"`
	MovieID     uint64     `json:"movie_id"`
	TheaterID   uint64     `json:"theater_id"`
	ShowtimeID  uint64     `json:"showtime_id"`
	Seats       []string   `json:"seats"`
	TotalAmount uint32     `json:"total_amount"`
	Status      string     `json:"status"`
	PaymentID   *string    `json:"payment_id"`
	BookedAt    time.Time  `json:"booked_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Reference returns the short booking reference shown to customers
// in confirmations: the first eight characters of the UUID,
// upper-cased.
func (b Booking) Reference() string {
	id := b.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
