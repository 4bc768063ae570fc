// Package queue defines the messages exchanged over the broker and
// the background consumer that turns booking.paid events into mock
// confirmation e-mail lines in logs/booking.log.
package queue

// BookingPaidEvent is published when a booking completes the mocked
// payment step.  It carries enough information for downstream
// consumers to produce the confirmation notification without
// querying the primary database.  No real e-mail is sent anywhere;
// the consumer writes a log line standing in for one.
type BookingPaidEvent struct {
	BookingID   string   `json:"booking_id"`
	BookingRef  string   `json:"booking_ref"`
	UserID      uint64   `json:"user_id"`
	UserEmail   string   `json:"user_email"`
	MovieTitle  string   `json:"movie_title"`
	TheaterName string   `json:"theater_name"`
	ShowDate    string   `json:"show_date"`
	ShowTime    string   `json:"show_time"`
	Seats       []string `json:"seats"`
	TotalAmount uint32   `json:"total_amount"`
	PaymentID   string   `json:"payment_id"`
	PaidAt      string   `json:"paid_at"`
}
