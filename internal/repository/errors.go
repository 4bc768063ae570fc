// Package repository defines error types that are reused across
// multiple repositories.  These sentinel values let handlers
// distinguish failure scenarios: a missing row maps to HTTP 404, a
// forbidden access to 403.
package repository

import "errors"

// ErrMovieNotFound is returned when a movie lookup matches no row.
var ErrMovieNotFound = errors.New("movie not found")

// ErrTheaterNotFound is returned when a theater lookup matches no row.
var ErrTheaterNotFound = errors.New("theater not found")

// ErrShowtimeNotFound is returned when a showtime lookup matches no
// row, including updates whose WHERE clause matched nothing.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrBookingNotFound is returned when a booking lookup matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrForbidden is returned when the caller attempts an operation on
// a resource they do not own.  Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")
