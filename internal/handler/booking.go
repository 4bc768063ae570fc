package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movieslot/booking-api/internal/booking"
	"github.com/movieslot/booking-api/internal/model"
	"github.com/movieslot/booking-api/internal/queue"
	"github.com/movieslot/booking-api/internal/repository"
)

// BookingStore is the slice of the bookings table the booking
// endpoints need.  *repository.BookingRepo satisfies it.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	MarkPaid(ctx context.Context, id, paymentID string) error
	BookedSeatLabels(ctx context.Context, showtimeID uint64) ([]string, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error)
	GetByIDForUser(ctx context.Context, id string, userID uint64) (repository.BookingDetail, error)
}

// UserSource loads user records for the checkout order.
type UserSource interface {
	GetByID(ctx context.Context, id uint64) (repository.User, error)
}

// PublishFunc sends a paid-booking event to the broker.  Publishing
// is best-effort and runs off the request path.
type PublishFunc func(ctx context.Context, ev queue.BookingPaidEvent) error

// BookingHandler drives the checkout workflow over HTTP and serves
// the booking history.
type BookingHandler struct {
	Users     UserSource
	Showtimes ShowtimeStore
	Bookings  BookingStore
	// Delay overrides the simulated payment delay; nil keeps the
	// two-second default.
	Delay   booking.DelayFunc
	Publish PublishFunc
}

func NewBookingHandler(u UserSource, s ShowtimeStore, b BookingStore, delay booking.DelayFunc, publish PublishFunc) *BookingHandler {
	return &BookingHandler{Users: u, Showtimes: s, Bookings: b, Delay: delay, Publish: publish}
}

// checkoutStore adapts the repositories to the checkout's write
// surface.
type checkoutStore struct {
	bookings  BookingStore
	showtimes ShowtimeStore
}

func (s checkoutStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	return s.bookings.Create(ctx, b)
}
func (s checkoutStore) MarkBookingPaid(ctx context.Context, bookingID, paymentID string) error {
	return s.bookings.MarkPaid(ctx, bookingID, paymentID)
}
func (s checkoutStore) SetAvailableSeats(ctx context.Context, showtimeID uint64, remaining uint32) error {
	return s.showtimes.SetAvailableSeats(ctx, showtimeID, remaining)
}

// apiNotifier collects the checkout's user-facing messages so the
// handler can put them in the HTTP response.
type apiNotifier struct {
	success  string
	errMsg   string
	redirect bool
}

func (n *apiNotifier) Success(msg string) { n.success = msg }
func (n *apiNotifier) Error(msg string)   { n.errMsg = msg }
func (n *apiNotifier) RedirectToAuth()    { n.redirect = true }

type createBookingReq struct {
	Seats []string `json:"seats"`
	// RequiredSeats pins the expected party size; zero means "as
	// many as were sent".
	RequiredSeats int `json:"required_seats"`
}

// CreateBooking books the requested seats on a showtime for the
// authenticated user: it validates the selection against the grid
// and the currently booked set, then runs the commit workflow
// (pending booking, simulated payment, mark paid, decrement
// available seats).  On success a paid-booking event is published
// for the confirmation consumer.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showtimeID, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown user"})
	}

	st, err := h.Showtimes.GetByID(ctx, showtimeID)
	if err == repository.ErrShowtimeNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !st.IsAvailable {
		return c.JSON(http.StatusConflict, echo.Map{"error": "showtime not open for booking"})
	}

	grid := gridFor(st)
	seen := make(map[string]bool, len(req.Seats))
	for _, s := range req.Seats {
		if !grid.Contains(s) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown seat: " + s})
		}
		if seen[s] {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "duplicate seat: " + s})
		}
		seen[s] = true
	}

	booked, err := h.Bookings.BookedSeatLabels(ctx, showtimeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	for _, b := range booked {
		if seen[b] {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat already booked: " + b})
		}
	}

	order := booking.Order{
		User:           &model.User{ID: u.ID, Email: u.Email, Role: u.Role},
		MovieID:        st.MovieID,
		TheaterID:      st.TheaterID,
		ShowtimeID:     st.ID,
		Seats:          req.Seats,
		RequiredSeats:  req.RequiredSeats,
		PriceStandard:  st.PriceStandard,
		PricePremium:   st.PricePremium,
		AvailableSeats: st.AvailableSeats,
	}
	notifier := &apiNotifier{}
	opts := []booking.Option{}
	if h.Delay != nil {
		opts = append(opts, booking.WithDelay(h.Delay))
	}
	co := booking.NewCheckout(checkoutStore{h.Bookings, h.Showtimes}, notifier, grid, order, opts...)

	b, err := co.Confirm(ctx)
	if err != nil {
		switch err {
		case booking.ErrSeatCountMismatch:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": notifier.errMsg})
		case booking.ErrAuthRequired:
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": notifier.errMsg})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": notifier.errMsg})
		}
	}

	h.publishPaid(ctx, b, u.Email)

	return c.JSON(http.StatusCreated, echo.Map{
		"booking":   b,
		"reference": b.Reference(),
		"message":   notifier.success,
	})
}

// publishPaid loads the joined booking detail and hands the event to
// the broker in the background.  Failures only log; the booking is
// already committed.
func (h *BookingHandler) publishPaid(ctx context.Context, b *model.Booking, email string) {
	if h.Publish == nil {
		return
	}
	d, err := h.Bookings.GetByIDForUser(ctx, b.ID, b.UserID)
	if err != nil {
		log.Printf("booking %s: load detail for event failed: %v", b.ID, err)
		return
	}
	ev := queue.BookingPaidEvent{
		BookingID:   b.ID,
		BookingRef:  b.Reference(),
		UserID:      b.UserID,
		UserEmail:   email,
		MovieTitle:  d.MovieTitle,
		TheaterName: d.TheaterName,
		ShowDate:    d.ShowDate,
		ShowTime:    d.ShowTime,
		Seats:       b.Seats,
		TotalAmount: b.TotalAmount,
		PaymentID:   deref(b.PaymentID),
		PaidAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListMyBookings returns the caller's bookings, newest first, each
// joined with movie, theater and showtime summaries.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// GetBooking returns one of the caller's bookings by id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Bookings.GetByIDForUser(ctx, id, uid)
	switch err {
	case nil:
	case repository.ErrBookingNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": d, "reference": d.Reference()})
}
