// Package booking implements the checkout workflow: a linear state
// machine that takes a confirmed seat selection through a simulated
// payment to a paid booking.  The three writes it performs (create
// pending booking, mark paid, decrement available seats) are
// independent calls with no atomicity across them; a failure leaves
// the earlier writes in place and surfaces an error instead of
// rolling back.
package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/movieslot/booking-api/internal/model"
	"github.com/movieslot/booking-api/internal/seatmap"
)

// Step names the states of the checkout workflow.  The machine
// moves strictly summary → payment → success with no cycles.
type Step string

const (
	StepSummary Step = "summary"
	StepPayment Step = "payment"
	StepSuccess Step = "success"
)

// Errors returned by Confirm.  ErrAuthRequired and
// ErrSeatCountMismatch are precondition failures that leave the
// machine in summary; ErrCommitInFlight means Confirm was called
// while a commit was already underway and nothing happened.
var (
	ErrAuthRequired      = fmt.Errorf("sign in required to complete booking")
	ErrSeatCountMismatch = fmt.Errorf("selected seats do not match required count")
	ErrCommitInFlight    = fmt.Errorf("booking commit already in progress")
	ErrAlreadyCompleted  = fmt.Errorf("checkout already completed")
)

// Store is the slice of the data layer the workflow writes through.
// Implementations are expected to perform each call as a single
// independent request to the backing store.
type Store interface {
	CreateBooking(ctx context.Context, b *model.Booking) error
	MarkBookingPaid(ctx context.Context, bookingID, paymentID string) error
	SetAvailableSeats(ctx context.Context, showtimeID uint64, remaining uint32) error
}

// Notifier is the ephemeral user-visible message channel.  Success
// carries the fake "email sent" confirmation; Error reports write
// failures; RedirectToAuth signals that the caller must send the
// user to the sign-in screen.  No delivery guarantee is implied.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	RedirectToAuth()
}

// DelayFunc stands in for the payment processor.  The default
// implementation just sleeps; tests inject a zero delay.
type DelayFunc func(ctx context.Context) error

// SimulatedPayment returns a DelayFunc that blocks for d or until
// the context is cancelled.  No payment gateway is contacted.
func SimulatedPayment(d time.Duration) DelayFunc {
	return func(ctx context.Context) error {
		if d <= 0 {
			return ctx.Err()
		}
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Order captures everything the checkout needs about the purchase:
// who is buying, which showtime, the seat labels, prices and the
// available-seat count as read when the seat map was loaded.  The
// decrement in step three is computed from that snapshot, not
// re-read.
type Order struct {
	User          *model.User // nil when unauthenticated
	MovieID       uint64
	TheaterID     uint64
	ShowtimeID    uint64
	Seats         []string
	RequiredSeats int
	PriceStandard uint32
	PricePremium  *uint32
	// AvailableSeats is the showtime counter at seat-map load time.
	AvailableSeats uint32
}

// Checkout drives one booking through summary → payment → success.
// A Checkout is safe for concurrent use: Confirm holds the machine
// in payment for the duration of the commit, and Close called
// during payment is a no-op.
type Checkout struct {
	store    Store
	notifier Notifier
	grid     seatmap.Grid
	delay    DelayFunc
	now      func() time.Time
	newID    func() string

	// onComplete runs when Close is called from success.
	onComplete func()

	mu      sync.Mutex
	step    Step
	order   Order
	booking *model.Booking
}

// Option tweaks a Checkout at construction time.
type Option func(*Checkout)

// WithDelay replaces the simulated payment delay.
func WithDelay(d DelayFunc) Option { return func(co *Checkout) { co.delay = d } }

// WithClock replaces the time source used for timestamps and the
// payment reference.
func WithClock(now func() time.Time) Option { return func(co *Checkout) { co.now = now } }

// WithIDGenerator replaces the booking ID generator.
func WithIDGenerator(f func() string) Option { return func(co *Checkout) { co.newID = f } }

// WithCompletion sets the callback invoked when the checkout is
// closed from the success step.
func WithCompletion(f func()) Option { return func(co *Checkout) { co.onComplete = f } }

// NewCheckout builds a checkout in the summary step.  The default
// payment delay is two seconds, matching the simulated processor.
func NewCheckout(store Store, notifier Notifier, grid seatmap.Grid, order Order, opts ...Option) *Checkout {
	co := &Checkout{
		store:    store,
		notifier: notifier,
		grid:     grid,
		delay:    SimulatedPayment(2 * time.Second),
		now:      time.Now,
		newID:    uuid.NewString,
		step:     StepSummary,
		order:    order,
	}
	for _, opt := range opts {
		opt(co)
	}
	return co
}

// Step returns the current workflow step.
func (co *Checkout) Step() Step {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.step
}

// Booking returns the booking produced by a successful commit, or
// nil before success.
func (co *Checkout) Booking() *model.Booking {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.booking
}

// Total computes the order total: per selected seat, the premium
// rate when its row is premium and a premium price is configured,
// else the standard rate.
func (co *Checkout) Total() uint32 {
	return seatmap.Total(co.grid, co.order.Seats, co.order.PriceStandard, co.order.PricePremium)
}

// Confirm runs the commit: summary → payment, then the ordered
// effect sequence (create pending booking, simulated payment delay,
// mark paid, decrement available seats), then payment → success.
//
// Precondition failures (no user, wrong seat count) and write
// failures return the machine to summary and report through the
// notifier; writes already performed are not rolled back.  Calling
// Confirm while a commit is in flight returns ErrCommitInFlight
// without touching any state.
func (co *Checkout) Confirm(ctx context.Context) (*model.Booking, error) {
	co.mu.Lock()
	switch co.step {
	case StepPayment:
		co.mu.Unlock()
		return nil, ErrCommitInFlight
	case StepSuccess:
		co.mu.Unlock()
		return nil, ErrAlreadyCompleted
	}
	if co.order.User == nil {
		co.mu.Unlock()
		co.notifier.Error("Please sign in to complete your booking")
		co.notifier.RedirectToAuth()
		return nil, ErrAuthRequired
	}
	if co.order.RequiredSeats > 0 && len(co.order.Seats) != co.order.RequiredSeats {
		co.mu.Unlock()
		co.notifier.Error("Please select the required number of seats")
		return nil, ErrSeatCountMismatch
	}
	co.step = StepPayment
	order := co.order
	co.mu.Unlock()

	b, err := co.commit(ctx, order)

	co.mu.Lock()
	if err != nil {
		co.step = StepSummary
	} else {
		co.step = StepSuccess
		co.booking = b
	}
	co.mu.Unlock()

	if err != nil {
		co.notifier.Error(err.Error())
		return nil, err
	}
	co.notifier.Success(fmt.Sprintf(
		"Booking confirmed! Confirmation email sent to %s. Booking ID: %s",
		order.User.Email, b.Reference(),
	))
	return b, nil
}

// commit performs the three writes in order.  It runs without the
// state mutex held so that Step and Close stay responsive during
// the payment delay.
func (co *Checkout) commit(ctx context.Context, order Order) (*model.Booking, error) {
	now := co.now().UTC()
	b := &model.Booking{
		ID:          co.newID(),
		UserID:      order.User.ID,
		MovieID:     order.MovieID,
		TheaterID:   order.TheaterID,
		ShowtimeID:  order.ShowtimeID,
		Seats:       append([]string(nil), order.Seats...),
		TotalAmount: co.Total(),
		Status:      model.BookingPending,
		BookedAt:    now,
		UpdatedAt:   now,
	}
	if err := co.store.CreateBooking(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := co.delay(ctx); err != nil {
		return nil, fmt.Errorf("payment interrupted: %w", err)
	}

	paymentID := fmt.Sprintf("MOCK_PAY_%d", co.now().UTC().UnixMilli())
	if err := co.store.MarkBookingPaid(ctx, b.ID, paymentID); err != nil {
		// Booking stays pending; no retry, no rollback.
		return nil, fmt.Errorf("mark booking paid: %w", err)
	}
	b.Status = model.BookingPaid
	b.PaymentID = &paymentID

	remaining := order.AvailableSeats - uint32(len(order.Seats))
	if order.AvailableSeats < uint32(len(order.Seats)) {
		remaining = 0
	}
	if err := co.store.SetAvailableSeats(ctx, order.ShowtimeID, remaining); err != nil {
		// Booking is paid but the counter is stale.  The
		// inconsistency is reported, not repaired.
		return nil, fmt.Errorf("update available seats: %w", err)
	}
	return b, nil
}

// Close dismisses the checkout.  During payment it is a no-op and
// returns false.  From success it fires the completion callback and
// resets to summary.  From summary it just discards local state.
// The return value reports whether the close actually happened.
func (co *Checkout) Close() bool {
	co.mu.Lock()
	if co.step == StepPayment {
		co.mu.Unlock()
		return false
	}
	completed := co.step == StepSuccess
	co.step = StepSummary
	co.booking = nil
	co.mu.Unlock()

	if completed && co.onComplete != nil {
		co.onComplete()
	}
	return true
}
