package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieslot/booking-api/internal/model"
	"github.com/movieslot/booking-api/internal/seatmap"
)

// mockStore records the checkout's writes and lets individual calls
// be failed from the test.
type mockStore struct {
	createFn   func(ctx context.Context, b *model.Booking) error
	markPaidFn func(ctx context.Context, bookingID, paymentID string) error
	setAvailFn func(ctx context.Context, showtimeID uint64, remaining uint32) error

	created   []*model.Booking
	paidID    string
	paymentID string
	remaining *uint32
}

func (m *mockStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, b); err != nil {
			return err
		}
	}
	cp := *b
	m.created = append(m.created, &cp)
	return nil
}

func (m *mockStore) MarkBookingPaid(ctx context.Context, bookingID, paymentID string) error {
	if m.markPaidFn != nil {
		if err := m.markPaidFn(ctx, bookingID, paymentID); err != nil {
			return err
		}
	}
	m.paidID = bookingID
	m.paymentID = paymentID
	return nil
}

func (m *mockStore) SetAvailableSeats(ctx context.Context, showtimeID uint64, remaining uint32) error {
	if m.setAvailFn != nil {
		if err := m.setAvailFn(ctx, showtimeID, remaining); err != nil {
			return err
		}
	}
	m.remaining = &remaining
	return nil
}

// mockNotifier records every message.
type mockNotifier struct {
	successes []string
	errors    []string
	redirects int
}

func (m *mockNotifier) Success(msg string) { m.successes = append(m.successes, msg) }
func (m *mockNotifier) Error(msg string)   { m.errors = append(m.errors, msg) }
func (m *mockNotifier) RedirectToAuth()    { m.redirects++ }

func noDelay(context.Context) error { return nil }

func premiumPrice(v uint32) *uint32 { return &v }

func testOrder() Order {
	return Order{
		User:           &model.User{ID: 7, Email: "alice@example.com"},
		MovieID:        1,
		TheaterID:      2,
		ShowtimeID:     3,
		Seats:          []string{"A1", "A2", "D5"},
		RequiredSeats:  3,
		PriceStandard:  200,
		PricePremium:   premiumPrice(350),
		AvailableSeats: 100,
	}
}

func newTestCheckout(store *mockStore, n *mockNotifier, order Order, opts ...Option) *Checkout {
	base := []Option{
		WithDelay(noDelay),
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string { return "0f4b2d1c-aaaa-bbbb-cccc-000000000001" }),
	}
	return NewCheckout(store, n, seatmap.DefaultGrid(), order, append(base, opts...)...)
}

func TestConfirmUnauthenticated(t *testing.T) {
	store := &mockStore{}
	n := &mockNotifier{}
	order := testOrder()
	order.User = nil
	co := newTestCheckout(store, n, order)

	b, err := co.Confirm(context.Background())

	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, StepSummary, co.Step())
	assert.Equal(t, 1, n.redirects)
	assert.Empty(t, store.created)
	assert.Empty(t, n.successes)
}

func TestConfirmSeatCountMismatch(t *testing.T) {
	store := &mockStore{}
	n := &mockNotifier{}
	order := testOrder()
	order.RequiredSeats = 2
	co := newTestCheckout(store, n, order)

	_, err := co.Confirm(context.Background())

	assert.ErrorIs(t, err, ErrSeatCountMismatch)
	assert.Equal(t, StepSummary, co.Step())
	assert.Empty(t, store.created)
	assert.Zero(t, n.redirects)
}

func TestConfirmSuccess(t *testing.T) {
	store := &mockStore{}
	n := &mockNotifier{}
	completed := 0
	co := newTestCheckout(store, n, testOrder(), WithCompletion(func() { completed++ }))

	b, err := co.Confirm(context.Background())

	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, StepSuccess, co.Step())

	// Two premium seats plus one standard.
	assert.Equal(t, uint32(350+350+200), b.TotalAmount)
	assert.Equal(t, model.BookingPaid, b.Status)
	require.NotNil(t, b.PaymentID)
	assert.True(t, strings.HasPrefix(*b.PaymentID, "MOCK_PAY_"))
	assert.Equal(t, "0F4B2D1C", b.Reference())

	// Written as pending first, marked paid after the delay.
	require.Len(t, store.created, 1)
	assert.Equal(t, model.BookingPending, store.created[0].Status)
	assert.Equal(t, b.ID, store.paidID)
	assert.Equal(t, *b.PaymentID, store.paymentID)

	require.NotNil(t, store.remaining)
	assert.Equal(t, uint32(97), *store.remaining)

	require.Len(t, n.successes, 1)
	assert.Contains(t, n.successes[0], "alice@example.com")
	assert.Contains(t, n.successes[0], "0F4B2D1C")

	// Closing from success fires the completion callback and resets.
	assert.True(t, co.Close())
	assert.Equal(t, 1, completed)
	assert.Equal(t, StepSummary, co.Step())
	assert.Nil(t, co.Booking())
}

func TestConfirmRemainingClampedAtZero(t *testing.T) {
	store := &mockStore{}
	n := &mockNotifier{}
	order := testOrder()
	order.AvailableSeats = 2
	co := newTestCheckout(store, n, order)

	_, err := co.Confirm(context.Background())

	require.NoError(t, err)
	require.NotNil(t, store.remaining)
	assert.Equal(t, uint32(0), *store.remaining)
}

func TestConfirmCreateFails(t *testing.T) {
	boom := errors.New("insert failed")
	store := &mockStore{createFn: func(context.Context, *model.Booking) error { return boom }}
	n := &mockNotifier{}
	co := newTestCheckout(store, n, testOrder())

	b, err := co.Confirm(context.Background())

	assert.Nil(t, b)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StepSummary, co.Step())
	assert.Empty(t, store.paidID)
	assert.Nil(t, store.remaining)
	require.Len(t, n.errors, 1)
	assert.Contains(t, n.errors[0], "create booking")
}

func TestConfirmMarkPaidFails(t *testing.T) {
	boom := errors.New("update failed")
	store := &mockStore{markPaidFn: func(context.Context, string, string) error { return boom }}
	n := &mockNotifier{}
	co := newTestCheckout(store, n, testOrder())

	b, err := co.Confirm(context.Background())

	assert.Nil(t, b)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StepSummary, co.Step())

	// The pending row was written and is not rolled back.
	require.Len(t, store.created, 1)
	assert.Equal(t, model.BookingPending, store.created[0].Status)
	assert.Nil(t, store.remaining)
}

func TestConfirmSeatDecrementFails(t *testing.T) {
	boom := errors.New("update failed")
	store := &mockStore{setAvailFn: func(context.Context, uint64, uint32) error { return boom }}
	n := &mockNotifier{}
	co := newTestCheckout(store, n, testOrder())

	b, err := co.Confirm(context.Background())

	assert.Nil(t, b)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StepSummary, co.Step())

	// The booking was already marked paid; the counter is stale and
	// the error is surfaced instead of repaired.
	assert.NotEmpty(t, store.paidID)
	require.Len(t, n.errors, 1)
	assert.Contains(t, n.errors[0], "update available seats")
}

func TestConfirmWhileCommitInFlight(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	blockingDelay := func(ctx context.Context) error {
		close(entered)
		<-release
		return nil
	}

	store := &mockStore{}
	n := &mockNotifier{}
	co := newTestCheckout(store, n, testOrder(), WithDelay(blockingDelay))

	done := make(chan error, 1)
	go func() {
		_, err := co.Confirm(context.Background())
		done <- err
	}()

	<-entered
	assert.Equal(t, StepPayment, co.Step())

	// A second confirm is inert while the commit runs.
	_, err := co.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrCommitInFlight)

	// Closing during payment is refused.
	assert.False(t, co.Close())
	assert.Equal(t, StepPayment, co.Step())

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StepSuccess, co.Step())
	assert.True(t, co.Close())
}

func TestConfirmAfterSuccess(t *testing.T) {
	store := &mockStore{}
	n := &mockNotifier{}
	co := newTestCheckout(store, n, testOrder())

	_, err := co.Confirm(context.Background())
	require.NoError(t, err)

	_, err = co.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestSimulatedPaymentHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := SimulatedPayment(time.Minute)(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
