package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieslot/booking-api/internal/model"
	"github.com/movieslot/booking-api/internal/repository"
)

type fakeUsers struct {
	get func(ctx context.Context, id uint64) (repository.User, error)
}

func (f *fakeUsers) GetByID(ctx context.Context, id uint64) (repository.User, error) {
	return f.get(ctx, id)
}

// fakeBookings records writes so tests can assert the commit's
// effects.
type fakeBookings struct {
	booked     []string
	created    []*model.Booking
	paidID     string
	paymentID  string
	listByUser func(ctx context.Context, userID uint64) ([]repository.BookingDetail, error)
	getForUser func(ctx context.Context, id string, userID uint64) (repository.BookingDetail, error)
}

func (f *fakeBookings) Create(ctx context.Context, b *model.Booking) error {
	cp := *b
	f.created = append(f.created, &cp)
	return nil
}
func (f *fakeBookings) MarkPaid(ctx context.Context, id, paymentID string) error {
	f.paidID = id
	f.paymentID = paymentID
	return nil
}
func (f *fakeBookings) BookedSeatLabels(ctx context.Context, showtimeID uint64) ([]string, error) {
	return f.booked, nil
}
func (f *fakeBookings) ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error) {
	if f.listByUser == nil {
		return nil, nil
	}
	return f.listByUser(ctx, userID)
}
func (f *fakeBookings) GetByIDForUser(ctx context.Context, id string, userID uint64) (repository.BookingDetail, error) {
	if f.getForUser == nil {
		return repository.BookingDetail{}, repository.ErrBookingNotFound
	}
	return f.getForUser(ctx, id, userID)
}

func noDelay(context.Context) error { return nil }

type recordedShowtimes struct {
	fakeShowtimes
	remaining *uint32
}

func newBookingFixture(t *testing.T) (*BookingHandler, *fakeBookings, *recordedShowtimes) {
	t.Helper()
	bookings := &fakeBookings{}
	showtimes := &recordedShowtimes{}
	showtimes.get = func(_ context.Context, id uint64) (model.Showtime, error) {
		return showtimeFixture(id), nil
	}
	showtimes.setAvail = func(_ context.Context, id uint64, remaining uint32) error {
		showtimes.remaining = &remaining
		return nil
	}
	users := &fakeUsers{get: func(_ context.Context, id uint64) (repository.User, error) {
		return repository.User{ID: id, Email: "alice@example.com", Role: "CUSTOMER"}, nil
	}}
	h := NewBookingHandler(users, showtimes, bookings, noDelay, nil)
	return h, bookings, showtimes
}

func TestCreateBooking(t *testing.T) {
	h, bookings, showtimes := newBookingFixture(t)

	c, rec := newTestContext(http.MethodPost, "/v1/showtimes/3/bookings",
		`{"seats":["A1","A2","D5"],"required_seats":3}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("user_id", float64(7))

	require.NoError(t, h.CreateBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Booking   model.Booking `json:"booking"`
		Reference string        `json:"reference"`
		Message   string        `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, model.BookingPaid, resp.Booking.Status)
	assert.Equal(t, uint64(7), resp.Booking.UserID)
	assert.Equal(t, []string{"A1", "A2", "D5"}, resp.Booking.Seats)
	// Two premium seats at 350 plus one standard at 200.
	assert.Equal(t, uint32(900), resp.Booking.TotalAmount)
	assert.Len(t, resp.Reference, 8)
	assert.Equal(t, strings.ToUpper(resp.Booking.ID[:8]), resp.Reference)
	assert.Contains(t, resp.Message, "alice@example.com")

	require.Len(t, bookings.created, 1)
	assert.Equal(t, model.BookingPending, bookings.created[0].Status)
	assert.Equal(t, bookings.created[0].ID, bookings.paidID)
	assert.True(t, strings.HasPrefix(bookings.paymentID, "MOCK_PAY_"))
	require.NotNil(t, showtimes.remaining)
	assert.Equal(t, uint32(97), *showtimes.remaining)
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	h, _, _ := newBookingFixture(t)

	c, rec := newTestContext(http.MethodPost, "/v1/showtimes/3/bookings", `{"seats":["A1"]}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBookingSeatAlreadyTaken(t *testing.T) {
	h, bookings, _ := newBookingFixture(t)
	bookings.booked = []string{"A2"}

	c, rec := newTestContext(http.MethodPost, "/v1/showtimes/3/bookings", `{"seats":["A1","A2"]}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("user_id", float64(7))

	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, bookings.created)
}

func TestCreateBookingUnknownSeat(t *testing.T) {
	h, bookings, _ := newBookingFixture(t)

	c, rec := newTestContext(http.MethodPost, "/v1/showtimes/3/bookings", `{"seats":["Z9"]}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("user_id", float64(7))

	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, bookings.created)
}

func TestCreateBookingSeatCountMismatch(t *testing.T) {
	h, bookings, _ := newBookingFixture(t)

	c, rec := newTestContext(http.MethodPost, "/v1/showtimes/3/bookings",
		`{"seats":["A1","A2"],"required_seats":3}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("user_id", float64(7))

	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, bookings.created)
}

func TestCreateBookingClosedShowtime(t *testing.T) {
	h, _, showtimes := newBookingFixture(t)
	showtimes.get = func(_ context.Context, id uint64) (model.Showtime, error) {
		st := showtimeFixture(id)
		st.IsAvailable = false
		return st, nil
	}

	c, rec := newTestContext(http.MethodPost, "/v1/showtimes/3/bookings", `{"seats":["A1"]}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("user_id", float64(7))

	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListMyBookings(t *testing.T) {
	h, bookings, _ := newBookingFixture(t)
	bookings.listByUser = func(_ context.Context, userID uint64) ([]repository.BookingDetail, error) {
		assert.Equal(t, uint64(7), userID)
		return []repository.BookingDetail{{
			Booking:     model.Booking{ID: "abc-123", UserID: 7, Seats: []string{"A1"}, Status: model.BookingPaid},
			MovieTitle:  "Dune",
			TheaterName: "Galaxy Central",
		}}, nil
	}

	c, rec := newTestContext(http.MethodGet, "/v1/my-bookings", "")
	c.Set("user_id", float64(7))

	require.NoError(t, h.ListMyBookings(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dune")
}

func TestGetBookingOwnership(t *testing.T) {
	h, bookings, _ := newBookingFixture(t)
	bookings.getForUser = func(_ context.Context, id string, userID uint64) (repository.BookingDetail, error) {
		switch id {
		case "mine":
			return repository.BookingDetail{Booking: model.Booking{ID: "mine", UserID: userID, Seats: []string{"A1"}}}, nil
		case "theirs":
			return repository.BookingDetail{}, repository.ErrForbidden
		default:
			return repository.BookingDetail{}, repository.ErrBookingNotFound
		}
	}

	c, rec := newTestContext(http.MethodGet, "/v1/bookings/mine", "")
	c.SetParamNames("id")
	c.SetParamValues("mine")
	c.Set("user_id", float64(7))
	require.NoError(t, h.GetBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/v1/bookings/theirs", "")
	c.SetParamNames("id")
	c.SetParamValues("theirs")
	c.Set("user_id", float64(7))
	require.NoError(t, h.GetBooking(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/v1/bookings/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	c.Set("user_id", float64(7))
	require.NoError(t, h.GetBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
