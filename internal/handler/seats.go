package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movieslot/booking-api/internal/model"
	"github.com/movieslot/booking-api/internal/repository"
	"github.com/movieslot/booking-api/internal/seatmap"
)

// BookedSeatSource yields the union of seat labels blocked by active
// bookings for a showtime.
type BookedSeatSource interface {
	BookedSeatLabels(ctx context.Context, showtimeID uint64) ([]string, error)
}

// SeatMapHandler serves the seat-selection screen: the grid
// geometry, which seats are taken and the pricing for the showtime.
type SeatMapHandler struct {
	Showtimes ShowtimeStore
	Bookings  BookedSeatSource
}

func NewSeatMapHandler(s ShowtimeStore, b BookedSeatSource) *SeatMapHandler {
	return &SeatMapHandler{Showtimes: s, Bookings: b}
}

// gridFor picks the screen layout for a showtime from its capacity.
// Compact single-price screens seat 96; everything else uses the
// standard ten-row layout.
func gridFor(st model.Showtime) seatmap.Grid {
	if int(st.TotalSeats) == seatmap.CompactGrid().Capacity() {
		return seatmap.CompactGrid()
	}
	return seatmap.DefaultGrid()
}

type seatMapResp struct {
	ShowtimeID     uint64   `json:"showtime_id"`
	Rows           []string `json:"rows"`
	SeatsPerRow    int      `json:"seats_per_row"`
	PremiumRows    []string `json:"premium_rows"`
	BookedSeats    []string `json:"booked_seats"`
	PriceStandard  uint32   `json:"price_standard"`
	PricePremium   *uint32  `json:"price_premium"`
	AvailableSeats uint32   `json:"available_seats"`
	TotalSeats     uint32   `json:"total_seats"`
}

// GetSeatMap returns the seat map for a showtime.  Booked seats are
// the union over bookings still in an active status; the check is
// read-time only, there is no hold between viewing and booking.
func (h *SeatMapHandler) GetSeatMap(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	st, err := h.Showtimes.GetByID(ctx, id)
	if err == repository.ErrShowtimeNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !st.IsAvailable {
		return c.JSON(http.StatusConflict, echo.Map{"error": "showtime not open for booking"})
	}

	booked, err := h.Bookings.BookedSeatLabels(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	grid := gridFor(st)
	return c.JSON(http.StatusOK, seatMapResp{
		ShowtimeID:     st.ID,
		Rows:           grid.Rows(),
		SeatsPerRow:    grid.SeatsPerRow(),
		PremiumRows:    grid.PremiumRows(),
		BookedSeats:    booked,
		PriceStandard:  st.PriceStandard,
		PricePremium:   st.PricePremium,
		AvailableSeats: st.AvailableSeats,
		TotalSeats:     st.TotalSeats,
	})
}
