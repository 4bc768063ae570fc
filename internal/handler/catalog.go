package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movieslot/booking-api/internal/model"
	"github.com/movieslot/booking-api/internal/repository"
)

// MovieStore, TheaterStore and ShowtimeStore are the read surfaces
// the catalog handlers consume.  The repository types satisfy them;
// tests substitute in-memory fakes.
type MovieStore interface {
	List(ctx context.Context, status string) ([]model.Movie, error)
	GetByID(ctx context.Context, id uint64) (model.Movie, error)
	GetFeatured(ctx context.Context) (model.Movie, error)
}

type TheaterStore interface {
	ListAll(ctx context.Context) ([]model.Theater, error)
	GetByID(ctx context.Context, id uint64) (model.Theater, error)
}

type ShowtimeStore interface {
	ListByMovie(ctx context.Context, movieID uint64, date string) ([]repository.ShowtimeWithTheater, error)
	GetByID(ctx context.Context, id uint64) (model.Showtime, error)
	SetAvailableSeats(ctx context.Context, id uint64, remaining uint32) error
}

// CatalogHandler serves the browse endpoints: movie lists, the
// featured movie, theaters and the showtime picker.  Everything here
// is public and read-only.
type CatalogHandler struct {
	Movies    MovieStore
	Theaters  TheaterStore
	Showtimes ShowtimeStore
}

func NewCatalogHandler(m MovieStore, t TheaterStore, s ShowtimeStore) *CatalogHandler {
	return &CatalogHandler{Movies: m, Theaters: t, Showtimes: s}
}

// GetMovies lists movies, newest first.  The optional ?status= query
// narrows the list to now_showing or coming_soon.
func (h *CatalogHandler) GetMovies(c echo.Context) error {
	status := c.QueryParam("status")
	switch status {
	case "", model.MovieNowShowing, model.MovieComingSoon:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.List(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

// GetFeaturedMovie returns the movie flagged for the homepage banner.
func (h *CatalogHandler) GetFeaturedMovie(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.GetFeatured(ctx)
	if err == repository.ErrMovieNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no featured movie"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movie": m})
}

// GetMovie returns one movie by id.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if err == repository.ErrMovieNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movie": m})
}

// GetTheaters lists every theater ordered by name.
func (h *CatalogHandler) GetTheaters(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	theaters, err := h.Theaters.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if theaters == nil {
		theaters = []model.Theater{}
	}
	return c.JSON(http.StatusOK, echo.Map{"theaters": theaters})
}

// theaterShowtimes groups a theater with its showtimes for the
// picker response.
type theaterShowtimes struct {
	Theater   model.Theater    `json:"theater"`
	Showtimes []model.Showtime `json:"showtimes"`
}

// GetShowtimes returns the available showtimes for a movie grouped
// by theater, ordered by time of day within each group.  The
// optional ?date= query ("2006-01-02") narrows to one calendar date.
func (h *CatalogHandler) GetShowtimes(c echo.Context) error {
	movieID, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	date := c.QueryParam("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rows, err := h.Showtimes.ListByMovie(ctx, movieID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	// Group by theater preserving first-seen order.
	groups := []theaterShowtimes{}
	index := map[uint64]int{}
	for _, row := range rows {
		i, seen := index[row.Theater.ID]
		if !seen {
			i = len(groups)
			index[row.Theater.ID] = i
			groups = append(groups, theaterShowtimes{Theater: row.Theater, Showtimes: []model.Showtime{}})
		}
		groups[i].Showtimes = append(groups[i].Showtimes, row.Showtime)
	}
	return c.JSON(http.StatusOK, echo.Map{"movie_id": movieID, "theaters": groups})
}
