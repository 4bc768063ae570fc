package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieslot/booking-api/internal/model"
	"github.com/movieslot/booking-api/internal/repository"
)

// ----- fakes -----

type fakeMovies struct {
	list     func(ctx context.Context, status string) ([]model.Movie, error)
	get      func(ctx context.Context, id uint64) (model.Movie, error)
	featured func(ctx context.Context) (model.Movie, error)
}

func (f *fakeMovies) List(ctx context.Context, status string) ([]model.Movie, error) {
	return f.list(ctx, status)
}
func (f *fakeMovies) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	return f.get(ctx, id)
}
func (f *fakeMovies) GetFeatured(ctx context.Context) (model.Movie, error) {
	return f.featured(ctx)
}

type fakeTheaters struct {
	listAll func(ctx context.Context) ([]model.Theater, error)
	get     func(ctx context.Context, id uint64) (model.Theater, error)
}

func (f *fakeTheaters) ListAll(ctx context.Context) ([]model.Theater, error) { return f.listAll(ctx) }
func (f *fakeTheaters) GetByID(ctx context.Context, id uint64) (model.Theater, error) {
	return f.get(ctx, id)
}

type fakeShowtimes struct {
	listByMovie func(ctx context.Context, movieID uint64, date string) ([]repository.ShowtimeWithTheater, error)
	get         func(ctx context.Context, id uint64) (model.Showtime, error)
	setAvail    func(ctx context.Context, id uint64, remaining uint32) error
}

func (f *fakeShowtimes) ListByMovie(ctx context.Context, movieID uint64, date string) ([]repository.ShowtimeWithTheater, error) {
	return f.listByMovie(ctx, movieID, date)
}
func (f *fakeShowtimes) GetByID(ctx context.Context, id uint64) (model.Showtime, error) {
	return f.get(ctx, id)
}
func (f *fakeShowtimes) SetAvailableSeats(ctx context.Context, id uint64, remaining uint32) error {
	return f.setAvail(ctx, id, remaining)
}

// newTestContext builds an Echo context around a recorded request.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func movieFixture(id uint64, title string) model.Movie {
	return model.Movie{ID: id, Title: title, Status: model.MovieNowShowing, Genres: []string{}, Languages: []string{}}
}

// ----- tests -----

func TestGetMovies(t *testing.T) {
	var gotStatus string
	h := NewCatalogHandler(&fakeMovies{
		list: func(_ context.Context, status string) ([]model.Movie, error) {
			gotStatus = status
			return []model.Movie{movieFixture(1, "Interstellar")}, nil
		},
	}, nil, nil)

	c, rec := newTestContext(http.MethodGet, "/v1/movies?status=now_showing", "")
	require.NoError(t, h.GetMovies(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.MovieNowShowing, gotStatus)
	assert.Contains(t, rec.Body.String(), "Interstellar")
}

func TestGetMoviesRejectsUnknownStatus(t *testing.T) {
	h := NewCatalogHandler(&fakeMovies{}, nil, nil)

	c, rec := newTestContext(http.MethodGet, "/v1/movies?status=archived", "")
	require.NoError(t, h.GetMovies(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFeaturedMovieNotFound(t *testing.T) {
	h := NewCatalogHandler(&fakeMovies{
		featured: func(context.Context) (model.Movie, error) {
			return model.Movie{}, repository.ErrMovieNotFound
		},
	}, nil, nil)

	c, rec := newTestContext(http.MethodGet, "/v1/movies/featured", "")
	require.NoError(t, h.GetFeaturedMovie(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMovie(t *testing.T) {
	h := NewCatalogHandler(&fakeMovies{
		get: func(_ context.Context, id uint64) (model.Movie, error) {
			if id != 42 {
				return model.Movie{}, repository.ErrMovieNotFound
			}
			return movieFixture(42, "Dune"), nil
		},
	}, nil, nil)

	c, rec := newTestContext(http.MethodGet, "/v1/movies/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.GetMovie(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dune")

	c, rec = newTestContext(http.MethodGet, "/v1/movies/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.GetMovie(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/v1/movies/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.GetMovie(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTheaters(t *testing.T) {
	h := NewCatalogHandler(nil, &fakeTheaters{
		listAll: func(context.Context) ([]model.Theater, error) {
			return []model.Theater{{ID: 1, Name: "Galaxy Central", City: "Mumbai", Facilities: []string{}}}, nil
		},
	}, nil)

	c, rec := newTestContext(http.MethodGet, "/v1/theaters", "")
	require.NoError(t, h.GetTheaters(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Galaxy Central")
}

func TestGetShowtimesGroupsByTheater(t *testing.T) {
	t1 := model.Theater{ID: 1, Name: "Galaxy Central", Facilities: []string{}}
	t2 := model.Theater{ID: 2, Name: "Riverside Multiplex", Facilities: []string{}}
	rows := []repository.ShowtimeWithTheater{
		{Showtime: model.Showtime{ID: 10, MovieID: 5, TheaterID: 1, ShowTime: "10:00:00"}, Theater: t1},
		{Showtime: model.Showtime{ID: 11, MovieID: 5, TheaterID: 2, ShowTime: "13:00:00"}, Theater: t2},
		{Showtime: model.Showtime{ID: 12, MovieID: 5, TheaterID: 1, ShowTime: "19:30:00"}, Theater: t1},
	}
	h := NewCatalogHandler(&fakeMovies{
		get: func(_ context.Context, id uint64) (model.Movie, error) { return movieFixture(5, "Oppenheimer"), nil },
	}, nil, &fakeShowtimes{
		listByMovie: func(_ context.Context, movieID uint64, date string) ([]repository.ShowtimeWithTheater, error) {
			assert.Equal(t, uint64(5), movieID)
			assert.Equal(t, "2025-06-01", date)
			return rows, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/v1/movies/5/showtimes?date=2025-06-01", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.GetShowtimes(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		MovieID  uint64 `json:"movie_id"`
		Theaters []struct {
			Theater   model.Theater    `json:"theater"`
			Showtimes []model.Showtime `json:"showtimes"`
		} `json:"theaters"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Theaters, 2)
	assert.Equal(t, "Galaxy Central", resp.Theaters[0].Theater.Name)
	assert.Len(t, resp.Theaters[0].Showtimes, 2)
	assert.Len(t, resp.Theaters[1].Showtimes, 1)
}

func TestGetShowtimesRejectsBadDate(t *testing.T) {
	h := NewCatalogHandler(&fakeMovies{}, nil, &fakeShowtimes{})

	c, rec := newTestContext(http.MethodGet, "/v1/movies/5/showtimes?date=01-06-2025", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.GetShowtimes(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
