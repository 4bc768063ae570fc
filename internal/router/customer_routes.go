package router

import (
	"github.com/labstack/echo/v4"

	"github.com/movieslot/booking-api/internal/handler"
	"github.com/movieslot/booking-api/internal/middleware"
)

// RegisterCatalog registers the public browse endpoints: movies, the
// featured movie, theaters, the showtime picker and the seat map.
// The supplied middleware (response cache, rate limit) is applied to
// the whole group; guests can call everything here.
func RegisterCatalog(e *echo.Echo, c *handler.CatalogHandler, s *handler.SeatMapHandler, mws ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mws...)
	g.GET("/movies", c.GetMovies)
	g.GET("/movies/featured", c.GetFeaturedMovie)
	g.GET("/movies/:id", c.GetMovie)
	g.GET("/movies/:id/showtimes", c.GetShowtimes)
	g.GET("/theaters", c.GetTheaters)
	g.GET("/showtimes/:id/seats", s.GetSeatMap)
}

// RegisterCustomer registers the endpoints that require a signed-in
// customer: creating a booking and reading booking history.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("CUSTOMER"))
	g.POST("/showtimes/:id/bookings", b.CreateBooking)
	g.GET("/my-bookings", b.ListMyBookings)
	g.GET("/bookings/:id", b.GetBooking)
}
