package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/movieslot/booking-api/internal/booking"
	"github.com/movieslot/booking-api/internal/config"
	"github.com/movieslot/booking-api/internal/database"
	"github.com/movieslot/booking-api/internal/handler"
	"github.com/movieslot/booking-api/internal/middleware"
	"github.com/movieslot/booking-api/internal/queue"
	"github.com/movieslot/booking-api/internal/repository"
	"github.com/movieslot/booking-api/internal/router"
	queuepub "github.com/movieslot/booking-api/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	database.Seed(ctx, db)
	cancel()

	rdb := config.NewRedisClient() // nil disables caching and rate limiting
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limit disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	movies := repository.NewMovieRepo(db)
	theaters := repository.NewTheaterRepo(db)
	showtimes := repository.NewShowtimeRepo(db)
	bookings := repository.NewBookingRepo(db)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	catalog := handler.NewCatalogHandler(movies, theaters, showtimes)
	seats := handler.NewSeatMapHandler(showtimes, bookings)
	bookingH := handler.NewBookingHandler(
		users, showtimes, bookings,
		booking.SimulatedPayment(cfg.PaymentDelay),
		queuepub.PublishBookingPaid,
	)

	e := echo.New()
	e.HideBanner = true

	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.Use(rateLimit)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterCatalog(e, catalog, seats, cache)
	router.RegisterCustomer(e, bookingH, cfg.JWTSecret)

	// Confirmation consumer runs for the life of the server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
