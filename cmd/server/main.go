package main // Entry point package

import (
	"context"
	"log"  // Logging library
	"time" // startup sweep timeout

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/train-reservation/internal/config"   // Internal config loader
	"github.com/iliyamo/train-reservation/internal/database" // MySQL pool
	"github.com/iliyamo/train-reservation/internal/handler"
	"github.com/iliyamo/train-reservation/internal/middleware" // rate limiter
	"github.com/iliyamo/train-reservation/internal/queue"      // booking event consumer
	"github.com/iliyamo/train-reservation/internal/repository"
	"github.com/iliyamo/train-reservation/internal/router" // Internal router setup
	queuepublisher "github.com/iliyamo/train-reservation/internal/service"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Persistence layer.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	schedules := repository.NewScheduleRepo(db)
	bookings := repository.NewBookingRepo(db)
	catalog := repository.NewCatalogRepo(db)
	flow := repository.NewBookingFlow(db, bookings, schedules, catalog)

	// Sweep refresh tokens that expired while the service was down.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if n, err := tokens.DeleteExpired(ctx); err != nil {
			log.Printf("token sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("token sweep removed %d expired refresh tokens", n)
		}
		cancel()
	}

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	bookingH := handler.NewBookingHandler(flow)
	bookingH.PublishConfirmed = queuepublisher.PublishBookingConfirmed
	bookingH.PublishCancelled = queuepublisher.PublishBookingCancelled
	trainH := handler.NewTrainHandler(catalog, schedules)
	adminH := handler.NewAdminHandler(users)

	// Redis backs the search cache and the rate limiter; nil disables both.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	// Background consumer writing booking events to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	// Distributed token bucket in front of every route; a pass-through
	// when Redis is down.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBookings(e, bookingH, cfg.JWTSecret)
	router.RegisterCatalog(e, trainH, rdb)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
