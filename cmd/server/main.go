package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/arshraina/dining-reservation-system/internal/booking"
	"github.com/arshraina/dining-reservation-system/internal/config"
	"github.com/arshraina/dining-reservation-system/internal/database"
	"github.com/arshraina/dining-reservation-system/internal/handler"
	"github.com/arshraina/dining-reservation-system/internal/middleware"
	"github.com/arshraina/dining-reservation-system/internal/model"
	"github.com/arshraina/dining-reservation-system/internal/queue"
	"github.com/arshraina/dining-reservation-system/internal/repository"
	"github.com/arshraina/dining-reservation-system/internal/router"
	queue_publisher "github.com/arshraina/dining-reservation-system/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	var (
		venues   repository.VenueStore
		users    repository.UserStore
		bookings repository.BookingStore
	)
	switch cfg.Store {
	case "memory":
		venues = repository.NewMemoryVenueStore()
		users = repository.NewMemoryUserStore()
		bookings = repository.NewMemoryBookingStore()
	default:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		venues = repository.NewVenueRepo(db)
		users = repository.NewUserRepo(db)
		bookings = repository.NewBookingRepo(db)
	}

	svc := booking.NewService(venues, bookings, publishConfirmed)

	if os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != "" {
		go func() {
			if err := queue.StartBookingConsumer(); err != nil {
				log.Printf("booking consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.Validator = handler.NewValidator()

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient())
	router.Register(e, router.Deps{
		Auth:        handler.NewAuthHandler(cfg, users),
		Venues:      handler.NewVenueHandler(venues, svc),
		Bookings:    handler.NewBookingHandler(svc, bookings),
		JWTSecret:   cfg.JWTSecret,
		AdminAPIKey: cfg.AdminAPIKey,
		RateLimiter: limiter,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s store=%s)", addr, cfg.Env, cfg.Store)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// publishConfirmed forwards committed bookings to the broker without
// blocking the request path.  Publish failures only log.
func publishConfirmed(_ context.Context, b model.Booking, v model.Venue) {
	ev := queue.BookingConfirmedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		PlaceID:     b.VenueID,
		VenueName:   v.Name,
		StartTime:   b.Slot.Start.Format(time.RFC3339),
		EndTime:     b.Slot.End.Format(time.RFC3339),
		ConfirmedAt: b.CreatedAt.Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingConfirmed(ctx, ev)
	}()
}
