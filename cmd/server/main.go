package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv" // Loads .env files into the environment
	"github.com/labstack/echo/v4"

	"github.com/locotranz/bus-reservation/internal/config"
	"github.com/locotranz/bus-reservation/internal/database"
	"github.com/locotranz/bus-reservation/internal/handler"
	"github.com/locotranz/bus-reservation/internal/queue"
	"github.com/locotranz/bus-reservation/internal/repository"
	"github.com/locotranz/bus-reservation/internal/router"
	"github.com/locotranz/bus-reservation/internal/service"
)

func main() {
	// Load a local .env file when present.  In production the variables
	// come from the environment directly and the file is absent.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment directly")
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter and the schedule search cache.  A nil
	// client degrades both to pass-through rather than failing startup.
	rdb := config.NewRedisClient()
	rlCfg := config.LoadRateLimitConfig()

	// Repositories share the single pooled DB handle.
	userRepo := repository.NewUserRepo(db)
	busRepo := repository.NewBusRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	bookingSvc := service.NewBookingService(db, scheduleRepo, seatRepo, bookingRepo)

	userHandler := handler.NewUserHandler(userRepo, cfg.BcryptCost)
	busHandler := handler.NewBusHandler(busRepo)
	scheduleHandler := handler.NewScheduleHandler(scheduleRepo, rdb, cfg.SearchCacheTTL)
	seatHandler := handler.NewSeatHandler(seatRepo, scheduleRepo, busRepo)
	bookingHandler := handler.NewBookingHandler(bookingSvc, bookingRepo)
	paymentHandler := handler.NewPaymentHandler(paymentRepo, bookingRepo)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAdmin(e, userHandler, busHandler, scheduleHandler)
	router.RegisterSeats(e, seatHandler)
	router.RegisterBookings(e, bookingHandler, paymentHandler, rlCfg, rdb)

	// Consume confirmed-booking events in the background.  The consumer
	// reconnects on its own; a startup failure only logs.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
