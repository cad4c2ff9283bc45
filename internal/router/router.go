package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/locotranz/bus-reservation/internal/config"
	"github.com/locotranz/bus-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/locotranz/bus-reservation/internal/middleware" // import middleware for request rate limiting
)

// RegisterRoutes registers routes that carry no domain logic on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAdmin registers the fleet and passenger management endpoints:
// users, buses and schedules.  These would normally sit behind an
// operator login; authentication is out of scope here, so they are
// registered directly under /v1.
func RegisterAdmin(e *echo.Echo, u *handler.UserHandler, b *handler.BusHandler, s *handler.ScheduleHandler) {
	// User accounts.  Passwords are bcrypt-hashed on the way in and never
	// returned in responses.
	users := e.Group("/v1/users")
	users.POST("", u.Create)
	users.GET("", u.List)
	users.GET("/:id", u.Get)
	users.PUT("/:id", u.Update)
	users.DELETE("/:id", u.Delete)

	// Bus fleet records.
	buses := e.Group("/v1/buses")
	buses.POST("", b.Create)
	buses.GET("", b.List)
	buses.GET("/:id", b.Get)
	buses.PUT("/:id", b.Update)
	buses.DELETE("/:id", b.Delete)

	// Departure schedules.  The search endpoint is registered before the
	// parameterised routes so /v1/schedules/search is not captured by :id.
	schedules := e.Group("/v1/schedules")
	schedules.POST("", s.Create)
	schedules.GET("", s.List)
	schedules.GET("/search", s.Search)
	schedules.GET("/:id", s.Get)
	schedules.PUT("/:id", s.Update)
	schedules.DELETE("/:id", s.Delete)
}

// RegisterSeats registers the seat inventory endpoints.  Seat generation
// is keyed by schedule and is idempotent, so operators can call it again
// after adding a schedule without duplicating inventory.
func RegisterSeats(e *echo.Echo, s *handler.SeatHandler) {
	seats := e.Group("/v1/seats")
	// Populate the seat inventory for a schedule from the bus capacity.
	seats.POST("/generate/:schedule_id", s.Generate)
	// List the seats of a schedule that are still open for booking.
	seats.GET("/available/:schedule_id", s.Available)
	seats.GET("/:id", s.Get)
	seats.PUT("/:id", s.SetAvailability)
	seats.DELETE("/:id", s.Delete)
}

// RegisterBookings registers the booking and payment endpoints.  The
// booking group carries the token-bucket rate limiter because seat
// claiming is the contended path; the limiter is a no-op when disabled
// or when Redis is unavailable.
func RegisterBookings(e *echo.Echo, bk *handler.BookingHandler, p *handler.PaymentHandler, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	bookings := e.Group("/v1/bookings")
	bookings.Use(middleware.NewTokenBucket(rlCfg, rdb))
	bookings.POST("", bk.Create)
	bookings.GET("", bk.List)
	bookings.GET("/:id", bk.Get)
	bookings.PUT("/:id", bk.UpdateStatus)
	// Deleting a booking cancels it: seats are released and the record
	// removed in one transaction.
	bookings.DELETE("/:id", bk.Delete)

	payments := e.Group("/v1/payments")
	payments.POST("", p.Create)
	payments.GET("", p.List)
	payments.GET("/:id", p.Get)
	payments.PUT("/:id", p.UpdateStatus)
	payments.DELETE("/:id", p.Delete)
}
