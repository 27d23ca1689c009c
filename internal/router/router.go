// Package router registers the HTTP routes for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/arshraina/dining-reservation-system/internal/handler"
	"github.com/arshraina/dining-reservation-system/internal/middleware"
)

// Deps carries everything route registration needs.
type Deps struct {
	Auth        *handler.AuthHandler
	Venues      *handler.VenueHandler
	Bookings    *handler.BookingHandler
	JWTSecret   string
	AdminAPIKey string
	RateLimiter echo.MiddlewareFunc // optional
}

// Register wires all routes.  Venue creation sits behind the admin
// API-key gate; booking and booking listings require a valid access
// token.  Availability and search stay public, matching the source
// API surface.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	if d.RateLimiter != nil {
		api.Use(d.RateLimiter)
	}

	api.POST("/signup", d.Auth.Signup)
	api.POST("/login", d.Auth.Login)

	api.POST("/dining-place/create", d.Venues.Create, middleware.AdminAPIKey(d.AdminAPIKey))
	api.GET("/dining-place", d.Venues.Search)
	api.GET("/dining-place/availability", d.Venues.Availability)

	jwt := middleware.JWTAuth(d.JWTSecret)
	api.POST("/dining-place/book", d.Bookings.Book, jwt)
	api.GET("/bookings", d.Bookings.MyBookings, jwt)
}
