package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/train-reservation/internal/config"
	"github.com/iliyamo/train-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/train-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Create a route group under the /v1/auth prefix for operations that do
	// not require an existing session (register, login, refresh).  Each of
	// these handlers is responsible for generating or exchanging tokens.
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle user registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /v1/auth/login.
	g.POST("/login", a.Login)
	// Register a POST endpoint to rotate the refresh token at /v1/auth/refresh.
	// Each stored refresh value is accepted at most once.
	g.POST("/refresh", a.Refresh)
	// Register a POST endpoint to log out using a refresh token.  The handler
	// accepts a JSON body containing a `refresh_token` and will invalidate
	// that token.  A valid token yields 204; otherwise 400/401/500 are
	// possible depending on the error.
	g.POST("/logout", a.Logout)

	// Create another group for routes that require a valid access token.  All
	// handlers registered on this group will execute the JWTAuth middleware
	// before being invoked.
	auth := e.Group("/v1")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Both USER and ADMIN roles may use the personal endpoints.  The
	// middleware rejects requests with missing or unknown roles.
	auth.Use(middleware.RequireRole("USER", "ADMIN"))
	// Register a GET endpoint at /v1/me that returns the authenticated user's information.
	auth.GET("/me", a.Me)
}

// RegisterBookings registers the booking lifecycle under the authenticated
// /v1 group.  Every route requires a valid access token; ownership checks
// beyond that (owner-or-admin on lookup and cancel) live in the store.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("USER", "ADMIN"))
	// Create a booking: reserves seats and returns the PNR.
	g.POST("", b.Create)
	// List the caller's own bookings, newest first.
	g.GET("", b.List)
	// Look up a single booking by its PNR code.
	g.GET("/:pnr", b.GetByPNR)
	// Cancel a booking and release its seats back to the schedule.
	g.POST("/:id/cancel", b.Cancel)
}

// RegisterCatalog registers the unauthenticated browse and search routes.
// These are read-only, so they sit behind the Redis response cache when a
// Redis client is available.  When rdb is nil the middleware turns into a
// pass-through and the routes still work.
func RegisterCatalog(e *echo.Echo, t *handler.TrainHandler, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	g := e.Group("/v1", cache)
	// Journey search: match an origin and destination along each train's
	// ordered stops, optionally restricted to a travel date.
	g.GET("/trains/search", t.Search)
	// Brief listing of every train in the catalog.
	g.GET("/trains", t.List)
	// Scheduled runs of one train with live seat availability.
	g.GET("/trains/:id/schedules", t.SchedulesByTrain)
	// A single schedule, used by the booking page.
	g.GET("/schedules/:id", t.GetSchedule)
}

// RegisterAdmin registers account administration under /v1/admin.  Only
// authenticated ADMIN users pass the middleware chain.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))
	// Paginated user listing with an optional name/email filter.
	g.GET("/users", a.ListUsers)
	// Promote or demote an account within the closed role set.
	g.POST("/users/:id/role", a.UpdateRole)
}
