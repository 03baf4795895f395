package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// RouterDeps holds the controllers and cross-cutting collaborators the router wires together.
type RouterDeps struct {
	Events     *controllers.EventController
	Engagement *controllers.EngagementController
	Users      *controllers.UserController
	Catalog    *controllers.CatalogController

	Verifier           domain.TokenVerifier
	Logger             *slog.Logger
	CORSAllowedOrigins []string
	// RateLimitPerMinute caps GET /events per client IP; <= 0 disables the limit.
	RateLimitPerMinute int
}

// NewRouter initializes the HTTP router with all application routes
// and wraps it in the CORS, logging and recovery middleware.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(d.Verifier, d.Logger)
	optional := middleware.OptionalAuth(d.Verifier, d.Logger)
	limit := middleware.RateLimitByIP(d.RateLimitPerMinute, time.Minute)

	// Auth
	mux.HandleFunc("POST /auth/register", d.Users.Register)
	mux.HandleFunc("POST /auth/login", d.Users.Login)

	// Users
	mux.HandleFunc("GET /users/me", auth(d.Users.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(d.Users.UpdateMe))
	mux.HandleFunc("GET /users/me/followers", auth(d.Users.ListFollowers))
	mux.HandleFunc("GET /users/me/followings", auth(d.Users.ListFollowings))
	mux.HandleFunc("GET /users/{userID}", d.Users.GetUser)
	mux.HandleFunc("POST /users/{userID}/follow", auth(d.Users.ToggleFollow))

	// Events
	mux.HandleFunc("GET /events", limit(optional(d.Events.ListEvents)))
	mux.HandleFunc("POST /events", auth(d.Events.CreateEvent))
	mux.HandleFunc("GET /events/stats", d.Engagement.GlobalStats)
	mux.HandleFunc("GET /events/{eventID}", optional(d.Events.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(d.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(d.Events.DeleteEvent))
	mux.HandleFunc("GET /my-events", auth(d.Events.ListMyEvents))

	// Engagement
	mux.HandleFunc("POST /events/{eventID}/rsvp", auth(d.Engagement.RSVP))
	mux.HandleFunc("DELETE /events/{eventID}/rsvp", auth(d.Engagement.WithdrawRSVP))
	mux.HandleFunc("GET /events/{eventID}/attendees", d.Engagement.ListAttendees)
	mux.HandleFunc("POST /events/{eventID}/like", auth(d.Engagement.Like))
	mux.HandleFunc("DELETE /events/{eventID}/like", auth(d.Engagement.Unlike))
	mux.HandleFunc("GET /events/{eventID}/stats", d.Engagement.EventStats)
	mux.HandleFunc("GET /events/{eventID}/comments", auth(d.Engagement.ListComments))
	mux.HandleFunc("POST /events/{eventID}/comments", auth(d.Engagement.AddComment))
	mux.HandleFunc("DELETE /events/{eventID}/comments/{commentID}", auth(d.Engagement.DeleteComment))
	mux.HandleFunc("GET /events/{eventID}/reviews", auth(d.Engagement.ListReviews))
	mux.HandleFunc("POST /events/{eventID}/reviews", auth(d.Engagement.SubmitReview))
	mux.HandleFunc("GET /my-events/rsvp", auth(d.Engagement.ListMyRSVPEvents))
	mux.HandleFunc("GET /my-events/liked", auth(d.Engagement.ListMyLikedEvents))

	// Catalog
	mux.HandleFunc("GET /tags", d.Catalog.ListTags)
	mux.HandleFunc("GET /tags/{tagID}", d.Catalog.GetTag)
	mux.HandleFunc("GET /categories", d.Catalog.ListCategories)
	mux.HandleFunc("GET /categories/{categoryID}", d.Catalog.GetCategory)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.Recover(d.Logger, handler)
	handler = middleware.LoggingMiddleware(d.Logger, handler)
	handler = middleware.CORS(d.CORSAllowedOrigins, handler)
	return handler
}
