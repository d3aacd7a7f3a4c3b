// Package api provides the HTTP API server implementation.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/event-monitor/internal/logging"
	"github.com/event-monitor/internal/models"
	"github.com/event-monitor/internal/service"
	"github.com/event-monitor/internal/types"
	"github.com/gorilla/mux"
)

// Service interfaces for dependency injection and testing

// PreferenceServiceInterface defines the preference store operations exposed over HTTP
type PreferenceServiceInterface interface {
	Current(ctx context.Context, sess models.Session) service.PreferenceView
	History(ctx context.Context, sess models.Session) []models.SaveHistoryEntry
	Summary(ctx context.Context, sess models.Session) service.PreferenceSummary
	Update(ctx context.Context, sess models.Session, settings models.UserSettings) (*service.UpdateResult, error)
	SetWishListKeywords(ctx context.Context, sess models.Session, keywords []string) (*service.UpdateResult, error)
	AddMonitorURL(ctx context.Context, sess models.Session, url string) (*service.UpdateResult, error)
	RemoveMonitorURL(ctx context.Context, sess models.Session, id int64) (*service.UpdateResult, error)
	AddCustomCategory(ctx context.Context, sess models.Session, name string) (*service.UpdateResult, error)
	RemoveCustomCategory(ctx context.Context, sess models.Session, name string) (*service.UpdateResult, error)
	HideEvent(ctx context.Context, sess models.Session, id int64) (*service.SaveResult, error)
	UnhideEvent(ctx context.Context, sess models.Session, id int64) (*service.SaveResult, error)
	ClearAll(ctx context.Context, sess models.Session) (*service.SaveResult, error)
}

// EventServiceInterface defines the event filter operations exposed over HTTP
type EventServiceInterface interface {
	VisibleEvents(ctx context.Context, sess models.Session, window types.DateWindow, now time.Time) []models.Event
	LiveEvents(ctx context.Context, sess models.Session, window types.DateWindow, now time.Time) []models.EventView
	WishListEvents(ctx context.Context, sess models.Session, now time.Time) []models.EventView
}

// AccountServiceInterface defines the account operations exposed over HTTP
type AccountServiceInterface interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, username, password string) (*service.AuthResult, error)
	ParseSession(token string) (models.Session, error)
}

// Server represents the HTTP API server.
type Server struct {
	router      *mux.Router
	httpServer  *http.Server
	preferences PreferenceServiceInterface
	events      EventServiceInterface
	accounts    AccountServiceInterface
	logger      *logging.Logger
	config      *ServerConfig
	now         func() time.Time
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RateLimitRPS    int // Requests per second per user (or per IP before login)
	RateLimitBurst  int
}

// NewServer creates a new API server instance.
func NewServer(
	config *ServerConfig,
	preferences PreferenceServiceInterface,
	events EventServiceInterface,
	accounts AccountServiceInterface,
	logger *logging.Logger,
) *Server {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	s := &Server{
		router:      mux.NewRouter(),
		preferences: preferences,
		events:      events,
		accounts:    accounts,
		logger:      logger.WithField("component", "api"),
		config:      config,
		now:         time.Now,
	}

	s.setupRouter()

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() {
	rateLimiter := NewRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst)

	// Set up middleware (order matters!)
	s.router.Use(LoggingMiddleware(s.logger))
	s.router.Use(RecoveryMiddleware)
	s.router.Use(CORSMiddleware)
	s.router.Use(CompressionMiddleware)

	s.setupRoutes(rateLimiter)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes(rateLimiter *RateLimiter) {
	// Health check endpoint
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	// Auth endpoints are limited per client address
	auth := api.NewRoute().Subrouter()
	auth.Use(RateLimitMiddleware(rateLimiter))
	auth.HandleFunc("/auth/register", s.handleRegister).Methods("POST")
	auth.HandleFunc("/auth/login", s.handleLogin).Methods("POST")

	// Everything else needs a session and is limited per user
	protected := api.NewRoute().Subrouter()
	protected.Use(SessionMiddleware(s.accounts))
	protected.Use(RateLimitMiddleware(rateLimiter))

	// Preference endpoints
	protected.HandleFunc("/preferences", s.handleGetPreferences).Methods("GET")
	protected.HandleFunc("/preferences", s.handleUpdatePreferences).Methods("PUT")
	protected.HandleFunc("/preferences", s.handleClearPreferences).Methods("DELETE")
	protected.HandleFunc("/preferences/summary", s.handleGetSummary).Methods("GET")
	protected.HandleFunc("/preferences/history", s.handleGetHistory).Methods("GET")
	protected.HandleFunc("/preferences/wishlist", s.handleSetWishList).Methods("PUT")
	protected.HandleFunc("/preferences/monitor-urls", s.handleAddMonitorURL).Methods("POST")
	protected.HandleFunc("/preferences/monitor-urls/{id}", s.handleRemoveMonitorURL).Methods("DELETE")
	protected.HandleFunc("/preferences/categories", s.handleAddCategory).Methods("POST")
	protected.HandleFunc("/preferences/categories/{name}", s.handleRemoveCategory).Methods("DELETE")

	// Event endpoints
	protected.HandleFunc("/events", s.handleLiveEvents).Methods("GET")
	protected.HandleFunc("/events/wishlist", s.handleWishListEvents).Methods("GET")
	protected.HandleFunc("/events/calendar.ics", s.handleCalendar).Methods("GET")
	protected.HandleFunc("/events/{id}/hide", s.handleHideEvent).Methods("POST")
	protected.HandleFunc("/events/{id}/hide", s.handleUnhideEvent).Methods("DELETE")

	// CORS preflight for any path
	s.router.PathPrefix("/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

// StatsProvider is implemented by preference services that track save outcomes
type StatsProvider interface {
	Stats() *service.SaveStats
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":  "healthy",
		"service": "event-monitor",
	}
	if sp, ok := s.preferences.(StatsProvider); ok {
		body["saves"] = sp.Stats()
	}
	respondJSON(w, http.StatusOK, body)
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Infof("Starting API server on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.httpServer.Shutdown(ctx)
}
