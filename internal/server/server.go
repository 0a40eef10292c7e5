package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/jonathan/plumber-matcher/internal/catalog"
	"github.com/jonathan/plumber-matcher/internal/config"
	"github.com/jonathan/plumber-matcher/internal/dataset"
	"github.com/jonathan/plumber-matcher/internal/db"
	"github.com/jonathan/plumber-matcher/internal/matching"
	"github.com/jonathan/plumber-matcher/internal/server/middleware"
	"github.com/jonathan/plumber-matcher/internal/server/ratelimit"
	"github.com/jonathan/plumber-matcher/internal/types"
)

// catalogSchemaFile is the JSON Schema catalog snapshots are validated against.
const catalogSchemaFile = "attribute_catalog.schema.json"

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	engine      *matching.Engine
	maxResults  int
	schemaPath  string
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler

	// mu serializes catalog mutations (admin attribute API) against the
	// read paths that score with the registry.
	mu sync.RWMutex
}

// Config holds server configuration
type Config struct {
	Addr        string
	Dataset     string
	SchemaDir   string
	DatabaseURL string
	MaxResults  int
}

// New creates a new server instance. The database is optional: without a
// DATABASE_URL the matching endpoints still work from the CSV dataset, and
// the account-backed endpoints report 503.
func New(cfg Config) (*Server, error) {
	s := &Server{
		engine:     matching.NewEngine(catalog.NewRegistry()),
		maxResults: cfg.MaxResults,
	}

	if cfg.Dataset != "" {
		table, err := dataset.LoadCSV(cfg.Dataset)
		if err != nil {
			return nil, fmt.Errorf("failed to load plumber dataset: %w", err)
		}
		s.engine.LoadTable(table)
	}

	schemaDir := cfg.SchemaDir
	if schemaDir == "" {
		schemaDir = "schemas"
	}
	s.schemaPath = filepath.Join(schemaDir, catalogSchemaFile)

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		s.db = database

		passwordConfig, err := config.NewPasswordConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create password config: %w", err)
		}
		s.userService = NewUserService(database, passwordConfig)

		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
		s.authHandler = NewAuthHandler(s.userService, s.jwtService)
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Matching endpoints, served from the CSV dataset
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /options", s.handleOptions)
	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("POST /match/report", s.handleMatchReport)
	mux.HandleFunc("GET /attributes", s.handleListAttributes)
	mux.HandleFunc("GET /attributes/{name}", s.handleGetAttribute)

	// Accounts
	mux.HandleFunc("POST /auth/register", s.requireDB(s.handleRegister))
	mux.HandleFunc("POST /auth/login", s.requireDB(s.handleLogin))
	mux.HandleFunc("PUT /auth/password", s.authed(s.handleUpdatePassword))

	// Bookings and reviews
	mux.HandleFunc("POST /plumbers/available", s.requireDB(s.handleAvailability))
	mux.HandleFunc("GET /plumbers/{id}/reviews", s.requireDB(s.handleListReviews))
	mux.HandleFunc("PUT /plumbers/me/availability", s.authed(s.handleUpdateAvailability, types.RolePlumber))
	mux.HandleFunc("POST /bookings", s.authed(s.handleCreateBooking, types.RoleCustomer))
	mux.HandleFunc("GET /bookings", s.authed(s.handleListBookings))
	mux.HandleFunc("POST /bookings/{id}/status", s.authed(s.handleUpdateBookingStatus))
	mux.HandleFunc("POST /reviews", s.authed(s.handleCreateReview, types.RoleCustomer))

	// Attribute administration
	mux.HandleFunc("GET /admin/attributes", s.authed(s.handleListAttributes, types.RoleAdmin))
	mux.HandleFunc("POST /admin/attributes", s.authed(s.handleCreateAttribute, types.RoleAdmin))
	mux.HandleFunc("PUT /admin/attributes/{name}", s.authed(s.handleUpdateAttribute, types.RoleAdmin))
	mux.HandleFunc("DELETE /admin/attributes/{name}", s.authed(s.handleDeleteAttribute, types.RoleAdmin))
	mux.HandleFunc("GET /admin/attributes/stats", s.authed(s.handleAttributeStats, types.RoleAdmin))
	mux.HandleFunc("POST /admin/attributes/test", s.authed(s.handleTestAttribute, types.RoleAdmin))
	mux.HandleFunc("GET /admin/catalog/export", s.authed(s.handleExportCatalog, types.RoleAdmin))
	mux.HandleFunc("POST /admin/catalog/import", s.authed(s.handleImportCatalog, types.RoleAdmin))
	mux.HandleFunc("GET /admin/overview", s.authed(s.handleOverview, types.RoleAdmin))

	return mux
}

// requireDB guards endpoints that cannot work without a database.
func (s *Server) requireDB(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.db == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "database not configured")
			return
		}
		next(w, r)
	}
}

// authed wraps a handler with JWT authentication and, when roles are given,
// role authorization. Authenticated endpoints all need the database.
func (s *Server) authed(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.db == nil || s.jwtService == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "database not configured")
			return
		}
		handler := http.Handler(next)
		if len(roles) > 0 {
			handler = middleware.RequireRole(roles...)(handler)
		}
		middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(handler).ServeHTTP(w, r)
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := map[string]any{
		"status":         "ok",
		"dataset_loaded": s.engine.Table() != nil,
		"database":       s.db != nil,
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Register(w, r)
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// handleUpdatePassword handles password update requests.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
