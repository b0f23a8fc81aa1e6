package demo

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// Server serves the fixture dataset over the TrueTickets search API.
type Server struct {
	addr        string
	apiKey      string
	store       *Store
	logger      *slog.Logger
	router      chi.Router
	server      *http.Server
	rateLimiter *rateLimiter
}

// NewServer creates a demo server bound to addr. If apiKey is non-empty,
// requests must carry it in the X-API-Key header.
func NewServer(addr, apiKey string, store *Store, logger *slog.Logger) *Server {
	s := &Server{
		addr:   addr,
		apiKey: apiKey,
		store:  store,
		logger: logger,
	}
	s.router = s.setupRouter()
	return s
}

// setupRouter configures the chi router with all routes and middleware.
func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(s.loggerMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	// Rate limiting (20 req/sec with burst of 40, per client)
	s.rateLimiter = newRateLimiter(20, 40)
	r.Use(rateLimitMiddleware(s.rateLimiter))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/tickets", s.handleTickets)
		r.Get("/customers", s.handleCustomers)
		r.Get("/recent_tickets_list", s.handleRecentTickets)
	})

	return r
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("starting demo server", "addr", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("shutting down demo server")
	return s.server.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// loggerMiddleware logs HTTP requests.
func (s *Server) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// authMiddleware validates the API key.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) != 1 {
			s.logger.Warn("unauthorized request",
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid or missing API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// ticketEnvelope wraps a single-ticket lookup. A null ticket means the number
// does not exist.
type ticketEnvelope struct {
	Ticket *Ticket `json:"ticket"`
}

// errorResponse is the error body shape.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// handleTickets serves both single-number lookups and subject searches,
// selected by query parameter.
func (s *Server) handleTickets(w http.ResponseWriter, r *http.Request) {
	if numberParam := r.URL.Query().Get("number"); numberParam != "" {
		number, err := strconv.ParseInt(numberParam, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "number must be an integer")
			return
		}
		writeJSON(w, http.StatusOK, ticketEnvelope{Ticket: s.store.TicketByNumber(number)})
		return
	}

	if query := r.URL.Query().Get("query"); query != "" {
		writeJSON(w, http.StatusOK, ticketList(s.store.TicketsByQuery(query)))
		return
	}

	writeError(w, http.StatusBadRequest, "bad_request", "either number or query is required")
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	if digits := r.URL.Query().Get("phone_number"); digits != "" {
		writeJSON(w, http.StatusOK, customerList(s.store.CustomersByPhone(digits)))
		return
	}

	if query := r.URL.Query().Get("query"); query != "" {
		writeJSON(w, http.StatusOK, customerList(s.store.CustomersByQuery(query)))
		return
	}

	writeError(w, http.StatusBadRequest, "bad_request", "either phone_number or query is required")
}

func (s *Server) handleRecentTickets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ticketList(s.store.RecentTickets()))
}

// ticketList keeps empty results encoding as [] rather than null.
func ticketList(tickets []Ticket) []Ticket {
	if tickets == nil {
		return []Ticket{}
	}
	return tickets
}

func customerList(customers []Customer) []Customer {
	if customers == nil {
		return []Customer{}
	}
	return customers
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, err string, message string) {
	writeJSON(w, status, errorResponse{Error: err, Message: message})
}

// rateLimiter provides per-client rate limiting.
type rateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	return &rateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	rl.mu.Unlock()
	return limiter.Allow()
}

// rateLimitMiddleware rate limits requests by client address.
func rateLimitMiddleware(limiter *rateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(r.RemoteAddr) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate_limit_exceeded","message":"Too many requests. Please slow down."}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
