// Package http exposes the JSON API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	applog "github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/log"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/middleware/ratelimit"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/middleware/trace"
	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/services"
)

// Deps bundles the services the API serves.
type Deps struct {
	Transactions *services.TransactionService
	Rentals      *services.RentalService
	Tasks        *services.TaskService
	Investments  *services.InvestmentService
	Reports      *services.ReportService
	Calendars    *services.CalendarService
	Exports      *services.ExportService
	Entities     *services.EntityService
	Recurring    *services.RecurringService
}

type Server struct {
	httpServer *http.Server
	deps       Deps
	limiter    *ratelimit.Limiter
	tracer     *trace.Middleware
}

func NewServer(port int, deps Deps) *Server {
	logger := applog.New(applog.DefaultConfig())
	s := &Server{
		deps:    deps,
		limiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		tracer:  trace.NewMiddleware(logger, clientIP),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(applog.Middleware(logger.WithComponent(applog.ComponentHTTP)))
	r.Use(s.tracer.Middleware)
	r.Use(s.limiter.Middleware(clientIP))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/entities", func(r chi.Router) {
			r.Post("/", s.handleCreateEntity)
			r.Get("/", s.handleListEntities)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", s.handleCreateCategory)
			r.Get("/", s.handleListCategories)
		})

		r.Route("/recurring", func(r chi.Router) {
			r.Post("/tasks", s.handleCreateRecurringTask)
			r.Post("/transactions", s.handleCreateRecurringTransaction)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", s.handleCreateTransaction)
			r.Get("/", s.handleListTransactions)
			r.Get("/{id}", s.handleGetTransaction)
			r.Patch("/{id}/pay", s.handlePayTransaction)
			r.Delete("/{id}", s.handleDeleteTransaction)
		})

		r.Route("/rentals", func(r chi.Router) {
			r.Post("/", s.handleCreateRental)
			r.Get("/", s.handleListRentals)
			r.Get("/{id}", s.handleGetRental)
			r.Delete("/{id}", s.handleDeleteRental)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", s.handleCreateTask)
			r.Get("/", s.handleListTasks)
			r.Patch("/{id}/complete", s.handleCompleteTask)
			r.Delete("/{id}", s.handleDeleteTask)
		})

		r.Route("/investments", func(r chi.Router) {
			r.Post("/", s.handleCreateInvestment)
			r.Get("/", s.handleListInvestments)
			r.Post("/refresh", s.handleRefreshInvestments)
		})

		r.Get("/reports", s.handleReport)
		r.Post("/reports/export", s.handleExportReport)
		r.Get("/reports/export/{id}", s.handleExportStatus)
		r.Get("/calendar", s.handleCalendar)
	})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start blocks serving requests until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops background middleware.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"requests": s.tracer.TotalRequests(),
	})
}

// clientIP prefers the X-Forwarded-For chain over the socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
