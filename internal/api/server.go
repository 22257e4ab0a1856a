// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the composition root for the chi router.
  - Only this package and cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/reelhub/internal/library/favorite"
	"github.com/taibuivan/reelhub/internal/library/review"
	"github.com/taibuivan/reelhub/internal/platform/apperr"
	"github.com/taibuivan/reelhub/internal/platform/config"
	"github.com/taibuivan/reelhub/internal/platform/constants"
	"github.com/taibuivan/reelhub/internal/platform/middleware"
	"github.com/taibuivan/reelhub/internal/platform/respond"
	"github.com/taibuivan/reelhub/internal/users/account"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	logger     *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 503 while a dependency is down.
	Readiness http.HandlerFunc

	// Account serves signup, signin, password and profile routes.
	Account *account.Handler

	// Favorite serves the caller's favorites.
	Favorite *favorite.Handler

	// Review serves public and authored reviews.
	Review *review.Handler
}

// # Server Initialization

/*
NewServer constructs the chi router with the full middleware chain and
registers all route groups.

requireAccount is the token guard; routes that need an authenticated caller
receive it from here. ctx bounds the background sweeper of the IP limiter.
*/
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, requireAccount func(http.Handler) http.Handler, h Handlers) *Server {
	router := chi.NewRouter()

	// # Middleware Chain
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PanicRecovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	router.Use(chimw.CleanPath)
	router.Use(chimw.Timeout(cfg.RequestTimeout))

	router.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Route"))
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.MethodNotAllowed())
	})

	// # Infrastructure Endpoints
	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)

	// # Application API
	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/user", func(user chi.Router) {
			h.Account.RegisterRoutes(user, requireAccount)

			user.Route("/favorites", func(favorites chi.Router) {
				h.Favorite.RegisterRoutes(favorites, requireAccount)
			})
		})

		api.Route("/reviews", func(reviews chi.Router) {
			h.Review.RegisterRoutes(reviews, requireAccount)
		})
	})

	return &Server{
		router: router,
		logger: logger,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the root router.
func (server *Server) Handler() http.Handler {
	return server.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server. It blocks until the server is closed
// or an error occurs.
func (server *Server) ListenAndServe() error {
	server.logger.Info("server_starting", slog.String("addr", server.httpServer.Addr))
	return server.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (server *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.httpServer.Shutdown(ctx)
}
