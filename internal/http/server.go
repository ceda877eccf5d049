package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaekwang-park/todo-dashboard/internal/middleware"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer wraps the router in the middleware chain:
// request id -> recovery -> logging -> auth -> router.
func NewServer(port string, logger *slog.Logger, auth *middleware.Auth, svc Services) *Server {
	router := NewRouter(svc)

	chain := middleware.RequestID(
		middleware.Recovery(logger)(
			middleware.Logging(logger)(
				auth.Middleware(router),
			),
		),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", port),
			Handler:           chain,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
