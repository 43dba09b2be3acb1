// README: HTTP server; owns the gin engine and the net/http listener lifecycle.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"tripplanner/internal/http/handlers"
	"tripplanner/internal/metrics"
	"tripplanner/internal/session"
)

type ServerDeps struct {
	Planner    handlers.Planner
	Sessions   session.Store
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
	SessionTTL time.Duration
}

type Server struct {
	planner    handlers.Planner
	sessions   session.Store
	metrics    *metrics.Metrics
	log        *slog.Logger
	sessionTTL time.Duration

	srv *http.Server
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		planner:    deps.Planner,
		sessions:   deps.Sessions,
		metrics:    deps.Metrics,
		log:        log,
		sessionTTL: deps.SessionTTL,
	}
}

// Start listens on addr and serves in the background. Bind errors are returned synchronously.
func (s *Server) Start(addr string) error {
	handler, err := s.Routes()
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.srv = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server stopped", "err", err)
		}
	}()
	s.log.Info("http server listening", "addr", ln.Addr().String())
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
