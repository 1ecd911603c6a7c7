package relay

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 30 * time.Second

// Server runs the relay HTTP server
type Server struct {
	srv    *http.Server
	logger zerolog.Logger
}

// NewServer creates a server for handler on addr
func NewServer(addr string, handler http.Handler, logger zerolog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 15 * time.Second,
			ReadTimeout:       60 * time.Second,
			// No write timeout: a reply streams for as long as upstream sends.
			WriteTimeout: 0,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info().Msg("server stopped")
	return <-errCh
}
