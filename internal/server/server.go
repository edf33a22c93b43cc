package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"countdown_timer/internal/config"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

const (
	maxHeaderBytes         = 1 << 20 // 1 MB
	readHeaderTimeout      = 10 * time.Second
	idleTimeout            = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// New builds a server for cfg. No write timeout is set: /ws connections are
// long-lived and manage their own write deadlines.
func New(cfg config.HTTPConfig, handler http.Handler) *Server {
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              normalizeAddr(cfg.Port),
			Handler:           handler,
			MaxHeaderBytes:    maxHeaderBytes,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
		shutdownTimeout: timeout,
	}
}

// normalizeAddr accepts "8080", ":8080" or "host:8080".
func normalizeAddr(port string) string {
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run blocks serving HTTP until Shutdown. A clean shutdown returns nil.
func (s *Server) Run() error {
	return s.serve(s.httpServer.ListenAndServe)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(l net.Listener) error {
	return s.serve(func() error { return s.httpServer.Serve(l) })
}

func (s *Server) serve(fn func() error) error {
	if err := fn(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests,
// at most the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
