package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/postline/postline-auth/internal/model"
)

var _ model.Server = (*HTTPServer)(nil)

// HTTPServer runs the HTTP API on a listener produced by the configured
// security layer.
type HTTPServer struct {
	srv  *http.Server
	addr string
}

func NewHTTPServer(handler http.Handler, addr string) *HTTPServer {
	return &HTTPServer{
		srv:  &http.Server{Handler: handler},
		addr: addr,
	}
}

// Start blocks serving requests until Stop is called or the listener fails.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	if err := s.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully, honoring the context deadline.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *HTTPServer) Address() string {
	return s.addr
}
