// Package httpapi serves the development backend over HTTP/JSON with the
// routes, payloads and status codes of the platform API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/logging"
	"github.com/dmitrijs2005/eventadmin/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// Services groups the business logic the handlers call into.
type Services struct {
	Admins       *services.AdminService
	Events       *services.EventService
	Posts        *services.PostService
	Users        *services.UserService
	Transactions *services.TransactionService
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	svc     Services
}

func NewHTTPServer(a string, l logging.Logger, svc Services) *HTTPServer {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		svc:     svc,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
