package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"btcwallet/internal/config"

	"github.com/sirupsen/logrus"
)

const defaultShutdownTimeout = 10 * time.Second

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// NewServer builds the http.Server for handler; zero timeouts are left unset.
func NewServer(cfg config.HTTPServer, handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: seconds(cfg.ReadHeaderTimeoutS),
		ReadTimeout:       seconds(cfg.ReadTimeoutS),
		WriteTimeout:      seconds(cfg.WriteTimeoutS),
		IdleTimeout:       seconds(cfg.IdleTimeoutS),
	}
}

// Start runs HTTP server and shuts it down gracefully on ctx cancellation.
func Start(ctx context.Context, cfg config.HTTPServer, handler http.Handler) error {
	listener, listenErr := net.Listen("tcp", ":"+cfg.Port)
	if listenErr != nil {
		return listenErr
	}
	return serve(ctx, cfg, NewServer(cfg, handler), listener)
}

func serve(ctx context.Context, cfg config.HTTPServer, server *http.Server, listener net.Listener) error {
	logrus.Infof("✅ HTTP server listening on %s", listener.Addr())

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownTimeout := seconds(cfg.ShutdownTimeoutS)
		if shutdownTimeout <= 0 {
			shutdownTimeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			return shutdownErr
		}
		return nil
	case serveErr := <-errCh:
		return serveErr
	}
}
