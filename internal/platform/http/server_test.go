package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"btcwallet/internal/config"

	"github.com/stretchr/testify/require"
)

func TestNewServer_AppliesTimeouts(t *testing.T) {
	srv := NewServer(config.HTTPServer{
		ReadHeaderTimeoutS: 2,
		ReadTimeoutS:       3,
		WriteTimeoutS:      4,
		IdleTimeoutS:       5,
	}, http.NotFoundHandler())

	require.Equal(t, 2*time.Second, srv.ReadHeaderTimeout)
	require.Equal(t, 3*time.Second, srv.ReadTimeout)
	require.Equal(t, 4*time.Second, srv.WriteTimeout)
	require.Equal(t, 5*time.Second, srv.IdleTimeout)
}

func TestServe_ServesUntilContextCanceled(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := config.HTTPServer{ShutdownTimeoutS: 1}
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, NewServer(cfg, handler), listener) }()

	resp, err := http.Get("http://" + listener.Addr().String())
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStart_InvalidPort(t *testing.T) {
	err := Start(context.Background(), config.HTTPServer{Port: "not-a-port"}, http.NotFoundHandler())
	require.Error(t, err)
}
