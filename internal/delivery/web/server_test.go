package web

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestServerShutsDownOnCancel(t *testing.T) {
	srv := NewServer("127.0.0.1:0", http.NotFoundHandler(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestServerListenError(t *testing.T) {
	srv := NewServer("127.0.0.1:-1", http.NotFoundHandler(), zap.NewNop())

	if err := srv.Run(context.Background()); err == nil {
		t.Error("Run() error = nil, want listen error")
	}
}
