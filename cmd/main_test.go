package main

import (
	"context"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/taifexpulse/internal/domain/models"
	"github.com/guttosm/taifexpulse/internal/resample"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{})
	go func() {
		gracefulShutdown(context.Background(), srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
		// success
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

func TestBuildOptions(t *testing.T) {
	opts, err := buildOptions("OPTION", "TXO", "15T", "right", "afterhours", 4, true)
	if err != nil {
		t.Fatalf("buildOptions: %v", err)
	}
	if opts.Class != models.ClassOption || opts.ItemCode != "TXO" {
		t.Errorf("unexpected class/item: %+v", opts)
	}
	if opts.Freq != 15*time.Minute {
		t.Errorf("freq = %v, want 15m", opts.Freq)
	}
	if opts.Label != resample.LabelRight || opts.Session != resample.SessionAfterHours {
		t.Errorf("unexpected label/session: %+v", opts)
	}
	if opts.Parallel != 4 || !opts.Force {
		t.Errorf("unexpected parallel/force: %+v", opts)
	}

	bad := []struct {
		name                                string
		class, item, freq, label, session string
	}{
		{"class", "STOCK", "TX", "D", "left", "intraday"},
		{"freq", "FUTURE", "TX", "0T", "left", "intraday"},
		{"label", "FUTURE", "TX", "D", "middle", "intraday"},
		{"session", "FUTURE", "TX", "D", "left", "overnight"},
	}
	for _, tc := range bad {
		if _, err := buildOptions(tc.class, tc.item, tc.freq, tc.label, tc.session, 0, false); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
