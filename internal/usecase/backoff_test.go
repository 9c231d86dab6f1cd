package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lftbrito/bip-teste-integrado/internal/usecase"
)

func TestLinearBackoff_WaitGrowsWithAttempt(t *testing.T) {
	backoff := usecase.LinearBackoff(10 * time.Millisecond)

	start := time.Now()
	if err := backoff(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected at least 30ms wait for attempt 3, got %s", elapsed)
	}
}

func TestLinearBackoff_CancelledContext(t *testing.T) {
	backoff := usecase.LinearBackoff(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := backoff(ctx, 1)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancelled backoff must return promptly, took %s", elapsed)
	}
}

func TestNoBackoff(t *testing.T) {
	backoff := usecase.NoBackoff()

	if err := backoff(context.Background(), 5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := backoff(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
