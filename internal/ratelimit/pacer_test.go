package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/ratelimit"
)

func TestPacer_ZeroDelayReturnsImmediately(t *testing.T) {
	p := ratelimit.NewPacer(0)

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("zero delay pacer took %v", elapsed)
	}
	if p.Waits() != 100 {
		t.Errorf("expected 100 waits, got %d", p.Waits())
	}
}

func TestPacer_NegativeDelayClamped(t *testing.T) {
	p := ratelimit.NewPacer(-5 * time.Second)
	if p.Delay() != 0 {
		t.Errorf("expected delay 0, got %v", p.Delay())
	}
}

func TestPacer_WaitsForDelay(t *testing.T) {
	p := ratelimit.NewPacer(20 * time.Millisecond)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("expected to wait at least 20ms, waited %v", elapsed)
	}
}

func TestPacer_CanceledContext(t *testing.T) {
	p := ratelimit.NewPacer(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Wait(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
