package ratelimit

import (
	"context"
	"sync/atomic"
	"time"
)

// Pacer spaces out calls to a shared upstream.
// Every Wait blocks for the configured delay, so a caller that waits before
// each request never issues two requests closer together than the delay.
type Pacer struct {
	delay time.Duration
	waits atomic.Int64
}

// NewPacer creates a pacer; a zero or negative delay disables waiting
func NewPacer(delay time.Duration) *Pacer {
	if delay < 0 {
		delay = 0
	}
	return &Pacer{delay: delay}
}

// Delay returns the configured spacing
func (p *Pacer) Delay() time.Duration {
	return p.delay
}

// Wait blocks for the pacing delay or until ctx is done
func (p *Pacer) Wait(ctx context.Context) error {
	p.waits.Add(1)

	if p.delay == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Waits returns how many times Wait was called
func (p *Pacer) Waits() int {
	return int(p.waits.Load())
}
