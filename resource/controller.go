// Package resource governs how many solves run at once and how fast new
// requests are admitted.
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

var (
	// ErrRateLimited is returned when the request rate is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrBusy is returned when no solve slot is free.
	ErrBusy = errors.New("all solve slots busy")
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentSolves is the maximum number of solves running at once.
	// If 0, defaults to 1.
	MaxConcurrentSolves int64

	// RequestsPerSecond is the sustained admission rate.
	// If 0, unlimited.
	RequestsPerSecond float64

	// Burst is the number of requests admitted at once above the sustained
	// rate. If 0, defaults to max(1, RequestsPerSecond).
	Burst int
}

// Controller manages solve concurrency and request admission.
type Controller struct {
	cfg Config

	// Concurrency
	solveSem *semaphore.Weighted
	inFlight atomic.Int64

	// Admission
	limiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentSolves <= 0 {
		cfg.MaxConcurrentSolves = 1
	}

	c := &Controller{
		cfg:      cfg,
		solveSem: semaphore.NewWeighted(cfg.MaxConcurrentSolves),
	}

	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = max(1, int(cfg.RequestsPerSecond))
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return c
}

// Config returns the effective limits.
func (c *Controller) Config() Config {
	return c.cfg
}

// Admit reports whether a new request may proceed right now.
// It returns ErrRateLimited without blocking if the rate is exceeded.
func (c *Controller) Admit() error {
	if c == nil || c.limiter == nil {
		return nil
	}
	if !c.limiter.Allow() {
		return ErrRateLimited
	}
	return nil
}

// WaitAdmit blocks until the rate limit admits a request. It returns
// ctx.Err() if ctx is canceled, and ErrRateLimited if admission would not
// happen before the ctx deadline.
func (c *Controller) WaitAdmit(ctx context.Context) error {
	if c == nil || c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return nil
}

// AcquireSolve reserves a solve slot.
// Blocks until a slot is free or ctx is canceled.
func (c *Controller) AcquireSolve(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.solveSem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.inFlight.Add(1)
	return nil
}

// TryAcquireSolve attempts to reserve a solve slot without blocking.
// It reports false if every slot is taken.
func (c *Controller) TryAcquireSolve() bool {
	if c == nil {
		return true
	}
	if !c.solveSem.TryAcquire(1) {
		return false
	}
	c.inFlight.Add(1)
	return true
}

// ReleaseSolve releases a solve slot.
func (c *Controller) ReleaseSolve() {
	if c == nil {
		return
	}
	c.inFlight.Add(-1)
	c.solveSem.Release(1)
}

// InFlight returns the number of solves currently holding a slot.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}
