package flow

import (
	"context"
	"time"
)

// DefaultResendWait is the minimum interval between OTP (re)send requests.
const DefaultResendWait = 30 * time.Second

// Cooldown enforces a client-side wait between repeated requests of the
// same kind. It is advisory only; the backend rate limiter is the
// authority.
type Cooldown struct {
	wait     time.Duration
	now      func() time.Time
	deadline time.Time
}

// NewCooldown returns a cooldown of the given length. A zero wait falls
// back to DefaultResendWait; a nil now falls back to time.Now.
func NewCooldown(wait time.Duration, now func() time.Time) *Cooldown {
	if wait <= 0 {
		wait = DefaultResendWait
	}
	if now == nil {
		now = time.Now
	}
	return &Cooldown{wait: wait, now: now}
}

// Start sets the deadline to now plus the wait. Starting while already
// running resets the deadline; deadlines never stack.
func (c *Cooldown) Start() {
	c.deadline = c.now().Add(c.wait)
}

// Active reports whether the cooldown is still running.
func (c *Cooldown) Active() bool {
	return c.now().Before(c.deadline)
}

// Remaining returns the time left until the cooldown expires, or zero.
func (c *Cooldown) Remaining() time.Duration {
	r := c.deadline.Sub(c.now())
	if r < 0 {
		return 0
	}
	return r
}

// Watch renders the remaining time on every tick until the cooldown
// expires, then calls done once. The caller supplies the tick source
// (time.Tick(time.Second) in production) so tests control the cadence.
// Watch returns when the cooldown ends or ctx is cancelled.
func (c *Cooldown) Watch(ctx context.Context, ticks <-chan time.Time, render func(remaining time.Duration), done func()) {
	if render != nil {
		render(c.Remaining())
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			if !c.Active() {
				if done != nil {
					done()
				}
				return
			}
			if render != nil {
				render(c.Remaining())
			}
		}
	}
}
