// Package notify keeps the unread-notification badge current by polling
// the backend on a fixed interval for as long as its owning scope lives.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the poll cadence for the notification count.
const DefaultInterval = 30 * time.Second

// CountFunc fetches the current unread count.
type CountFunc func(ctx context.Context) (int, error)

// Poller fetches the unread count on an interval and pushes it to a
// callback. Fetch failures are logged and the poller keeps going; it stops
// when its context is cancelled or Stop is called.
type Poller struct {
	fetch    CountFunc
	interval time.Duration
	push     func(count int)
	log      *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller builds a poller. A zero interval falls back to
// DefaultInterval.
func NewPoller(fetch CountFunc, interval time.Duration, push func(count int), log *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Poller{fetch: fetch, interval: interval, push: push, log: log}
}

// Start begins polling, with the first fetch issued immediately. Calling
// Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	count, err := p.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.log.Error("notification poll failed", "error", err)
		return
	}
	p.push(count)
}

// Stop cancels the poll loop and waits for it to exit. Safe to call more
// than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
