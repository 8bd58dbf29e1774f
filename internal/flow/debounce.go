package flow

import (
	"context"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/propertyplus/propclient/pkg/reqid"
)

// DefaultDebounceWait is the quiet period before a debounced call fires.
const DefaultDebounceWait = 400 * time.Millisecond

// Debouncer coalesces a burst of inputs into a single trailing-edge call:
// the function runs once, a full quiet period after the last trigger.
// Each trigger cancels the pending one.
type Debouncer struct {
	wait  time.Duration
	clock Clock

	mu  sync.Mutex
	gen uint64
}

// NewDebouncer returns a debouncer with the given quiet period. A zero
// wait falls back to DefaultDebounceWait; a nil clock uses the real one.
func NewDebouncer(wait time.Duration, clock Clock) *Debouncer {
	if wait <= 0 {
		wait = DefaultDebounceWait
	}
	if clock == nil {
		clock = RealClock
	}
	return &Debouncer{wait: wait, clock: clock}
}

// Trigger schedules fn to run after the quiet period, cancelling any
// previously pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.mu.Unlock()

	// The timer is registered here, not in the goroutine, so the quiet
	// period is measured from the trigger itself.
	timer := d.clock.After(d.wait)

	go func() {
		<-timer
		d.mu.Lock()
		current := d.gen == gen
		d.mu.Unlock()
		if current {
			fn()
		}
	}()
}

// Cancel drops any pending call without scheduling a new one.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.gen++
	d.mu.Unlock()
}

// MinUniqueLength is the shortest value the uniqueness check will send to
// the backend. Anything shorter is invalid without a network call.
const MinUniqueLength = 3

// CheckFunc asks the backend whether a candidate value is still available.
type CheckFunc func(ctx context.Context, value string) (available bool, err error)

// CheckView renders the progress and outcome of a uniqueness check.
type CheckView interface {
	// ShowChecking toggles the "checking" indicator.
	ShowChecking(on bool)
	// ShowAvailability reports the outcome inline.
	ShowAvailability(available bool, message string)
}

// UniqueChecker drives the debounced username-availability check. The
// latest input wins: results for a superseded input are discarded, and
// the cached availability flag only ever reflects the newest value.
type UniqueChecker struct {
	check    CheckFunc
	view     CheckView
	debounce *Debouncer
	log      *slog.Logger

	mu        sync.Mutex
	token     reqid.Token
	available bool
}

// NewUniqueChecker wires a checker around the given backend call and view.
func NewUniqueChecker(check CheckFunc, view CheckView, debounce *Debouncer, log *slog.Logger) *UniqueChecker {
	if debounce == nil {
		debounce = NewDebouncer(DefaultDebounceWait, RealClock)
	}
	if log == nil {
		log = slog.Default()
	}
	return &UniqueChecker{check: check, view: view, debounce: debounce, log: log}
}

// Input feeds a new candidate value. Values below MinUniqueLength runes
// short-circuit to unavailable without touching the network; otherwise a
// single request fires after the quiet period.
func (u *UniqueChecker) Input(ctx context.Context, value string) {
	u.debounce.Cancel()

	if utf8.RuneCountInString(value) < MinUniqueLength {
		u.setAvailable(reqid.New(), false)
		u.view.ShowChecking(false)
		u.view.ShowAvailability(false, "Username must be at least 3 characters.")
		return
	}

	token := reqid.New()
	u.mu.Lock()
	u.token = token
	u.mu.Unlock()

	u.view.ShowChecking(true)
	u.debounce.Trigger(func() {
		available, err := u.check(ctx, value)
		if !u.setAvailable(token, available && err == nil) {
			return
		}
		u.view.ShowChecking(false)
		switch {
		case err != nil:
			u.log.Error("username check failed", "error", err)
			u.view.ShowAvailability(false, "Could not check the username. Please try again.")
		case available:
			u.view.ShowAvailability(true, "Username is available.")
		default:
			u.view.ShowAvailability(false, "Username is already taken.")
		}
	})
}

// Available reports the cached outcome for the newest input; it feeds the
// gating predicate of the surrounding form.
func (u *UniqueChecker) Available() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.available
}

// setAvailable records the outcome if token is still the newest one.
func (u *UniqueChecker) setAvailable(token reqid.Token, available bool) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.token.Supersedes(token) {
		return false
	}
	u.token = token
	u.available = available
	return true
}
