package flow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/propertyplus/propclient/pkg/reqid"
)

// State is the OTP controller's progress through a single verification
// step.
type State int

const (
	// StateIdle is the state before the code has been sent.
	StateIdle State = iota
	// StateAwaitingInput means a code was sent and cells accept digits.
	StateAwaitingInput
	// StateSubmitting means a verification request is in flight.
	StateSubmitting
	// StateVerified means the backend accepted the code.
	StateVerified
	// StateRejected means the backend (or a local check) refused the code.
	// The controller returns to StateAwaitingInput immediately after.
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateSubmitting:
		return "submitting"
	case StateVerified:
		return "verified"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// DefaultVerifiedDwell is the pause between marking the cells verified and
// advancing the flow, long enough for the user to perceive success.
const DefaultVerifiedDwell = 200 * time.Millisecond

// Verifier submits a complete code for server-side confirmation. A nil
// error means the code was accepted. A *RejectedError carries the
// backend's refusal message; any other error is a transport failure.
type Verifier func(ctx context.Context, code string) error

// Sender requests a fresh code be delivered to the user.
type Sender func(ctx context.Context) error

// RejectedError marks a server-side rejection of a well-formed code. Its
// message is surfaced to the user verbatim.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

// View is the presentation surface an OTPController drives. Implementations
// must not call back into the controller.
type View interface {
	// FocusCell moves input focus to cell i.
	FocusCell(i int)
	// MarkVerified flags the cells as accepted.
	MarkVerified()
	// MarkRejected flags the cells as refused and shows the message inline.
	MarkRejected(message string)
	// ShowError surfaces a non-cell error (e.g. a failed resend).
	ShowError(message string)
	// ShowCountdown renders the remaining resend wait.
	ShowCountdown(remaining time.Duration)
	// ResendAvailable re-enables the resend action.
	ResendAvailable()
}

// OTPConfig carries the collaborators an OTPController needs. Verifier,
// Sender and View are required.
type OTPConfig struct {
	Verifier Verifier
	Sender   Sender
	View     View
	// Advance is called once after the verified dwell.
	Advance func()
	// Cooldown gates resends. Defaults to a 30s cooldown on the real clock.
	Cooldown *Cooldown
	// Dwell overrides DefaultVerifiedDwell.
	Dwell time.Duration
	Clock Clock
	Log   *slog.Logger
}

// OTPController gates progression through one verification step of a
// larger flow: it owns the entry cells, the submit lifecycle and the
// resend cooldown. Each submission is tagged with a fresh request token;
// a result arriving under a superseded token is discarded before it can
// touch controller state.
type OTPController struct {
	verify   Verifier
	send     Sender
	view     View
	advance  func()
	cooldown *Cooldown
	dwell    time.Duration
	clock    Clock
	log      *slog.Logger

	mu    sync.Mutex
	entry *Entry
	state State
	token reqid.Token
}

// NewOTPController builds a controller in StateIdle.
func NewOTPController(cfg OTPConfig) *OTPController {
	clock := cfg.Clock
	if clock == nil {
		clock = RealClock
	}
	dwell := cfg.Dwell
	if dwell <= 0 {
		dwell = DefaultVerifiedDwell
	}
	cooldown := cfg.Cooldown
	if cooldown == nil {
		cooldown = NewCooldown(DefaultResendWait, clock.Now)
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &OTPController{
		verify:   cfg.Verifier,
		send:     cfg.Sender,
		view:     cfg.View,
		advance:  cfg.Advance,
		cooldown: cooldown,
		dwell:    dwell,
		clock:    clock,
		log:      log,
		entry:    NewEntry(),
		state:    StateIdle,
	}
}

// State returns the controller's current state.
func (c *OTPController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Cells returns the current cell contents for rendering.
func (c *OTPController) Cells() [CodeLength]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entry.Cells()
}

// Begin sends the initial code, starts the resend cooldown and moves to
// StateAwaitingInput with the first cell focused.
func (c *OTPController) Begin(ctx context.Context) error {
	if err := c.send(ctx); err != nil {
		c.log.Error("otp send failed", "error", err)
		c.view.ShowError("Could not send the code. Please try again.")
		return err
	}
	c.cooldown.Start()
	c.mu.Lock()
	c.state = StateAwaitingInput
	c.entry.Clear()
	c.mu.Unlock()
	c.view.FocusCell(0)
	return nil
}

// Key forwards a keystroke in cell i to the entry and moves focus.
func (c *OTPController) Key(i int, r rune) {
	c.mu.Lock()
	next, ok := c.entry.Key(i, r)
	c.mu.Unlock()
	if ok {
		c.view.FocusCell(next)
	}
}

// Backspace clears cell i, or moves focus left when it is already empty.
func (c *OTPController) Backspace(i int) {
	c.mu.Lock()
	next := c.entry.Backspace(i)
	c.mu.Unlock()
	c.view.FocusCell(next)
}

// Paste distributes the pasted digits from cell i onward and submits
// automatically when all cells are filled.
func (c *OTPController) Paste(ctx context.Context, i int, s string) {
	c.mu.Lock()
	focus := c.entry.Paste(i, s)
	complete := c.entry.Complete()
	c.mu.Unlock()
	c.view.FocusCell(focus)
	if complete {
		c.Submit(ctx)
	}
}

// Submit verifies the entered code. An incomplete entry is rejected
// locally without touching the network. A server rejection clears the
// cells, refocuses the first one and shows the backend message; a
// transport failure does the same with a generic message. Success marks
// the cells verified and, after the dwell, advances the flow.
func (c *OTPController) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return
	}
	if !c.entry.Complete() {
		// Rejected locally; the state settles straight back to input.
		focus, _ := c.entry.FirstEmpty()
		c.state = StateAwaitingInput
		c.mu.Unlock()
		c.view.MarkRejected("Enter the complete 6-digit code.")
		c.view.FocusCell(focus)
		return
	}
	code := c.entry.Code()
	token := reqid.New()
	c.token = token
	c.state = StateSubmitting
	c.mu.Unlock()

	err := c.verify(ctx, code)

	c.mu.Lock()
	if token != c.token {
		// A newer submission or a reset superseded this one.
		c.mu.Unlock()
		c.log.Debug("otp result dropped", "reason", "stale token")
		return
	}

	if err != nil {
		c.entry.Clear()
		c.state = StateAwaitingInput
		c.mu.Unlock()

		var rej *RejectedError
		if errors.As(err, &rej) {
			c.view.MarkRejected(rej.Message)
		} else {
			c.log.Error("otp verification failed", "error", err)
			c.view.MarkRejected("Verification failed. Please try again.")
		}
		c.view.FocusCell(0)
		return
	}

	c.state = StateVerified
	c.mu.Unlock()
	c.view.MarkVerified()

	select {
	case <-c.clock.After(c.dwell):
	case <-ctx.Done():
		return
	}
	if c.advance != nil {
		c.advance()
	}
}

// RequestResend asks the backend for a new code unless the cooldown is
// still running, in which case it is a no-op. On success the cooldown
// restarts. It reports whether a send was attempted.
func (c *OTPController) RequestResend(ctx context.Context) bool {
	if c.cooldown.Active() {
		return false
	}
	if err := c.send(ctx); err != nil {
		c.log.Error("otp resend failed", "error", err)
		c.view.ShowError("Could not resend the code. Please try again.")
		return true
	}
	c.cooldown.Start()
	return true
}

// Reset clears the cells and rotates the request token so that any
// in-flight verification result is discarded on arrival. The controller
// returns to StateAwaitingInput.
func (c *OTPController) Reset() {
	c.mu.Lock()
	c.entry.Clear()
	c.token = reqid.New()
	c.state = StateAwaitingInput
	c.mu.Unlock()
	c.view.FocusCell(0)
}

// Cooldown exposes the resend cooldown for countdown rendering.
func (c *OTPController) Cooldown() *Cooldown {
	return c.cooldown
}
