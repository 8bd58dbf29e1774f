package flow_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/propertyplus/propclient/internal/flow"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	d := flow.NewDebouncer(400*time.Millisecond, clock)

	var calls atomic.Int32

	// Three keystrokes 100ms apart.
	d.Trigger(func() { calls.Add(1) })
	clock.Advance(100 * time.Millisecond)
	d.Trigger(func() { calls.Add(1) })
	clock.Advance(100 * time.Millisecond)
	d.Trigger(func() { calls.Add(1) })

	// 399ms after the last keystroke: nothing has fired. The first two
	// timers have matured but their generations are stale.
	clock.Advance(399 * time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(0), calls.Load())

	// 400ms after the last keystroke: exactly one call.
	clock.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return calls.Load() == 1 },
		time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load(), "the burst produces exactly one call")
}

func TestDebouncerCancel(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	d := flow.NewDebouncer(400*time.Millisecond, clock)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Cancel()

	clock.Advance(time.Second)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(0), calls.Load())
}

// recordingCheckView captures availability rendering.
type recordingCheckView struct {
	mu       sync.Mutex
	checking []bool
	results  []string
}

func (v *recordingCheckView) ShowChecking(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.checking = append(v.checking, on)
}

func (v *recordingCheckView) ShowAvailability(available bool, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.results = append(v.results, message)
}

func (v *recordingCheckView) lastResult() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.results) == 0 {
		return ""
	}
	return v.results[len(v.results)-1]
}

func TestUniqueCheckerShortCircuitsBelowMinimum(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	var requests atomic.Int32
	check := func(ctx context.Context, value string) (bool, error) {
		requests.Add(1)
		return true, nil
	}

	view := &recordingCheckView{}
	u := flow.NewUniqueChecker(check, view, flow.NewDebouncer(400*time.Millisecond, clock), nil)

	u.Input(context.Background(), "ab")
	clock.Advance(time.Second)
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, int32(0), requests.Load(), "short values never hit the network")
	require.False(t, u.Available())
	require.Contains(t, view.lastResult(), "at least 3 characters")
}

func TestUniqueCheckerSingleRequestAfterQuietPeriod(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	var requests atomic.Int32
	check := func(ctx context.Context, value string) (bool, error) {
		requests.Add(1)
		return true, nil
	}

	view := &recordingCheckView{}
	u := flow.NewUniqueChecker(check, view, flow.NewDebouncer(400*time.Millisecond, clock), nil)

	ctx := context.Background()
	u.Input(ctx, "ali")
	clock.Advance(100 * time.Millisecond)
	u.Input(ctx, "alic")
	clock.Advance(100 * time.Millisecond)
	u.Input(ctx, "alice")

	clock.Advance(400 * time.Millisecond)
	require.Eventually(t, func() bool { return u.Available() },
		time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(1), requests.Load(), "a typing burst produces exactly one request")
	require.Contains(t, view.lastResult(), "available")
}

func TestUniqueCheckerTaken(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	check := func(ctx context.Context, value string) (bool, error) {
		return false, nil
	}

	view := &recordingCheckView{}
	u := flow.NewUniqueChecker(check, view, flow.NewDebouncer(400*time.Millisecond, clock), nil)

	u.Input(context.Background(), "alice")
	clock.Advance(400 * time.Millisecond)

	require.Eventually(t, func() bool { return view.lastResult() != "" },
		time.Second, 5*time.Millisecond)
	require.False(t, u.Available())
	require.Contains(t, view.lastResult(), "taken")
}

func TestUniqueCheckerCheckFailure(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	check := func(ctx context.Context, value string) (bool, error) {
		return false, errors.New("connection refused")
	}

	view := &recordingCheckView{}
	u := flow.NewUniqueChecker(check, view, flow.NewDebouncer(400*time.Millisecond, clock), nil)

	u.Input(context.Background(), "alice")
	clock.Advance(400 * time.Millisecond)

	require.Eventually(t, func() bool { return view.lastResult() != "" },
		time.Second, 5*time.Millisecond)
	require.False(t, u.Available(), "a failed check never reports available")
	require.Contains(t, view.lastResult(), "Could not check")
}

func TestUniqueCheckerNewerInputWins(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	check := func(ctx context.Context, value string) (bool, error) {
		// "alice" is taken, anything else is free.
		return value != "alice", nil
	}

	view := &recordingCheckView{}
	u := flow.NewUniqueChecker(check, view, flow.NewDebouncer(400*time.Millisecond, clock), nil)

	ctx := context.Background()
	u.Input(ctx, "alice")
	// A newer input arrives before the first check fires.
	clock.Advance(100 * time.Millisecond)
	u.Input(ctx, "alicia")

	clock.Advance(400 * time.Millisecond)
	require.Eventually(t, func() bool { return u.Available() },
		time.Second, 5*time.Millisecond)
	require.True(t, u.Available(), "only the newest value's outcome is cached")
}
