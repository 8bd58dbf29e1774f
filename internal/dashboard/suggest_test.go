package dashboard_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/propertyplus/propclient/internal/dashboard"
	"github.com/propertyplus/propclient/internal/flow"
	"github.com/stretchr/testify/require"
)

// fakeClock is a minimal manual clock for the debounce-driven tests here.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	waiters []struct {
		at time.Time
		ch chan time.Time
	}
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time, 1)
	c.waiters = append(c.waiters, struct {
		at time.Time
		ch chan time.Time
	}{c.now.Add(d), ch})
	return ch
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	kept := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.at.After(c.now) {
			w.ch <- c.now
			continue
		}
		kept = append(kept, w)
	}
	c.waiters = kept
}

type recordingSuggestView struct {
	mu     sync.Mutex
	shown  [][]string
	clears int
}

func (v *recordingSuggestView) ShowSuggestions(items []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.shown = append(v.shown, items)
}

func (v *recordingSuggestView) ClearSuggestions() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clears++
}

func (v *recordingSuggestView) last() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.shown) == 0 {
		return nil
	}
	return v.shown[len(v.shown)-1]
}

func (v *recordingSuggestView) shownCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.shown)
}

func TestSuggestionBoxShortInputClearsWithoutRequest(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	var fetches atomic.Int32
	fetch := func(ctx context.Context, q string) ([]string, error) {
		fetches.Add(1)
		return []string{"Mumbai"}, nil
	}

	view := &recordingSuggestView{}
	box := dashboard.NewSuggestionBox(fetch, view,
		flow.NewDebouncer(400*time.Millisecond, clock), nil)

	box.Input(context.Background(), "m")
	clock.Advance(time.Second)
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, int32(0), fetches.Load())
	require.Equal(t, 1, view.clears)
}

func TestSuggestionBoxFetchesAfterQuietPeriod(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	var fetches atomic.Int32
	fetch := func(ctx context.Context, q string) ([]string, error) {
		fetches.Add(1)
		return []string{"Mumbai", "Mysore"}, nil
	}

	view := &recordingSuggestView{}
	box := dashboard.NewSuggestionBox(fetch, view,
		flow.NewDebouncer(400*time.Millisecond, clock), nil)

	ctx := context.Background()
	box.Input(ctx, "mu")
	clock.Advance(100 * time.Millisecond)
	box.Input(ctx, "mum")
	clock.Advance(400 * time.Millisecond)

	require.Eventually(t, func() bool { return view.shownCount() == 1 },
		time.Second, 5*time.Millisecond)
	require.Equal(t, int32(1), fetches.Load(), "the burst produces one fetch")
	require.Equal(t, []string{"Mumbai", "Mysore"}, view.last())
}

func TestSuggestionBoxStaleResponseDropped(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	release := make(chan struct{})
	fetch := func(ctx context.Context, q string) ([]string, error) {
		if q == "mum" {
			<-release
			return []string{"stale"}, nil
		}
		return []string{"Delhi"}, nil
	}

	view := &recordingSuggestView{}
	box := dashboard.NewSuggestionBox(fetch, view,
		flow.NewDebouncer(400*time.Millisecond, clock), nil)

	ctx := context.Background()
	box.Input(ctx, "mum")
	clock.Advance(400 * time.Millisecond) // first fetch starts, then blocks

	box.Input(ctx, "del")
	clock.Advance(400 * time.Millisecond)
	require.Eventually(t, func() bool { return view.shownCount() == 1 },
		time.Second, 5*time.Millisecond)

	// The slow first response arrives after the newer one.
	close(release)
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, 1, view.shownCount(), "the stale response must not render")
	require.Equal(t, []string{"Delhi"}, view.last())
}

func TestFilterQuery(t *testing.T) {
	t.Parallel()

	t.Run("builds a sorted query of non-empty filters", func(t *testing.T) {
		got := dashboard.FilterQuery("/dashboard", map[string]string{
			"city":      "Mumbai",
			"type":      "Apartment",
			"max_price": "",
		})
		require.Equal(t, "/dashboard?city=Mumbai&type=Apartment", got)
	})

	t.Run("no filters means a bare navigation", func(t *testing.T) {
		require.Equal(t, "/dashboard", dashboard.FilterQuery("/dashboard", nil))
	})
}
