package flow_test

import (
	"testing"

	"github.com/propertyplus/propclient/internal/flow"
	"github.com/stretchr/testify/require"
)

// fakeField is a Notifier with a manual change trigger.
type fakeField struct {
	value     string
	listeners []func()
}

func (f *fakeField) OnChange(fn func()) {
	f.listeners = append(f.listeners, fn)
}

func (f *fakeField) set(v string) {
	f.value = v
	for _, fn := range f.listeners {
		fn()
	}
}

func TestGateStartsDisabled(t *testing.T) {
	t.Parallel()

	var states []bool
	flow.NewGate(func(on bool) { states = append(states, on) }, func() bool { return true })
	require.Equal(t, []bool{false}, states, "a gate is disabled until the first refresh")
}

func TestGateFollowsPredicate(t *testing.T) {
	t.Parallel()

	password := &fakeField{}
	confirm := &fakeField{}

	var states []bool
	g := flow.NewGate(
		func(on bool) { states = append(states, on) },
		func() bool { return password.value != "" && password.value == confirm.value },
	)
	g.Watch(password, confirm)

	password.set("hunter2!")
	require.False(t, g.Enabled())

	confirm.set("hunter2!")
	require.True(t, g.Enabled())

	confirm.set("hunter2")
	require.False(t, g.Enabled())

	// Enable/disable fires only on actual flips: initial disable, enable,
	// disable again.
	require.Equal(t, []bool{false, true, false}, states)
}

func TestGateRefreshReturnsState(t *testing.T) {
	t.Parallel()

	ok := false
	g := flow.NewGate(func(bool) {}, func() bool { return ok })

	require.False(t, g.Refresh())
	ok = true
	require.True(t, g.Refresh())
	require.True(t, g.Enabled())
}
