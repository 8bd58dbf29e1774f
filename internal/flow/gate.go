package flow

// Notifier is anything that can report change events, typically an input
// field owned by the frontend.
type Notifier interface {
	// OnChange registers fn to run on every change event.
	OnChange(fn func())
}

// Gate keeps an action disabled until its predicate over the watched
// fields evaluates true. The predicate is recomputed on every field event;
// there is no debouncing here.
type Gate struct {
	predicate func() bool
	set       func(enabled bool)
	enabled   bool
}

// NewGate wires a gate around an enable/disable callback and a predicate.
// The initial state is always disabled.
func NewGate(set func(enabled bool), predicate func() bool) *Gate {
	g := &Gate{predicate: predicate, set: set}
	g.set(false)
	return g
}

// Watch recomputes the predicate on every change of any watched field.
func (g *Gate) Watch(fields ...Notifier) {
	for _, f := range fields {
		f.OnChange(func() { g.Refresh() })
	}
}

// Refresh recomputes the predicate and flips enablement when it changed.
// It returns the resulting enabled state.
func (g *Gate) Refresh() bool {
	enabled := g.predicate()
	if enabled != g.enabled {
		g.enabled = enabled
		g.set(enabled)
	}
	return enabled
}

// Enabled reports the gate's current state.
func (g *Gate) Enabled() bool {
	return g.enabled
}
