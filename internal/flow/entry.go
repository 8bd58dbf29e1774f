// Package flow implements the interaction controllers behind the
// PropertyPlus client: the OTP-gated step controller with its entry cells
// and resend cooldown, trailing-edge debouncing for async checks, gated
// action buttons, and the multi-step wizard navigator.
//
// Controllers own their state explicitly and receive every collaborator
// (views, verifiers, clocks) at construction. Nothing in this package
// reaches into ambient scope.
package flow

import "strings"

// CodeLength is the number of digit cells in an OTP entry.
const CodeLength = 6

// Entry models the one-time-code input: a fixed row of cells, each empty
// or holding a single decimal digit.
type Entry struct {
	cells [CodeLength]string
}

// NewEntry returns an empty entry.
func NewEntry() *Entry {
	return &Entry{}
}

// Key handles a single keystroke in cell i. Digits are stored and focus
// moves to the following cell; anything else is rejected and focus stays
// put. The returned index is where focus should land.
func (e *Entry) Key(i int, r rune) (next int, ok bool) {
	if i < 0 || i >= CodeLength {
		return i, false
	}
	if r < '0' || r > '9' {
		return i, false
	}
	e.cells[i] = string(r)
	if i < CodeLength-1 {
		return i + 1, true
	}
	return i, true
}

// Backspace clears cell i if it holds a digit. On an already-empty cell it
// moves focus to the previous cell instead. The returned index is where
// focus should land.
func (e *Entry) Backspace(i int) int {
	if i < 0 || i >= CodeLength {
		return 0
	}
	if e.cells[i] != "" {
		e.cells[i] = ""
		return i
	}
	if i > 0 {
		return i - 1
	}
	return 0
}

// Paste distributes the digits of s across the cells starting at index i,
// skipping non-digit characters and clipping at the last cell. It returns
// the cell that should receive focus: the first empty cell, or the last
// cell when the entry is now complete.
func (e *Entry) Paste(i int, s string) int {
	if i < 0 {
		i = 0
	}
	pos := i
	for _, r := range s {
		if pos >= CodeLength {
			break
		}
		if r < '0' || r > '9' {
			continue
		}
		e.cells[pos] = string(r)
		pos++
	}
	if first, ok := e.FirstEmpty(); ok {
		return first
	}
	return CodeLength - 1
}

// FirstEmpty reports the index of the first empty cell. ok is false when
// the entry is complete.
func (e *Entry) FirstEmpty() (int, bool) {
	for i, c := range e.cells {
		if c == "" {
			return i, true
		}
	}
	return 0, false
}

// Complete reports whether all cells hold a digit.
func (e *Entry) Complete() bool {
	_, empty := e.FirstEmpty()
	return !empty
}

// Code returns the concatenated digits entered so far.
func (e *Entry) Code() string {
	var b strings.Builder
	for _, c := range e.cells {
		b.WriteString(c)
	}
	return b.String()
}

// Cells returns a copy of the current cell contents for rendering.
func (e *Entry) Cells() [CodeLength]string {
	return e.cells
}

// Clear empties every cell.
func (e *Entry) Clear() {
	e.cells = [CodeLength]string{}
}
