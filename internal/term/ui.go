// Package term is the line-oriented terminal front end: it implements the
// controller view interfaces over stdin/stdout and drives the interactive
// flows (signup, login, listing wizard, dashboard, settings).
package term

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// UI reads line input and writes prompts. All controller views in this
// package render through it.
type UI struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func NewUI(in io.Reader, out io.Writer) *UI {
	return &UI{in: bufio.NewScanner(in), out: out}
}

// Prompt prints a label and reads one trimmed line. EOF yields "".
func (u *UI) Prompt(label string) string {
	if u.eof {
		return ""
	}
	fmt.Fprintf(u.out, "%s: ", label)
	if !u.in.Scan() {
		u.eof = true
		return ""
	}
	return strings.TrimSpace(u.in.Text())
}

// PromptRequired re-prompts until the input is non-empty, or "" once
// input has ended.
func (u *UI) PromptRequired(label string) string {
	for {
		v := u.Prompt(label)
		if v != "" || u.eof {
			return v
		}
		u.Say("This field is required.")
	}
}

// EOF reports whether input has ended.
func (u *UI) EOF() bool { return u.eof }

// Confirm asks a yes/no question, defaulting to no.
func (u *UI) Confirm(question string) bool {
	answer := strings.ToLower(u.Prompt(question + " [y/N]"))
	return answer == "y" || answer == "yes"
}

func (u *UI) Say(msg string) {
	fmt.Fprintln(u.out, msg)
}

func (u *UI) Sayf(format string, args ...any) {
	fmt.Fprintf(u.out, format+"\n", args...)
}
