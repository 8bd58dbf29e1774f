package flow

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
)

// StepValidator checks the fields collected so far against one step's
// constraints. A non-nil error keeps the wizard on the current step.
type StepValidator func(fields map[string]string) error

// StagedFile is a file selection held client-side until submission.
type StagedFile struct {
	// Field is the multipart field name the file is submitted under.
	Field string
	// Name is the original file name.
	Name string
	// Content is the staged bytes.
	Content []byte
}

// Submitter packages the collected fields and staged files into the single
// submission request. The returned error's message is surfaced verbatim.
type Submitter func(ctx context.Context, fields map[string]string, files []StagedFile) error

// WizardView is the presentation surface a Wizard drives.
type WizardView interface {
	// ShowStep renders step i.
	ShowStep(i int)
	// ShowPreview renders the read-only summary of all collected fields.
	ShowPreview(fields map[string]string)
	// ShowError surfaces a validation or submission error.
	ShowError(message string)
	// SetSubmitEnabled toggles the submit control.
	SetSubmitEnabled(enabled bool)
}

// Wizard walks a fixed sequence of steps forward and back, validating each
// step before advancing and collecting fields along the way. Reaching the
// final step renders a read-only preview; Submit sends everything in one
// request.
type Wizard struct {
	steps   []StepValidator
	view    WizardView
	submit  Submitter
	confirm func(prompt string) bool
	done    func()
	log     *slog.Logger

	mu         sync.Mutex
	step       int
	fields     map[string]string
	files      []StagedFile
	submitting bool
}

// WizardConfig carries the collaborators a Wizard needs. Steps, View and
// Submit are required; a nil step validator always passes and Confirm
// defaults to always-yes.
type WizardConfig struct {
	Steps   []StepValidator
	View    WizardView
	Submit  Submitter
	Confirm func(prompt string) bool
	// Done runs after a successful submission (the redirect).
	Done func()
	Log  *slog.Logger
}

// NewWizard builds a wizard positioned on the first step.
func NewWizard(cfg WizardConfig) (*Wizard, error) {
	if len(cfg.Steps) == 0 {
		return nil, fmt.Errorf("wizard: at least one step required")
	}
	steps := make([]StepValidator, len(cfg.Steps))
	for i, v := range cfg.Steps {
		if v == nil {
			v = func(map[string]string) error { return nil }
		}
		steps[i] = v
	}
	confirm := cfg.Confirm
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &Wizard{
		steps:   steps,
		view:    cfg.View,
		submit:  cfg.Submit,
		confirm: confirm,
		done:    cfg.Done,
		log:     log,
		fields:  make(map[string]string),
	}, nil
}

// Step returns the current zero-based step index.
func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// SetField records a collected field value.
func (w *Wizard) SetField(key, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fields[key] = value
}

// Field returns a collected field value.
func (w *Wizard) Field(key string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fields[key]
}

// Fields returns a copy of all collected fields.
func (w *Wizard) Fields() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return maps.Clone(w.fields)
}

// StageFile holds a file selection for submission.
func (w *Wizard) StageFile(f StagedFile) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files = append(w.files, f)
}

// StagedFiles returns the files staged so far.
func (w *Wizard) StagedFiles() []StagedFile {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]StagedFile, len(w.files))
	copy(out, w.files)
	return out
}

// Next validates the current step and, if it passes, advances (capped at
// the last step). Reaching the final step renders the preview. It reports
// whether the wizard advanced.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	validate := w.steps[w.step]
	fields := maps.Clone(w.fields)
	w.mu.Unlock()

	if err := validate(fields); err != nil {
		w.view.ShowError(err.Error())
		return false
	}

	w.mu.Lock()
	if w.step < len(w.steps)-1 {
		w.step++
	}
	step, last := w.step, w.step == len(w.steps)-1
	preview := maps.Clone(w.fields)
	w.mu.Unlock()

	w.view.ShowStep(step)
	if last {
		w.view.ShowPreview(preview)
	}
	return true
}

// Back moves one step backwards without re-validating, floored at the
// first step.
func (w *Wizard) Back() {
	w.mu.Lock()
	if w.step > 0 {
		w.step--
	}
	step := w.step
	w.mu.Unlock()
	w.view.ShowStep(step)
}

// Cancel asks for confirmation and, if granted, discards every collected
// field and staged file and returns to the first step. It reports whether
// the wizard was reset.
func (w *Wizard) Cancel() bool {
	if !w.confirm("Discard this listing and all entered details?") {
		return false
	}
	w.mu.Lock()
	w.step = 0
	w.fields = make(map[string]string)
	w.files = nil
	w.mu.Unlock()
	w.view.ShowStep(0)
	return true
}

// Submit packages all collected fields and staged files into one request.
// On failure the submit control is re-enabled and the server message is
// shown verbatim; on success the done callback runs.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return nil
	}
	w.submitting = true
	fields := maps.Clone(w.fields)
	files := make([]StagedFile, len(w.files))
	copy(files, w.files)
	w.mu.Unlock()

	w.view.SetSubmitEnabled(false)
	err := w.submit(ctx, fields, files)

	w.mu.Lock()
	w.submitting = false
	w.mu.Unlock()

	if err != nil {
		w.log.Error("wizard submission failed", "error", err)
		w.view.SetSubmitEnabled(true)
		w.view.ShowError(err.Error())
		return err
	}
	if w.done != nil {
		w.done()
	}
	return nil
}
