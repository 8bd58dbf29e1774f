package term

import (
	"strings"
	"time"

	"github.com/propertyplus/propclient/internal/flow"
)

// otpView renders the six entry cells as [1][2][ ][ ][ ][ ].
type otpView struct {
	ui    *UI
	cells func() [flow.CodeLength]string
}

func renderCells(cells [flow.CodeLength]string) string {
	var b strings.Builder
	for _, c := range cells {
		if c == "" {
			c = " "
		}
		b.WriteString("[" + c + "]")
	}
	return b.String()
}

func (v *otpView) FocusCell(i int) {
	v.ui.Sayf("%s  (cell %d)", renderCells(v.cells()), i+1)
}

func (v *otpView) MarkVerified() {
	v.ui.Say("Code verified.")
}

func (v *otpView) MarkRejected(message string) {
	v.ui.Say(message)
}

func (v *otpView) ShowError(message string) {
	v.ui.Say(message)
}

func (v *otpView) ShowCountdown(remaining time.Duration) {
	v.ui.Sayf("Resend available in %ds.", int(remaining.Round(time.Second).Seconds()))
}

func (v *otpView) ResendAvailable() {
	v.ui.Say("You can resend the code now.")
}

// checkView renders the username-availability outcome inline.
type checkView struct {
	ui *UI
}

func (v *checkView) ShowChecking(on bool) {
	if on {
		v.ui.Say("Checking...")
	}
}

func (v *checkView) ShowAvailability(_ bool, message string) {
	v.ui.Say(message)
}

// wizardView renders wizard progress and the final preview.
type wizardView struct {
	ui    *UI
	steps []string
}

func (v *wizardView) ShowStep(i int) {
	name := ""
	if i < len(v.steps) {
		name = v.steps[i]
	}
	v.ui.Sayf("-- Step %d of %d: %s --", i+1, len(v.steps), name)
}

func (v *wizardView) ShowPreview(fields map[string]string) {
	v.ui.Say("Review your listing:")
	for _, key := range previewOrder {
		if val := fields[key]; val != "" {
			v.ui.Sayf("  %-15s %s", key+":", val)
		}
	}
}

var previewOrder = []string{
	"title", "property_type", "price", "built_up_area", "carpet_area",
	"floor_no", "total_floors", "furnishing", "available_from",
	"address", "city", "state", "pincode", "contact_phone", "description",
}

func (v *wizardView) ShowError(message string) {
	v.ui.Say(message)
}

func (v *wizardView) SetSubmitEnabled(enabled bool) {
	if enabled {
		v.ui.Say("Ready to submit.")
	}
}

// suggestView renders the live-search dropdown as a numbered list.
type suggestView struct {
	ui *UI
}

func (v *suggestView) ShowSuggestions(items []string) {
	for i, item := range items {
		v.ui.Sayf("  %d. %s", i+1, item)
	}
}

func (v *suggestView) ClearSuggestions() {}
