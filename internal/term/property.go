package term

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/propertyplus/propclient/internal/flow"
	"github.com/propertyplus/propclient/internal/validate"
	"github.com/propertyplus/propclient/pkg/propsdk"
)

var wizardSteps = []string{"Basics", "Area & floors", "Location", "Description & media", "Review"}

// stepFields names the fields each wizard step collects.
var stepFields = [][]string{
	{"title", "property_type", "price"},
	{"built_up_area", "carpet_area", "floor_no", "total_floors", "furnishing", "available_from"},
	{"address", "city", "state", "pincode", "contact_phone"},
	{"description"},
	{},
}

func (t *Term) addListing(ctx context.Context) {
	view := &wizardView{ui: t.ui, steps: wizardSteps}
	var createdID int64

	wiz, err := flow.NewWizard(flow.WizardConfig{
		Steps: []flow.StepValidator{
			validateBasics,
			validateAreas,
			validateLocation,
			nil,
			validateFullDraft,
		},
		View: view,
		Submit: func(ctx context.Context, fields map[string]string, files []flow.StagedFile) error {
			id, err := t.session.AddProperty(ctx, fields, toFileParts(files))
			if err != nil {
				return err
			}
			createdID = id
			return nil
		},
		Confirm: t.ui.Confirm,
		Done: func() {
			t.listings = append(t.listings, createdID)
			t.ui.Sayf("Listing #%d published.", createdID)
		},
		Log: t.log,
	})
	if err != nil {
		t.ui.Say(err.Error())
		return
	}

	submitGate := flow.NewGate(view.SetSubmitEnabled, func() bool {
		return validateFullDraft(wiz.Fields()) == nil
	})

	view.ShowStep(0)
	for {
		step := wiz.Step()
		for _, field := range stepFields[step] {
			label := strings.ReplaceAll(field, "_", " ")
			if current := wiz.Field(field); current != "" {
				label = fmt.Sprintf("%s [%s]", label, current)
			}
			if value := t.ui.Prompt(label); value != "" {
				wiz.SetField(field, value)
			}
		}
		if step == 3 {
			t.stageMedia(wiz)
		}

		onReview := step == len(wizardSteps)-1
		if onReview {
			submitGate.Refresh()
		}

		options := "[next/back/cancel]"
		if onReview {
			options = "[submit/back/cancel]"
		}
		switch strings.ToLower(t.ui.Prompt("Action " + options)) {
		case "back", "b":
			wiz.Back()
		case "cancel", "":
			if wiz.Cancel() {
				return
			}
		case "submit", "s":
			if !onReview {
				continue
			}
			if !submitGate.Refresh() {
				if err := validateFullDraft(wiz.Fields()); err != nil {
					view.ShowError(err.Error())
				}
				continue
			}
			if err := wiz.Submit(ctx); err == nil {
				return
			}
		default:
			wiz.Next()
		}
	}
}

// stageMedia reads the listed files off disk and stages them on the
// wizard. Unreadable paths are reported and skipped.
func (t *Term) stageMedia(wiz *flow.Wizard) {
	for _, path := range splitPaths(t.ui.Prompt("Image files (comma-separated, blank for none)")) {
		t.stageFile(wiz, "images", path)
	}
	if path := t.ui.Prompt("Walkthrough video (blank for none)"); path != "" {
		t.stageFile(wiz, "video", path)
	}
	if path := t.ui.Prompt("Floor plan (blank for none)"); path != "" {
		t.stageFile(wiz, "floor_plan", path)
	}
}

func (t *Term) stageFile(wiz *flow.Wizard, field, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		t.ui.Sayf("Could not read %s, skipping.", path)
		return
	}
	wiz.StageFile(flow.StagedFile{Field: field, Name: filepath.Base(path), Content: content})
}

func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toFileParts(files []flow.StagedFile) []propsdk.FilePart {
	parts := make([]propsdk.FilePart, 0, len(files))
	for _, f := range files {
		parts = append(parts, propsdk.FilePart{Field: f.Field, Name: f.Name, Content: f.Content})
	}
	return parts
}

func validateBasics(fields map[string]string) error {
	d := validate.DraftFromFields(fields, validate.AddFields)
	if d.Title == "" {
		return errors.New("Title is required.")
	}
	switch d.PropertyType {
	case "Apartment", "House", "Villa", "Plot", "Commercial":
	default:
		return errors.New("Property type must be Apartment, House, Villa, Plot or Commercial.")
	}
	if d.Price <= 0 {
		return errors.New("Price must be greater than zero.")
	}
	return nil
}

func validateAreas(fields map[string]string) error {
	d := validate.DraftFromFields(fields, validate.AddFields)
	if d.BuiltUpArea <= 0 {
		return errors.New("Built-up area must be greater than zero.")
	}
	if d.PropertyType != validate.TypePlot {
		if d.CarpetArea > d.BuiltUpArea {
			return errors.New("Carpet area cannot exceed Built-up area.")
		}
		if d.TotalFloors > 0 && d.FloorNo > d.TotalFloors {
			return errors.New("Floor number cannot exceed total floors.")
		}
	}
	if d.FloorNo < 0 || d.TotalFloors < 0 {
		return errors.New("Floors cannot be negative.")
	}
	return nil
}

func validateLocation(fields map[string]string) error {
	d := validate.DraftFromFields(fields, validate.AddFields)
	if d.Address == "" || d.City == "" || d.State == "" {
		return errors.New("Address, city and state are required.")
	}
	if !validate.Pincode(d.Pincode) {
		return errors.New("Pincode must be 6 digits.")
	}
	if !validate.Phone(d.ContactPhone) {
		return errors.New("Please enter a valid 10-digit contact phone.")
	}
	return nil
}

func validateFullDraft(fields map[string]string) error {
	return validate.CheckDraft(validate.DraftFromFields(fields, validate.AddFields))
}

func (t *Term) viewListing(ctx context.Context) {
	idStr := t.ui.Prompt("Listing id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		t.ui.Say("Please enter a numeric listing id.")
		return
	}
	p, err := t.session.Property(ctx, id)
	if err != nil {
		t.ui.Say(err.Error())
		return
	}
	t.printListing(p)
	t.remember(id)

	for {
		t.ui.Say("[s] Toggle save  [i] Express interest  [e] Edit  [d] Delete  [b] Back")
		switch strings.ToLower(t.ui.Prompt("Choose")) {
		case "s":
			saved, err := t.session.ToggleSave(ctx, id)
			if err != nil {
				t.ui.Say(err.Error())
			} else if saved {
				t.ui.Say("Saved.")
			} else {
				t.ui.Say("Removed from saved.")
			}
		case "i":
			if err := t.session.ExpressInterest(ctx, id); err != nil {
				t.ui.Say(err.Error())
			} else {
				t.ui.Say("The seller has been notified of your interest.")
			}
		case "e":
			t.editListing(ctx, p)
			return
		case "d":
			t.deleteListing(ctx, id)
			return
		default:
			return
		}
	}
}

// editListing prompts for replacement values (blank keeps the current
// one) and submits the password-gated update.
func (t *Term) editListing(ctx context.Context, p *propsdk.Property) {
	current := map[string]string{
		"title":          p.Title,
		"property_type":  p.PropertyType,
		"price":          strconv.FormatFloat(p.Price, 'f', -1, 64),
		"built_up_area":  strconv.FormatFloat(p.BuiltUpArea, 'f', -1, 64),
		"carpet_area":    strconv.FormatFloat(p.CarpetArea, 'f', -1, 64),
		"floor_no":       strconv.Itoa(p.FloorNo),
		"total_floors":   strconv.Itoa(p.TotalFloors),
		"furnishing":     p.Furnishing,
		"available_from": p.AvailableFrom,
		"address":        p.Address,
		"city":           p.City,
		"state":          p.State,
		"pincode":        p.Pincode,
		"contact_phone":  p.ContactPhone,
		"description":    p.Description,
	}

	fields := map[string]string{}
	for _, key := range previewOrder {
		label := fmt.Sprintf("%s [%s]", strings.ReplaceAll(key, "_", " "), current[key])
		value := t.ui.Prompt(label)
		if value == "" {
			value = current[key]
		}
		fields[validate.EditFields[key]] = value
	}

	draft := validate.DraftFromFields(fields, validate.EditFields)
	if err := validate.CheckDraft(draft); err != nil {
		t.ui.Say(err.Error())
		return
	}

	fields["password"] = t.ui.PromptRequired("Confirm your password")
	if err := t.session.UpdateProperty(ctx, p.ID, fields, nil); err != nil {
		t.ui.Say(err.Error())
		return
	}
	t.ui.Say("Listing updated.")
}

func (t *Term) deleteListing(ctx context.Context, id int64) {
	if !t.ui.Confirm("Delete this listing permanently?") {
		return
	}
	password := t.ui.PromptRequired("Confirm your password")
	if err := t.session.DeleteProperty(ctx, id, password); err != nil {
		t.ui.Say(err.Error())
		return
	}
	t.ui.Say("Listing deleted.")
}

func (t *Term) remember(id int64) {
	for _, known := range t.listings {
		if known == id {
			return
		}
	}
	t.listings = append(t.listings, id)
}

func (t *Term) printListing(p *propsdk.Property) {
	t.ui.Sayf("#%d %s (%s) - %.0f", p.ID, p.Title, p.PropertyType, p.Price)
	t.ui.Sayf("  %s, %s, %s %s", p.Address, p.City, p.State, p.Pincode)
	t.ui.Sayf("  Built-up %.0f sqft, carpet %.0f sqft, floor %d/%d",
		p.BuiltUpArea, p.CarpetArea, p.FloorNo, p.TotalFloors)
	if p.Description != "" {
		t.ui.Sayf("  %s", p.Description)
	}
	if len(p.Images) > 0 {
		t.ui.Sayf("  Images: %s", strings.Join(p.Images, ", "))
	}
	if p.Saved {
		t.ui.Say("  (saved)")
	}
}
