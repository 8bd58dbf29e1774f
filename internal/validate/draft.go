package validate

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// TypePlot is the listing type without a building on it: carpet area,
// floor and furnishing do not apply and are skipped entirely.
const TypePlot = "Plot"

// PropertyDraft is the collected listing form, shared verbatim between the
// add and edit flows.
type PropertyDraft struct {
	Title         string  `validate:"required"`
	PropertyType  string  `validate:"required,oneof=Apartment House Villa Plot Commercial"`
	Price         float64 `validate:"required,gt=0"`
	BuiltUpArea   float64 `validate:"required,gt=0"`
	CarpetArea    float64 `validate:"omitempty,gt=0"`
	FloorNo       int     `validate:"gte=0"`
	TotalFloors   int     `validate:"gte=0"`
	Furnishing    string
	AvailableFrom string `validate:"omitempty,notpast"`
	Address       string `validate:"required"`
	City          string `validate:"required"`
	State         string `validate:"required"`
	Pincode       string `validate:"required,inpincode"`
	ContactPhone  string `validate:"required,inphone"`
	Description   string
}

var (
	draftOnce sync.Once
	draftV    *validator.Validate
)

func draftValidator() *validator.Validate {
	draftOnce.Do(func() {
		draftV = validator.New()
		_ = draftV.RegisterValidation("inphone", func(fl validator.FieldLevel) bool {
			return Phone(fl.Field().String())
		})
		_ = draftV.RegisterValidation("inpincode", func(fl validator.FieldLevel) bool {
			return Pincode(fl.Field().String())
		})
		_ = draftV.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
			d, err := time.Parse("2006-01-02", fl.Field().String())
			if err != nil {
				return false
			}
			return NotPast(d, time.Now())
		})
		draftV.RegisterStructValidation(draftCrossChecks, PropertyDraft{})
	})
	return draftV
}

// draftCrossChecks enforces the cross-field rules that the tag syntax
// cannot express. Plots have no building, so the carpet and floor checks
// do not apply there.
func draftCrossChecks(sl validator.StructLevel) {
	d := sl.Current().Interface().(PropertyDraft)
	if d.PropertyType == TypePlot {
		return
	}
	if d.CarpetArea > 0 && d.BuiltUpArea > 0 && d.CarpetArea > d.BuiltUpArea {
		sl.ReportError(d.CarpetArea, "CarpetArea", "CarpetArea", "ltebuiltup", "")
	}
	if d.TotalFloors > 0 && d.FloorNo > d.TotalFloors {
		sl.ReportError(d.FloorNo, "FloorNo", "FloorNo", "ltefloors", "")
	}
}

// DraftError carries every violation found in a draft. Its Error string
// joins the individual messages, first violation first.
type DraftError struct {
	Problems []string
}

func (e *DraftError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// CheckDraft validates a property draft. It returns nil when the draft is
// submittable, or a *DraftError listing every violation in field order.
// Both the add and the edit flow call this same function.
func CheckDraft(d PropertyDraft) error {
	err := draftValidator().Struct(d)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, draftMessage(fe))
	}
	return &DraftError{Problems: problems}
}

var draftLabels = map[string]string{
	"Title":         "Title",
	"PropertyType":  "Property type",
	"Price":         "Price",
	"BuiltUpArea":   "Built-up area",
	"CarpetArea":    "Carpet area",
	"FloorNo":       "Floor number",
	"TotalFloors":   "Total floors",
	"AvailableFrom": "Available-from date",
	"Address":       "Address",
	"City":          "City",
	"State":         "State",
	"Pincode":       "Pincode",
	"ContactPhone":  "Contact phone",
}

func draftMessage(fe validator.FieldError) string {
	label := draftLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "gt", "gte":
		return label + " must be a positive number."
	case "oneof":
		return "Select a valid property type."
	case "inphone":
		return "Enter a valid 10-digit phone number."
	case "inpincode":
		return "Enter a valid 6-digit pincode."
	case "notpast":
		return "Available-from date cannot be in the past."
	case "ltebuiltup":
		return "Carpet area cannot exceed Built-up area."
	case "ltefloors":
		return "Floor number cannot exceed total floors."
	default:
		return label + " is invalid."
	}
}

// FieldMap maps draft attributes to the form field names a particular flow
// collects them under. The add and edit forms name their fields
// differently; the mapping is the only thing that differs between them.
type FieldMap map[string]string

func (m FieldMap) name(key string) string {
	if n, ok := m[key]; ok {
		return n
	}
	return key
}

// AddFields is the field naming used by the add-property wizard.
var AddFields = FieldMap{}

// EditFields is the field naming used by the edit-property form.
var EditFields = FieldMap{
	"title":          "edit_title",
	"property_type":  "edit_property_type",
	"price":          "edit_price",
	"built_up_area":  "edit_built_up_area",
	"carpet_area":    "edit_carpet_area",
	"floor_no":       "edit_floor_no",
	"total_floors":   "edit_total_floors",
	"furnishing":     "edit_furnishing",
	"available_from": "edit_available_from",
	"address":        "edit_address",
	"city":           "edit_city",
	"state":          "edit_state",
	"pincode":        "edit_pincode",
	"contact_phone":  "edit_contact_phone",
	"description":    "edit_description",
}

// DraftFromFields assembles a draft from collected wizard fields using the
// given field mapping. Unparseable numbers become zero and are caught by
// CheckDraft's required/positive rules.
func DraftFromFields(fields map[string]string, m FieldMap) PropertyDraft {
	get := func(key string) string {
		return strings.TrimSpace(fields[m.name(key)])
	}
	num := func(key string) float64 {
		v, _ := strconv.ParseFloat(get(key), 64)
		return v
	}
	integer := func(key string) int {
		v, _ := strconv.Atoi(get(key))
		return v
	}
	return PropertyDraft{
		Title:         get("title"),
		PropertyType:  get("property_type"),
		Price:         num("price"),
		BuiltUpArea:   num("built_up_area"),
		CarpetArea:    num("carpet_area"),
		FloorNo:       integer("floor_no"),
		TotalFloors:   integer("total_floors"),
		Furnishing:    get("furnishing"),
		AvailableFrom: get("available_from"),
		Address:       get("address"),
		City:          get("city"),
		State:         get("state"),
		Pincode:       get("pincode"),
		ContactPhone:  get("contact_phone"),
		Description:   get("description"),
	}
}
