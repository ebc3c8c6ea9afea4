package forms

import (
	"strconv"
	"strings"

	"gear4music/internal/models"
)

const (
	instrumentNameMin = 4
	instrumentNameMax = 80
	imageMin          = 4
	imageMax          = 500
)

// InstrumentForm carries the raw create/update input. Ids stay strings until
// Validate has checked them against the current choices.
type InstrumentForm struct {
	Name       string `form:"name"`
	CategoryID string `form:"category_id"`
	SupplierID string `form:"supplier_id"`
	Image      string `form:"image"`
	Image2     string `form:"image_2"`
}

// InstrumentChoices are the select options loaded for the request.
type InstrumentChoices struct {
	Categories []models.Category
	Suppliers  []models.Supplier
}

func (ch InstrumentChoices) hasCategory(id uint) bool {
	for _, c := range ch.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (ch InstrumentChoices) hasSupplier(id uint) bool {
	for _, s := range ch.Suppliers {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Normalize trims surrounding whitespace from text inputs.
func (f *InstrumentForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.CategoryID = strings.TrimSpace(f.CategoryID)
	f.SupplierID = strings.TrimSpace(f.SupplierID)
	f.Image = strings.TrimSpace(f.Image)
	f.Image2 = strings.TrimSpace(f.Image2)
}

func (f InstrumentForm) Validate(choices InstrumentChoices) Errors {
	errs := Errors{}
	requiredLength(errs, "name", f.Name, instrumentNameMin, instrumentNameMax)

	if required(errs, "category_id", f.CategoryID) {
		if id, ok := parseID(f.CategoryID); !ok || !choices.hasCategory(id) {
			errs.Add("category_id", "Not a valid choice.")
		}
	}
	if required(errs, "supplier_id", f.SupplierID) {
		if id, ok := parseID(f.SupplierID); !ok || !choices.hasSupplier(id) {
			errs.Add("supplier_id", "Not a valid choice.")
		}
	}

	if f.Image != "" {
		length(errs, "image", f.Image, imageMin, imageMax)
	}
	if f.Image2 != "" {
		length(errs, "image_2", f.Image2, imageMin, imageMax)
	}
	return errs
}

// Apply copies a validated form onto the instrument.
func (f InstrumentForm) Apply(inst *models.Instrument) {
	inst.Name = f.Name
	inst.CategoryID, _ = parseID(f.CategoryID)
	inst.SupplierID, _ = parseID(f.SupplierID)
	inst.Image = f.Image
	inst.Image2 = f.Image2
}

// InstrumentFormFrom prefills the edit form from a stored instrument.
func InstrumentFormFrom(inst models.Instrument) InstrumentForm {
	return InstrumentForm{
		Name:       inst.Name,
		CategoryID: strconv.FormatUint(uint64(inst.CategoryID), 10),
		SupplierID: strconv.FormatUint(uint64(inst.SupplierID), 10),
		Image:      inst.Image,
		Image2:     inst.Image2,
	}
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
