package dal

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Specs defines the auto-filled attributes of one brand/model pair
type Specs struct {
	EngineCC    int `json:"engine_cc"`
	MaxPowerBHP int `json:"max_power_bhp"`
	Seats       int `json:"seats"`
	BrandScore  int `json:"brand_score"`
}

// SpecsTable maps brand -> model -> Specs. Keys are normalized with NormalizeName.
// A table is read-only once returned by a builder.
type SpecsTable struct {
	brands map[string]map[string]Specs
}

// NewSpecsTable returns an empty table
func NewSpecsTable() *SpecsTable {
	return &SpecsTable{brands: make(map[string]map[string]Specs)}
}

// NormalizeName trims and title-cases a brand or model name. Letters after an
// apostrophe stay lower case ("o'neil" becomes "O'neil").
func NormalizeName(name string) string {
	// Casers keep state, so one is created per call.
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

// Set stores specs for a brand/model pair. Builders call it before handing the table out.
func (t *SpecsTable) Set(brand, model string, specs Specs) {
	brand, model = NormalizeName(brand), NormalizeName(model)
	models, ok := t.brands[brand]
	if !ok {
		models = make(map[string]Specs)
		t.brands[brand] = models
	}
	models[model] = specs
}

// Lookup returns the specs of a brand/model pair
func (t *SpecsTable) Lookup(brand, model string) (Specs, bool) {
	models, ok := t.brands[NormalizeName(brand)]
	if !ok {
		return Specs{}, false
	}
	specs, ok := models[NormalizeName(model)]
	return specs, ok
}

// HasBrand reports whether the brand has at least one model
func (t *SpecsTable) HasBrand(brand string) bool {
	_, ok := t.brands[NormalizeName(brand)]
	return ok
}

// Brands returns all brands sorted
func (t *SpecsTable) Brands() []string {
	brands := make([]string, 0, len(t.brands))
	for b := range t.brands {
		brands = append(brands, b)
	}
	sort.Strings(brands)
	return brands
}

// Models returns the sorted models of a brand, nil when the brand is unknown
func (t *SpecsTable) Models(brand string) []string {
	models, ok := t.brands[NormalizeName(brand)]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(models))
	for m := range models {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}

// Counts returns the number of brands and of brand/model pairs
func (t *SpecsTable) Counts() (brands, models int) {
	for _, m := range t.brands {
		models += len(m)
	}
	return len(t.brands), models
}

// Each calls fn for every entry in brand, model order
func (t *SpecsTable) Each(fn func(brand, model string, specs Specs)) {
	for _, b := range t.Brands() {
		for _, m := range t.Models(b) {
			fn(b, m, t.brands[b][m])
		}
	}
}
