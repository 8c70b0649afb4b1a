package specs

import (
	"sort"
	"strings"
)

// DefaultBrandScore is assigned to brands missing from the curated table
const DefaultBrandScore = 1

// brandScores holds the curated prestige tier of every known brand, keyed by the
// lower-cased brand name. Read only; reach it through BrandScore.
var brandScores = map[string]int{
	"toyota": 5, "maruti": 5, "honda": 5, "hyundai": 5,
	"tata": 4, "mahindra": 4, "kia": 4, "skoda": 4, "volkswagen": 4,
	"ford": 3, "renault": 3, "nissan": 3, "jeep": 3, "mg": 3, "fiat": 3,
	"audi": 2, "bmw": 2, "mercedes-benz": 2, "volvo": 2, "jaguar": 2, "land rover": 2, "lexus": 2,
	"rolls-royce": 1, "bentley": 1, "ferrari": 1, "porsche": 1,
	"maserati": 1, "mini": 1, "isuzu": 1, "force": 1, "datsun": 1,
}

// BrandScore returns the curated score of a brand, DefaultBrandScore when unlisted
func BrandScore(brand string) int {
	if score, ok := brandScores[strings.ToLower(strings.TrimSpace(brand))]; ok {
		return score
	}
	return DefaultBrandScore
}

// ScoredBrands returns the lower-cased names of every curated brand, sorted
func ScoredBrands() []string {
	names := make([]string, 0, len(brandScores))
	for name := range brandScores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
