package specs

import (
	"math"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
)

type groupKey struct {
	brand string
	model string
}

// mean accumulates the non-missing values of one measure
type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.count++
}

// rounded returns the mean rounded half to even, false when no value was seen
func (m mean) rounded() (int, bool) {
	if m.count == 0 {
		return 0, false
	}
	return int(math.RoundToEven(m.sum / float64(m.count))), true
}

type group struct {
	engine     mean
	maxPower   mean
	seats      mean
	brandScore int
}

// Aggregate builds a specs table from per-sale records. Records sharing a
// normalized (brand, model) pair are averaged; a pair whose engine, max_power
// or seats has no value at all is left out of the table.
func Aggregate(records []RawRecord) *dal.SpecsTable {
	groups := make(map[groupKey]*group)
	for _, rec := range records {
		key := groupKey{brand: dal.NormalizeName(rec.Brand), model: dal.NormalizeName(rec.Model)}
		if key.brand == "" || key.model == "" {
			continue
		}

		g, ok := groups[key]
		if !ok {
			g = &group{brandScore: BrandScore(key.brand)}
			groups[key] = g
		}
		g.engine.add(rec.Engine)
		g.maxPower.add(rec.MaxPower)
		g.seats.add(rec.Seats)
	}

	table := dal.NewSpecsTable()
	for key, g := range groups {
		engine, ok1 := g.engine.rounded()
		power, ok2 := g.maxPower.rounded()
		seats, ok3 := g.seats.rounded()
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		table.Set(key.brand, key.model, dal.Specs{
			EngineCC:    engine,
			MaxPowerBHP: power,
			Seats:       seats,
			BrandScore:  g.brandScore,
		})
	}
	return table
}

// Passthrough builds a specs table from pre-aggregated rows, copying values as is.
// Rows without a brand or model are skipped; a later duplicate pair replaces an earlier one.
func Passthrough(rows []AggregatedRow) *dal.SpecsTable {
	table := dal.NewSpecsTable()
	for _, row := range rows {
		if dal.NormalizeName(row.Brand) == "" || dal.NormalizeName(row.Model) == "" {
			continue
		}
		table.Set(row.Brand, row.Model, dal.Specs{
			EngineCC:    row.Engine,
			MaxPowerBHP: row.MaxPower,
			Seats:       row.Seats,
			BrandScore:  row.BrandScore,
		})
	}
	return table
}
