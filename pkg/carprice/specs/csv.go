package specs

import (
	"encoding/csv"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Column names of the specs sources
const (
	ColumnBrand      = "brand"
	ColumnModel      = "model"
	ColumnEngine     = "engine"
	ColumnMaxPower   = "max_power"
	ColumnSeats      = "seats"
	ColumnBrandScore = "brand_score"
)

var (
	rawColumns        = []string{ColumnBrand, ColumnModel, ColumnEngine, ColumnMaxPower, ColumnSeats}
	aggregatedColumns = []string{ColumnBrand, ColumnModel, ColumnEngine, ColumnMaxPower, ColumnSeats, ColumnBrandScore}
)

// RawRecord is one row of a per-sale dataset. Nil measures were missing or unparsable.
type RawRecord struct {
	Brand    string
	Model    string
	Engine   *float64
	MaxPower *float64
	Seats    *float64
}

// AggregatedRow is one row of a table already keyed by brand and model
type AggregatedRow struct {
	Brand      string
	Model      string
	Engine     int
	MaxPower   int
	Seats      int
	BrandScore int
}

// ReadRaw parses a per-sale CSV dataset. Only the brand, model, engine, max_power
// and seats columns are read; any other column is ignored.
func ReadRaw(r io.Reader) ([]RawRecord, error) {
	reader, index, err := openCSV(r, rawColumns)
	if err != nil {
		return nil, err
	}

	var records []RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read CSV row")
		}
		records = append(records, RawRecord{
			Brand:    cell(row, index[ColumnBrand]),
			Model:    cell(row, index[ColumnModel]),
			Engine:   measure(cell(row, index[ColumnEngine])),
			MaxPower: measure(cell(row, index[ColumnMaxPower])),
			Seats:    measure(cell(row, index[ColumnSeats])),
		})
	}
	return records, nil
}

// ReadAggregated parses a pre-aggregated specs table. Every spec value must be numeric.
func ReadAggregated(r io.Reader) ([]AggregatedRow, error) {
	reader, index, err := openCSV(r, aggregatedColumns)
	if err != nil {
		return nil, err
	}

	var rows []AggregatedRow
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrap(err, "failed to read CSV row")
		}

		agg := AggregatedRow{
			Brand: cell(row, index[ColumnBrand]),
			Model: cell(row, index[ColumnModel]),
		}
		for _, f := range []struct {
			column string
			dst    *int
		}{
			{ColumnEngine, &agg.Engine},
			{ColumnMaxPower, &agg.MaxPower},
			{ColumnSeats, &agg.Seats},
			{ColumnBrandScore, &agg.BrandScore},
		} {
			v, err := cast.ToFloat64E(cell(row, index[f.column]))
			if err != nil || math.IsNaN(v) {
				return nil, errors.Errorf("line %d: invalid %s value %q", line, f.column, cell(row, index[f.column]))
			}
			*f.dst = int(v)
		}
		rows = append(rows, agg)
	}
	return rows, nil
}

func openCSV(r io.Reader, required []string) (*csv.Reader, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read CSV headers")
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, errors.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return reader, index, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func measure(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
