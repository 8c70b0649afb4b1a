package specs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/errs"
	"github.com/pkg/errors"
)

// Format selects the build strategy for a specs source
type Format string

const (
	// FormatRaw is a per-sale dataset that gets grouped and averaged
	FormatRaw Format = "raw"
	// FormatAggregated is a table already keyed by brand and model
	FormatAggregated Format = "aggregated"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatRaw, FormatAggregated:
		return Format(s), nil
	}
	return "", errs.New(errs.ErrorTypeConfig, fmt.Sprintf("unknown specs format %q (expected %q or %q)", s, FormatRaw, FormatAggregated))
}

// Read builds a specs table from r using the strategy of format
func Read(r io.Reader, format Format) (*dal.SpecsTable, error) {
	switch format {
	case FormatRaw:
		records, err := ReadRaw(r)
		if err != nil {
			return nil, err
		}
		return Aggregate(records), nil
	case FormatAggregated:
		rows, err := ReadAggregated(r)
		if err != nil {
			return nil, err
		}
		return Passthrough(rows), nil
	}
	_, err := ParseFormat(string(format))
	return nil, err
}

// LoadFile builds a specs table from a local CSV file
func LoadFile(path string, format Format) (*dal.SpecsTable, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.ErrorTypeConfig, fmt.Sprintf("specs data file %q not found, place it next to the binary or set specs.path", path))
		}
		return nil, errors.Wrapf(err, "failed to open specs data file %q", path)
	}
	defer f.Close()

	table, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load specs data file %q", path)
	}
	return table, nil
}

// WriteAggregated writes a table in the pre-aggregated CSV format read by ReadAggregated
func WriteAggregated(w io.Writer, table *dal.SpecsTable) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(aggregatedColumns); err != nil {
		return err
	}

	var werr error
	table.Each(func(brand, model string, s dal.Specs) {
		if werr != nil {
			return
		}
		werr = writer.Write([]string{
			brand,
			model,
			strconv.Itoa(s.EngineCC),
			strconv.Itoa(s.MaxPowerBHP),
			strconv.Itoa(s.Seats),
			strconv.Itoa(s.BrandScore),
		})
	})
	if werr != nil {
		return werr
	}

	writer.Flush()
	return writer.Error()
}
