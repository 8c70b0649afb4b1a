package features

import (
	"testing"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/errs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *dal.SpecsTable {
	table := dal.NewSpecsTable()
	table.Set("Maruti", "Swift", dal.Specs{EngineCC: 1200, MaxPowerBHP: 83, Seats: 5, BrandScore: 5})
	table.Set("Tata", "Nexon Ev", dal.Specs{EngineCC: 0, MaxPowerBHP: 127, Seats: 5, BrandScore: 4})
	return table
}

func TestAssembleOrder(t *testing.T) {
	in := dal.PredictionInput{
		Brand:        "Maruti",
		Model:        "Swift",
		Age:          5,
		KmDriven:     40000,
		Mileage:      18.0,
		Fuel:         dal.FuelDiesel,
		Transmission: dal.TransmissionManual,
	}

	fv, err := Assemble(in, testTable())
	require.NoError(t, err)
	assert.Equal(t, dal.FeatureVector{5, 40000, 18.0, 1200, 83, 5, 5, 1, 0, 0, 0}, fv)
	assert.Equal(t, []float64{5, 40000, 18.0, 1200, 83, 5, 5, 1, 0, 0, 0}, fv.Slice())
}

func TestEncodeFlags(t *testing.T) {
	tests := []struct {
		fuel         string
		transmission string
		want         [4]float64
	}{
		{dal.FuelPetrol, dal.TransmissionManual, [4]float64{0, 0, 0, 0}},
		{dal.FuelDiesel, dal.TransmissionManual, [4]float64{1, 0, 0, 0}},
		{dal.FuelElectric, dal.TransmissionManual, [4]float64{0, 1, 0, 0}},
		{dal.FuelCNG, dal.TransmissionManual, [4]float64{0, 0, 1, 0}},
		{dal.FuelLPG, dal.TransmissionManual, [4]float64{0, 0, 1, 0}},
		{dal.FuelPetrol, dal.TransmissionAutomatic, [4]float64{0, 0, 0, 1}},
		{"diesel", "automatic", [4]float64{1, 0, 0, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.fuel+"/"+tc.transmission, func(t *testing.T) {
			in := dal.NewPredictionInput("Maruti", "Swift")
			in.Fuel = tc.fuel
			in.Transmission = tc.transmission

			fv, err := Assemble(in, testTable())
			require.NoError(t, err)
			got := [4]float64{fv[dal.FeatureDiesel], fv[dal.FeatureElectric], fv[dal.FeatureCNGOrLPG], fv[dal.FeatureAutomatic]}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAssembleSelectionIncomplete(t *testing.T) {
	tests := []struct {
		name  string
		brand string
		model string
		table *dal.SpecsTable
	}{
		{"NoBrand", "", "Swift", testTable()},
		{"NoModel", "Maruti", " ", testTable()},
		{"UnknownBrand", "Lada", "Niva", testTable()},
		{"ModelOfOtherBrand", "Maruti", "Nexon Ev", testTable()},
		{"NoTable", "Maruti", "Swift", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fv, err := Assemble(dal.NewPredictionInput(tc.brand, tc.model), tc.table)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSelectionIncomplete))
			assert.Equal(t, errs.ErrorTypeSelectionIncomplete, errs.TypeOf(err))
			assert.Equal(t, dal.FeatureVector{}, fv)
		})
	}
}

func TestAssembleNormalizesSelection(t *testing.T) {
	fv, err := Assemble(dal.NewPredictionInput(" tata", "NEXON EV"), testTable())
	require.NoError(t, err)
	assert.Equal(t, dal.FeatureVector{5, 40000, 18, 0, 127, 5, 4, 0, 0, 0, 0}, fv)
}
