// Package features turns a prediction request into the numeric row expected by the price model.
package features

import (
	"strings"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/errs"
)

// ErrSelectionIncomplete is returned when the brand/model pair cannot be resolved to specs
var ErrSelectionIncomplete = errs.New(errs.ErrorTypeSelectionIncomplete, "please select both brand and model")

// Flags holds the one-hot encoding of fuel and transmission. Petrol with a manual
// gearbox is the baseline and sets no flag.
type Flags struct {
	Diesel    bool
	Electric  bool
	CNGOrLPG  bool
	Automatic bool
}

// EncodeFlags derives the fuel and transmission indicators
func EncodeFlags(fuel, transmission string) Flags {
	fuel = strings.ToLower(strings.TrimSpace(fuel))
	return Flags{
		Diesel:    fuel == strings.ToLower(dal.FuelDiesel),
		Electric:  fuel == strings.ToLower(dal.FuelElectric),
		CNGOrLPG:  fuel == strings.ToLower(dal.FuelCNG) || fuel == strings.ToLower(dal.FuelLPG),
		Automatic: strings.EqualFold(strings.TrimSpace(transmission), dal.TransmissionAutomatic),
	}
}

// Resolve looks up the specs of the selected brand and model
func Resolve(in dal.PredictionInput, table *dal.SpecsTable) (dal.Specs, error) {
	if table == nil || strings.TrimSpace(in.Brand) == "" || strings.TrimSpace(in.Model) == "" {
		return dal.Specs{}, ErrSelectionIncomplete
	}
	specs, ok := table.Lookup(in.Brand, in.Model)
	if !ok {
		return dal.Specs{}, ErrSelectionIncomplete
	}
	return specs, nil
}

// Assemble resolves the specs of in and builds its feature vector
func Assemble(in dal.PredictionInput, table *dal.SpecsTable) (dal.FeatureVector, error) {
	specs, err := Resolve(in, table)
	if err != nil {
		return dal.FeatureVector{}, err
	}
	return Vector(in, specs), nil
}

// Vector builds the feature vector of in using already resolved specs
func Vector(in dal.PredictionInput, specs dal.Specs) dal.FeatureVector {
	flags := EncodeFlags(in.Fuel, in.Transmission)

	var fv dal.FeatureVector
	fv[dal.FeatureAge] = float64(in.Age)
	fv[dal.FeatureKmDriven] = float64(in.KmDriven)
	fv[dal.FeatureMileage] = in.Mileage
	fv[dal.FeatureEngine] = float64(specs.EngineCC)
	fv[dal.FeaturePower] = float64(specs.MaxPowerBHP)
	fv[dal.FeatureSeats] = float64(specs.Seats)
	fv[dal.FeatureBrandScore] = float64(specs.BrandScore)
	fv[dal.FeatureDiesel] = indicator(flags.Diesel)
	fv[dal.FeatureElectric] = indicator(flags.Electric)
	fv[dal.FeatureCNGOrLPG] = indicator(flags.CNGOrLPG)
	fv[dal.FeatureAutomatic] = indicator(flags.Automatic)
	return fv
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
