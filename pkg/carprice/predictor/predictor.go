package predictor

import (
	"context"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/features"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes formatted prices
const CurrencySymbol = "₹"

// Predictor defines the interface of a trained price model
type Predictor interface {
	// Predict returns the price for a single feature row. The value is passed
	// through as produced by the model, negative or not.
	Predict(ctx context.Context, fv dal.FeatureVector) (float64, error)
}

// Func adapts an in-process function to the Predictor interface
type Func func(ctx context.Context, fv dal.FeatureVector) (float64, error)

// Predict calls f
func (f Func) Predict(ctx context.Context, fv dal.FeatureVector) (float64, error) {
	return f(ctx, fv)
}

// Invoke resolves specs, assembles the feature vector and asks p for a price
func Invoke(ctx context.Context, p Predictor, in dal.PredictionInput, table *dal.SpecsTable) (dal.Prediction, error) {
	specs, err := features.Resolve(in, table)
	if err != nil {
		return dal.Prediction{}, err
	}
	fv := features.Vector(in, specs)

	price, err := p.Predict(ctx, fv)
	if err != nil {
		return dal.Prediction{}, errors.Wrap(err, "price model failed")
	}

	return dal.Prediction{
		Input:     in,
		Specs:     specs,
		Features:  fv,
		Price:     price,
		Formatted: FormatPrice(price),
	}, nil
}

// FormatPrice renders a price rounded to whole units with thousands separators, e.g. "₹ 1,234,567"
func FormatPrice(price float64) string {
	p := message.NewPrinter(language.English)
	return CurrencySymbol + " " + p.Sprintf("%.0f", price)
}
