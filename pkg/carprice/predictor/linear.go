package predictor

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/errs"
	"github.com/pkg/errors"
)

// LinearModel is a regression model exported as an artifact file
type LinearModel struct {
	Name         string    `json:"name"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Features     []string  `json:"features"`
}

// LoadLinearModel reads a model artifact. Paths ending in .gz are gunzipped first.
func LoadLinearModel(path string) (*LinearModel, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.ErrorTypeConfig, fmt.Sprintf("model artifact %q not found", path))
		}
		return nil, errors.Wrapf(err, "failed to open model artifact %q", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decompress model artifact %q", path)
		}
		defer gz.Close()
		r = gz
	}

	model, err := DecodeLinearModel(r)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid model artifact %q", path)
	}
	return model, nil
}

// DecodeLinearModel parses and validates a model artifact
func DecodeLinearModel(r io.Reader) (*LinearModel, error) {
	var model LinearModel
	if err := json.NewDecoder(r).Decode(&model); err != nil {
		return nil, errors.Wrap(err, "failed to decode model")
	}
	if err := model.validate(); err != nil {
		return nil, err
	}
	return &model, nil
}

// validate checks the model was trained on the feature layout this service produces
func (m *LinearModel) validate() error {
	if len(m.Coefficients) != dal.FeatureCount {
		return errors.Errorf("model has %d coefficients, expected %d", len(m.Coefficients), dal.FeatureCount)
	}
	if len(m.Features) == 0 {
		return nil
	}
	if len(m.Features) != dal.FeatureCount {
		return errors.Errorf("model lists %d features, expected %d", len(m.Features), dal.FeatureCount)
	}
	for i, name := range m.Features {
		if name != dal.FeatureNames[i] {
			return errors.Errorf("model feature %d is %q, expected %q", i, name, dal.FeatureNames[i])
		}
	}
	return nil
}

// Predict returns intercept + coefficients · fv
func (m *LinearModel) Predict(_ context.Context, fv dal.FeatureVector) (float64, error) {
	price := m.Intercept
	for i, v := range fv {
		price += m.Coefficients[i] * v
	}
	return price, nil
}
