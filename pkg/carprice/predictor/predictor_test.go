package predictor

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/errs"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/features"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var swift = dal.FeatureVector{5, 40000, 18.0, 1200, 83, 5, 5, 1, 0, 0, 0}

func testTable() *dal.SpecsTable {
	table := dal.NewSpecsTable()
	table.Set("Maruti", "Swift", dal.Specs{EngineCC: 1200, MaxPowerBHP: 83, Seats: 5, BrandScore: 5})
	return table
}

func TestInvoke(t *testing.T) {
	var got dal.FeatureVector
	p := Func(func(_ context.Context, fv dal.FeatureVector) (float64, error) {
		got = fv
		return 512345.6, nil
	})

	in := dal.NewPredictionInput("Maruti", "Swift")
	in.Fuel = dal.FuelDiesel

	pred, err := Invoke(context.Background(), p, in, testTable())
	require.NoError(t, err)
	assert.Equal(t, swift, got)
	assert.Equal(t, swift, pred.Features)
	assert.Equal(t, 512345.6, pred.Price)
	assert.Equal(t, "₹ 512,346", pred.Formatted)
	assert.Equal(t, 83, pred.Specs.MaxPowerBHP)
}

func TestInvokeSelectionIncomplete(t *testing.T) {
	called := false
	p := Func(func(context.Context, dal.FeatureVector) (float64, error) {
		called = true
		return 0, nil
	})

	_, err := Invoke(context.Background(), p, dal.NewPredictionInput("Maruti", "Baleno"), testTable())
	assert.True(t, errors.Is(err, features.ErrSelectionIncomplete))
	assert.False(t, called)
}

func TestInvokePassesNegativePrices(t *testing.T) {
	p := Func(func(context.Context, dal.FeatureVector) (float64, error) {
		return -1500, nil
	})

	pred, err := Invoke(context.Background(), p, dal.NewPredictionInput("Maruti", "Swift"), testTable())
	require.NoError(t, err)
	assert.Equal(t, -1500.0, pred.Price)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₹ 0", FormatPrice(0))
	assert.Equal(t, "₹ 999", FormatPrice(999.4))
	assert.Equal(t, "₹ 1,234,567", FormatPrice(1234567))
}

func linearArtifact() LinearModel {
	return LinearModel{
		Name:         "ridge",
		Intercept:    100000,
		Coefficients: []float64{-20000, -1, 1000, 100, 2000, 5000, 30000, 50000, 200000, -10000, 80000},
		Features:     dal.FeatureNames[:],
	}
}

func TestLinearModel(t *testing.T) {
	model := linearArtifact()
	require.NoError(t, model.validate())

	price, err := model.Predict(context.Background(), swift)
	require.NoError(t, err)
	// 100000 - 100000 - 40000 + 18000 + 120000 + 166000 + 25000 + 150000 + 50000
	assert.InDelta(t, 489000.0, price, 1e-6)
}

func TestLoadLinearModel(t *testing.T) {
	dir := t.TempDir()
	raw, err := json.Marshal(linearArtifact())
	require.NoError(t, err)

	plain := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(plain, raw, 0o600))

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err = gz.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	compressed := filepath.Join(dir, "model.json.gz")
	require.NoError(t, os.WriteFile(compressed, buf.Bytes(), 0o600))

	for _, path := range []string{plain, compressed} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			model, err := LoadLinearModel(path)
			require.NoError(t, err)
			assert.Equal(t, "ridge", model.Name)
			assert.Len(t, model.Coefficients, dal.FeatureCount)
		})
	}

	_, err = LoadLinearModel(filepath.Join(dir, "missing.pkl.gz"))
	require.Error(t, err)
	assert.Equal(t, errs.ErrorTypeConfig, errs.TypeOf(err))
}

func TestDecodeLinearModelRejectsOtherLayouts(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"ShortCoefficients", `{"coefficients":[1,2,3]}`, "3 coefficients"},
		{"SwappedFeatures", `{"coefficients":[1,1,1,1,1,1,1,1,1,1,1],"features":["km_driven","age","mileage","engine","max_power","seats","brand_score","fuel_diesel","fuel_electric","fuel_cng_lpg","transmission_automatic"]}`, `feature 0 is "km_driven"`},
		{"NotJSON", `pickle`, "failed to decode model"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeLinearModel(strings.NewReader(tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestHTTPClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req PredictRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, dal.FeatureNames[:], req.Columns)
		assert.Equal(t, [][]float64{swift.Slice()}, req.Data)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(PredictResponse{Predictions: []float64{455000}})
	}))
	defer ts.Close()

	price, err := NewHTTPClient(ts.URL, time.Second).Predict(context.Background(), swift)
	require.NoError(t, err)
	assert.Equal(t, 455000.0, price)
}

func TestHTTPClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "Status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("loading"))
			},
			want: "status 503: loading",
		},
		{
			name: "Empty",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"predictions":[]}`))
			},
			want: "no prediction",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(tc.handler)
			defer ts.Close()

			_, err := NewHTTPClient(ts.URL, time.Second).Predict(context.Background(), swift)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			assert.Equal(t, errs.ErrorTypeUpstream, errs.TypeOf(err))
		})
	}
}

func TestCached(t *testing.T) {
	calls := 0
	next := Func(func(_ context.Context, fv dal.FeatureVector) (float64, error) {
		calls++
		if fv[dal.FeatureAge] > 20 {
			return 0, errors.New("out of range")
		}
		return 1000 * fv[dal.FeatureAge], nil
	})
	cached := NewCached(next, time.Minute)

	for i := 0; i < 3; i++ {
		price, err := cached.Predict(context.Background(), swift)
		require.NoError(t, err)
		assert.Equal(t, 5000.0, price)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cached.Len())

	old := swift
	old[dal.FeatureAge] = 21
	_, err := cached.Predict(context.Background(), old)
	assert.Error(t, err)
	_, err = cached.Predict(context.Background(), old)
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, cached.Len())
}
