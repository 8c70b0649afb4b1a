package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/errs"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/features"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/predictor"
	"github.com/pkg/errors"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

// BrandSummary defines one entry of the brand selector
type BrandSummary struct {
	Name   string `json:"name"`
	Models int    `json:"models"`
}

// BrandsResponse defines the brand selector payload
type BrandsResponse struct {
	TotalBrands int            `json:"total_brands"`
	TotalModels int            `json:"total_models"`
	Brands      []BrandSummary `json:"brands"`
}

// ModelsResponse defines the dependent model selector payload
type ModelsResponse struct {
	Brand  string   `json:"brand"`
	Models []string `json:"models"`
}

// SpecsResponse defines the auto-filled specs of a brand/model pair
type SpecsResponse struct {
	Brand string    `json:"brand"`
	Model string    `json:"model"`
	Specs dal.Specs `json:"specs"`
}

// ErrorResponse defines the body of every failed request
type ErrorResponse struct {
	Type  errs.ErrorType `json:"type"`
	Error string         `json:"error"`
}

// GetHealth reports liveness
func (h *httpServer) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetBrands lists every brand with its number of models
func (h *httpServer) GetBrands(w http.ResponseWriter, r *http.Request) {
	table, err := h.table(w)
	if err != nil {
		return
	}

	resp := BrandsResponse{}
	resp.TotalBrands, resp.TotalModels = table.Counts()
	for _, b := range table.Brands() {
		resp.Brands = append(resp.Brands, BrandSummary{Name: b, Models: len(table.Models(b))})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetModels lists the models of one brand
func (h *httpServer) GetModels(w http.ResponseWriter, r *http.Request) {
	table, err := h.table(w)
	if err != nil {
		return
	}

	brand := mux.Vars(r)["brand"]
	if !table.HasBrand(brand) {
		writeError(w, errs.New(errs.ErrorTypeNotFound, fmt.Sprintf("unknown brand: %s", brand)))
		return
	}
	writeJSON(w, http.StatusOK, ModelsResponse{
		Brand:  dal.NormalizeName(brand),
		Models: table.Models(brand),
	})
}

// GetSpecs returns the auto-filled specs of a brand/model pair
func (h *httpServer) GetSpecs(w http.ResponseWriter, r *http.Request) {
	table, err := h.table(w)
	if err != nil {
		return
	}

	vars := r.URL.Query()
	in := dal.PredictionInput{Brand: vars.Get("brand"), Model: vars.Get("model")}
	specs, err := features.Resolve(in, table)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SpecsResponse{
		Brand: dal.NormalizeName(in.Brand),
		Model: dal.NormalizeName(in.Model),
		Specs: specs,
	})
}

// GetPrediction defines a GET handler predicting a price from query parameters
func (h *httpServer) GetPrediction(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()
	in := dal.NewPredictionInput(vars.Get("brand"), vars.Get("model"))

	age, err := validateInt(w, vars, "age", in.Age)
	if err != nil {
		h.log.Printf("age validation failed: %v", err)
		return
	}

	km, err := validateInt(w, vars, "km", in.KmDriven)
	if err != nil {
		h.log.Printf("km validation failed: %v", err)
		return
	}

	mileage, err := validateMileage(w, vars, in.Mileage)
	if err != nil {
		h.log.Printf("mileage validation failed: %v", err)
		return
	}

	in.Age = age
	in.KmDriven = km
	in.Mileage = mileage
	in.Fuel = validateFuel(vars, in.Fuel)
	in.Transmission = validateTransmission(vars, in.Transmission)

	h.predict(w, r, in)
}

// PostPrediction defines a POST handler predicting a price from a JSON body.
// Fields left out of the body take the form defaults.
func (h *httpServer) PostPrediction(w http.ResponseWriter, r *http.Request) {
	in := dal.NewPredictionInput("", "")
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.log.Printf("prediction body decoding failed: %v", err)
		writeError(w, errs.New(errs.ErrorTypeBadRequest, fmt.Sprintf("invalid request body: %v", err)))
		return
	}
	in.Fuel = features.CanonicalFuel(in.Fuel)
	in.Transmission = features.CanonicalTransmission(in.Transmission)

	h.predict(w, r, in)
}

// GetPredictions lists the most recent predictions
func (h *httpServer) GetPredictions(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()
	limit, err := validateInt(w, vars, "limit", defaultHistoryLimit)
	if err != nil {
		h.log.Printf("limit validation failed: %v", err)
		return
	}
	if limit == 0 {
		err = errs.New(errs.ErrorTypeBadRequest, "limit must be at least 1")
		h.log.Printf("limit validation failed: %v", err)
		writeError(w, err)
		return
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.log.Printf("reading prediction history failed: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *httpServer) predict(w http.ResponseWriter, r *http.Request, in dal.PredictionInput) {
	start := time.Now()

	if err := features.Validate(in); err != nil {
		h.log.Printf("prediction input validation failed: %v", err)
		writeError(w, err)
		return
	}

	table, err := h.table(w)
	if err != nil {
		return
	}

	pred, err := predictor.Invoke(r.Context(), h.predictor, in, table)
	if err != nil {
		if errors.Is(err, features.ErrSelectionIncomplete) {
			h.metrics.selectionIncomplete.Inc(1)
		} else {
			h.metrics.failures.Inc(1)
			h.log.Printf("prediction failed for %s %s: %v", in.Brand, in.Model, err)
		}
		writeError(w, err)
		return
	}
	h.metrics.observe(start)

	if h.history != nil {
		if err := h.history.Record(r.Context(), pred); err != nil {
			h.log.Printf("recording prediction failed: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, pred)
}

// table returns the memoized specs table, writing a 500 when it could not be built
func (h *httpServer) table(w http.ResponseWriter) (*dal.SpecsTable, error) {
	table, err := h.specs.Table()
	if err != nil {
		h.log.Printf("specs table unavailable: %v", err)
		writeError(w, err)
		return nil, err
	}
	return table, nil
}

func validateInt(w http.ResponseWriter, vars url.Values, name string, def int) (int, error) {
	value := vars.Get(name)
	if value == "" {
		return def, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		err = errs.New(errs.ErrorTypeBadRequest, fmt.Sprintf("%s must be a whole number: %q", name, value))
		writeError(w, err)
		return 0, err
	}
	if v < 0 {
		err = errs.New(errs.ErrorTypeBadRequest, fmt.Sprintf("%s must be a positive number: %d", name, v))
		writeError(w, err)
		return 0, err
	}
	return v, nil
}

func validateMileage(w http.ResponseWriter, vars url.Values, def float64) (float64, error) {
	mileage := vars.Get("mileage")
	if mileage == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(mileage, 64)
	if err != nil {
		err = errs.New(errs.ErrorTypeBadRequest, fmt.Sprintf("mileage must be a number: %q", mileage))
		writeError(w, err)
		return 0, err
	}
	return v, nil
}

func validateFuel(vars url.Values, def string) string {
	fuel := vars.Get("fuel")
	if fuel == "" {
		return def
	}
	return features.CanonicalFuel(fuel)
}

func validateTransmission(vars url.Values, def string) string {
	transmission := vars.Get("transmission")
	if transmission == "" {
		return def
	}
	return features.CanonicalTransmission(transmission)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errs.StatusCode(err), ErrorResponse{Type: errs.TypeOf(err), Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
