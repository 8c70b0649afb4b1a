package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/errs"
	"github.com/pkg/errors"
)

// PredictRequest is the body posted to a model serving endpoint
type PredictRequest struct {
	Columns []string    `json:"columns"`
	Data    [][]float64 `json:"data"`
}

// PredictResponse is the body returned by a model serving endpoint
type PredictResponse struct {
	Predictions []float64 `json:"predictions"`
}

// HTTPClient calls a remote model serving endpoint
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClient returns a client for the given prediction endpoint
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict posts a single-row batch and returns the first prediction
func (c *HTTPClient) Predict(ctx context.Context, fv dal.FeatureVector) (float64, error) {
	payload, err := json.Marshal(PredictRequest{
		Columns: dal.FeatureNames[:],
		Data:    [][]float64{fv.Slice()},
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to encode prediction request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, errors.Wrap(err, "failed to create prediction request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, errs.New(errs.ErrorTypeUpstream, fmt.Sprintf("model endpoint not reachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, errs.New(errs.ErrorTypeUpstream, fmt.Sprintf("model endpoint returned status %d: %s", resp.StatusCode, string(body)))
	}

	var predResp PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predResp); err != nil {
		return 0, errs.New(errs.ErrorTypeUpstream, fmt.Sprintf("failed to decode model response: %v", err))
	}
	if len(predResp.Predictions) == 0 {
		return 0, errs.New(errs.ErrorTypeUpstream, "model endpoint returned no prediction")
	}
	return predResp.Predictions[0], nil
}
