package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/errs"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/specs"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "Cardekho.csv", cfg.Specs.Path)
	assert.Equal(t, 10*time.Second, cfg.Model.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)

	format, err := cfg.SpecsFormat()
	require.NoError(t, err)
	assert.Equal(t, specs.FormatRaw, format)

	assert.Equal(t, errs.ErrorTypeConfig, errs.TypeOf(cfg.ValidateModel()))
}

func TestLoadFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carprice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
specs:
  path: /data/car_specs.csv
  format: aggregated
model:
  url: http://localhost:5002/predict
  timeout: 3s
cache:
  ttl: 0s
`), 0o600))
	t.Setenv("CARPRICE_SERVER_ADDRESS", ":9090")

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "/data/car_specs.csv", cfg.Specs.Path)
	assert.Equal(t, 3*time.Second, cfg.Model.Timeout)
	assert.Equal(t, time.Duration(0), cfg.Cache.TTL)
	assert.NoError(t, cfg.ValidateModel())

	format, err := cfg.SpecsFormat()
	require.NoError(t, err)
	assert.Equal(t, specs.FormatAggregated, format)
}

func TestValidateModelExclusive(t *testing.T) {
	cfg := Config{Model: ModelConfig{Path: "model.json.gz", URL: "http://localhost:5002/predict"}}
	err := cfg.ValidateModel()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}
