package config

import (
	"strings"
	"time"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/errs"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/specs"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. CARPRICE_SPECS_PATH
const EnvPrefix = "CARPRICE"

// Keys understood by the service
const (
	KeyServerAddress = "server.address"
	KeySpecsPath     = "specs.path"
	KeySpecsFormat   = "specs.format"
	KeyModelPath     = "model.path"
	KeyModelURL      = "model.url"
	KeyModelTimeout  = "model.timeout"
	KeyCacheTTL      = "cache.ttl"
	KeyHistoryDSN    = "history.dsn"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Specs   SpecsConfig   `mapstructure:"specs"`
	Model   ModelConfig   `mapstructure:"model"`
	Cache   CacheConfig   `mapstructure:"cache"`
	History HistoryConfig `mapstructure:"history"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type SpecsConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

// ModelConfig points at the price model, either an artifact file or a serving endpoint
type ModelConfig struct {
	Path    string        `mapstructure:"path"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig controls prediction caching, a zero TTL disables it
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// HistoryConfig enables the prediction history when DSN is set
type HistoryConfig struct {
	DSN string `mapstructure:"dsn"`
}

// SetDefaults registers defaults and environment binding on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerAddress, ":8080")
	v.SetDefault(KeySpecsPath, "Cardekho.csv")
	v.SetDefault(KeySpecsFormat, string(specs.FormatRaw))
	v.SetDefault(KeyModelPath, "")
	v.SetDefault(KeyModelURL, "")
	v.SetDefault(KeyModelTimeout, 10*time.Second)
	v.SetDefault(KeyCacheTTL, 10*time.Minute)
	v.SetDefault(KeyHistoryDSN, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config and validates it
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.New(errs.ErrorTypeConfig, "invalid configuration: "+err.Error())
	}
	return cfg, nil
}

// SpecsFormat returns the validated specs source format
func (c Config) SpecsFormat() (specs.Format, error) {
	return specs.ParseFormat(c.Specs.Format)
}

// ValidateModel checks exactly one model source is configured
func (c Config) ValidateModel() error {
	switch {
	case c.Model.Path == "" && c.Model.URL == "":
		return errs.New(errs.ErrorTypeConfig, "no price model configured, set model.path or model.url")
	case c.Model.Path != "" && c.Model.URL != "":
		return errs.New(errs.ErrorTypeConfig, "model.path and model.url are mutually exclusive")
	}
	return nil
}
