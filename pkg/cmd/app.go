package cmd

import (
	"io"
	"log"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/config"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/predictor"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/specs"
	"github.com/spf13/viper"
)

// newLogger writes diagnostics to w, never to the stream a command prints its result on
func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "logs: ", log.LstdFlags)
}

func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper())
}

// newSpecsProvider returns the process-wide specs provider and builds the table
// once, so a missing data source stops the command before it does anything else
func newSpecsProvider(cfg config.Config, logger *log.Logger) (*specs.Provider, error) {
	format, err := cfg.SpecsFormat()
	if err != nil {
		return nil, err
	}

	provider := specs.NewFileProvider(cfg.Specs.Path, format)
	table, err := provider.Table()
	if err != nil {
		return nil, err
	}

	brands, models := table.Counts()
	logger.Printf("Loaded %d brands and %d models from %s (%s)", brands, models, cfg.Specs.Path, format)
	return provider, nil
}

// newPredictor returns the configured price model
func newPredictor(cfg config.Config, logger *log.Logger) (predictor.Predictor, error) {
	if err := cfg.ValidateModel(); err != nil {
		return nil, err
	}

	var p predictor.Predictor
	if cfg.Model.URL != "" {
		p = predictor.NewHTTPClient(cfg.Model.URL, cfg.Model.Timeout)
		logger.Printf("Using model endpoint %s", cfg.Model.URL)
	} else {
		model, err := predictor.LoadLinearModel(cfg.Model.Path)
		if err != nil {
			return nil, err
		}
		p = model
		logger.Printf("Loaded model %q from %s", model.Name, cfg.Model.Path)
	}

	if cfg.Cache.TTL > 0 {
		p = predictor.NewCached(p, cfg.Cache.TTL)
	}
	return p, nil
}
