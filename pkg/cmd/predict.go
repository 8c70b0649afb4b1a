package cmd

import (
	"context"
	"fmt"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/features"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/predictor"
	"github.com/spf13/cobra"
)

var predictInput = dal.NewPredictionInput("", "")

func init() {
	flags := PredictCmd.Flags()
	flags.StringVar(&predictInput.Brand, "brand", "", "car brand")
	flags.StringVar(&predictInput.Model, "model", "", "car model")
	flags.IntVar(&predictInput.Age, "age", dal.DefaultAge, "vehicle age in years (0-25)")
	flags.IntVar(&predictInput.KmDriven, "km", dal.DefaultKmDriven, "km driven (0-300000)")
	flags.Float64Var(&predictInput.Mileage, "mileage", dal.DefaultMileage, "mileage in km/l (5-40)")
	flags.StringVar(&predictInput.Fuel, "fuel", dal.DefaultFuel, "Petrol, Diesel, CNG, LPG or Electric")
	flags.StringVar(&predictInput.Transmission, "transmission", dal.DefaultTransmission, "Manual or Automatic")
}

var (
	PredictCmd = &cobra.Command{
		Use:   PredictCmdName,
		Short: PredictCmdShort,
		Long:  PredictCmdLong,
		RunE:  predictCmdFunc(),
	}
)

func predictCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd.ErrOrStderr())

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		in := predictInput
		in.Fuel = features.CanonicalFuel(in.Fuel)
		in.Transmission = features.CanonicalTransmission(in.Transmission)
		if err := features.Validate(in); err != nil {
			return err
		}

		provider, err := newSpecsProvider(cfg, logger)
		if err != nil {
			return err
		}
		table, err := provider.Table()
		if err != nil {
			return err
		}

		model, err := newPredictor(cfg, logger)
		if err != nil {
			return err
		}

		pred, err := predictor.Invoke(context.Background(), model, in, table)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		s := pred.Specs
		fmt.Fprintf(out, "Auto-filled Specs: %d CC | %d BHP | %d Seats | Brand Score %d\n", s.EngineCC, s.MaxPowerBHP, s.Seats, s.BrandScore)
		fmt.Fprintf(out, "Estimated Resale Price: %s\n", pred.Formatted)
		return nil
	}
}
