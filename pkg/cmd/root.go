package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:               RootCmdName,
	Short:             RootCmdShort,
	Long:              RootCmdLong,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

func Execute() {

	if err := RootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(-1)
	}
}

func init() {
	config.SetDefaults(viper.GetViper())

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("specs-path", "Cardekho.csv", "specs data CSV file")
	flags.String("specs-format", "raw", `specs data format: "raw" (per-sale records) or "aggregated"`)
	flags.String("model-path", "", "model artifact file (.json or .json.gz)")
	flags.String("model-url", "", "model serving endpoint")
	viper.BindPFlag(config.KeySpecsPath, flags.Lookup("specs-path"))
	viper.BindPFlag(config.KeySpecsFormat, flags.Lookup("specs-format"))
	viper.BindPFlag(config.KeyModelPath, flags.Lookup("model-path"))
	viper.BindPFlag(config.KeyModelURL, flags.Lookup("model-url"))

	RootCmd.AddCommand(ServeCmd)
	RootCmd.AddCommand(PredictCmd)
	RootCmd.AddCommand(SpecsCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
		log.Printf("Using config file %s", viper.ConfigFileUsed())
	}
	return nil
}
