package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/config"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/history"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func init() {
	flags := ServeCmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.Duration("cache-ttl", 10*time.Minute, "prediction cache TTL, 0 disables the cache")
	flags.String("history-dsn", "", "SQLite database recording predictions, empty disables history")
	viper.BindPFlag(config.KeyServerAddress, flags.Lookup("addr"))
	viper.BindPFlag(config.KeyCacheTTL, flags.Lookup("cache-ttl"))
	viper.BindPFlag(config.KeyHistoryDSN, flags.Lookup("history-dsn"))
}

var (
	ServeCmd = &cobra.Command{
		Use:   ServeCmdName,
		Short: ServeCmdShort,
		Long:  ServeCmdLong,
		RunE:  serveCmdFunc(),
	}
)

func serveCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {

		log.Println("Started serve cmd")
		logger := newLogger(os.Stdout)

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		provider, err := newSpecsProvider(cfg, logger)
		if err != nil {
			return err
		}

		model, err := newPredictor(cfg, logger)
		if err != nil {
			return err
		}

		opts := server.Options{
			Specs:     provider,
			Predictor: model,
			Logger:    logger,
		}
		if cfg.History.DSN != "" {
			store, err := history.NewSQLiteStore(cfg.History.DSN)
			if err != nil {
				return err
			}
			defer store.Close()
			opts.History = store
		}

		serve := server.NewHTTPServer(cfg.Server.Address, opts)

		signalCh := make(chan os.Signal, 1)

		go func() {
			log.Printf("Listening on %s", cfg.Server.Address)
			if err := serve.ListenAndServe(); err != nil {
				log.Printf("Shutting down the server...%v", err)
				signalCh <- os.Interrupt

			}
		}()

		signal.Notify(signalCh, os.Interrupt)

		sig := <-signalCh

		log.Printf("Shutdown the server...%s", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return serve.Shutdown(ctx)
	}
}
