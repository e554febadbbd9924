package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/seller-atlas/pkg/server"
	"github.com/de-tools/seller-atlas/pkg/services/config"
	"github.com/de-tools/seller-atlas/pkg/services/sellers"
	"github.com/de-tools/seller-atlas/pkg/store/duckdb"
	"github.com/de-tools/seller-atlas/pkg/store/duckdb/orderline"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var settingsPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Seller Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "",
		"Path to the settings file (defaults and SELLER_ATLAS_* environment apply)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(settings.LogLevel); err == nil {
		logger = logger.Level(level)
	}
	ctx := logger.WithContext(cmd.Context())

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: settings.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	store, err := orderline.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create order line store: %w", err)
	}

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read order line stats: %w", err)
	}
	logger.Info().
		Str("db", settings.DBPath).
		Int64("records", stats.RecordsCount).
		Int64("missing_approval", stats.MissingApproval).
		Msg("order line store opened")

	svc, err := sellers.NewService(store, settings.PipelineOptions())
	if err != nil {
		return fmt.Errorf("failed to create sellers service: %w", err)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Sellers: svc,
			Limits:  settings.Limits(),
			Logger:  logger,
		},
	})

	return api.Start()
}
