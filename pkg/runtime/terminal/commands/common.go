package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/de-tools/seller-atlas/pkg/services/config"
	"github.com/de-tools/seller-atlas/pkg/store/duckdb"
)

// ReportHandler renders a report to some output.
type ReportHandler interface {
	Handle(report *domain.Report) error
}

func loadProfile(ctx context.Context, configPath, name string) (domain.DatasetProfile, error) {
	registry, err := config.NewRegistry(configPath)
	if err != nil {
		return domain.DatasetProfile{}, fmt.Errorf("failed to create profile registry: %w", err)
	}
	return registry.GetProfile(ctx, name)
}

func openDB(profile domain.DatasetProfile) (*sql.DB, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: profile.DBPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open database for profile %s: %w", profile, err)
	}
	return db, nil
}
