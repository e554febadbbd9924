package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/seller-atlas/pkg/store/duckdb"
	"github.com/de-tools/seller-atlas/pkg/store/duckdb/orderline"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	configPath *string
	profile    string
	replace    bool
}

func NewImportCmd(configPath *string) *cobra.Command {
	ic := &ImportCmd{configPath: configPath}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the order-items CSV of a dataset profile into its database",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.profile, "profile", "", "Name of the dataset profile")
	cmd.Flags().BoolVar(&ic.replace, "replace", false, "Drop previously imported order lines first")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	profile, err := loadProfile(ctx, *ic.configPath, ic.profile)
	if err != nil {
		return err
	}
	if profile.CSVPath == "" {
		return fmt.Errorf("profile %s has no csv path", profile.Name)
	}

	db, err := openDB(profile)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}()

	store, err := orderline.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create order line store: %w", err)
	}

	var n int64
	err = duckdb.RunInTransaction(ctx, db, func(ctx context.Context) error {
		if ic.replace {
			if err := store.Truncate(ctx); err != nil {
				return err
			}
		}
		imported, err := store.ImportCSV(ctx, profile.CSVPath)
		n = imported
		return err
	})
	if err != nil {
		return err
	}

	stats, err := store.GetStats(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d order lines into %s\n", n, profile)
	fmt.Fprintf(out, "Stored: %d lines, %d without approval time\n", stats.RecordsCount, stats.MissingApproval)
	if stats.FirstApproval != nil && stats.LastApproval != nil {
		fmt.Fprintf(out, "Approved between %s and %s\n",
			stats.FirstApproval.Format("2006-01-02"),
			stats.LastApproval.Format("2006-01-02"))
	}
	return nil
}
