package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/seller-atlas/pkg/adapters"
	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/de-tools/seller-atlas/pkg/services/config"
	"github.com/de-tools/seller-atlas/pkg/services/sellers"
	"github.com/de-tools/seller-atlas/pkg/store/duckdb/orderline"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	configPath   *string
	profile      string
	settingsPath string
	start        string
	end          string
	format       string
	reporters    map[string]ReportHandler
}

func NewReportCmd(configPath *string, reporters map[string]ReportHandler) *cobra.Command {
	rc := &ReportCmd{configPath: configPath, reporters: reporters}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the seller performance report of a dataset profile",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profile, "profile", "", "Name of the dataset profile")
	cmd.Flags().StringVar(&rc.settingsPath, "settings", "", "Path to the settings file")
	cmd.Flags().StringVar(&rc.start, "start", "", "First approval day, YYYY-MM-DD (default: first stored day)")
	cmd.Flags().StringVar(&rc.end, "end", "", "Last approval day, YYYY-MM-DD (default: last stored day)")
	cmd.Flags().StringVar(&rc.format, "format", "table", "Output format: "+strings.Join(rc.formats(), ", "))

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (rc *ReportCmd) formats() []string {
	formats := make([]string, 0, len(rc.reporters))
	for name := range rc.reporters {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	reporter, ok := rc.reporters[rc.format]
	if !ok {
		return fmt.Errorf("unsupported format %q. Supported formats: %v", rc.format, rc.formats())
	}

	settings, err := config.LoadSettings(rc.settingsPath)
	if err != nil {
		return err
	}

	profile, err := loadProfile(ctx, *rc.configPath, rc.profile)
	if err != nil {
		return err
	}
	currency := profile.Currency
	if currency == "" {
		currency = settings.Currency
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
	svc, err := sellers.NewService(store, settings.PipelineOptions())
	if err != nil {
		return err
	}

	rng, err := rc.window(cmd, svc)
	if err != nil {
		return err
	}

	res, err := svc.Summary(ctx, rng)
	if err != nil {
		return fmt.Errorf("failed to compute seller tables: %w", err)
	}

	return reporter.Handle(adapters.MapResultToDomainReport(res, settings.Limits(), currency))
}

// window returns the requested date range; missing bounds fall back to the
// stored period.
func (rc *ReportCmd) window(cmd *cobra.Command, svc sellers.Service) (domain.DateRange, error) {
	var rng domain.DateRange
	if rc.start == "" || rc.end == "" {
		period, err := svc.Period(cmd.Context())
		if err != nil {
			return domain.DateRange{}, err
		}
		rng = period
	}

	if rc.start != "" {
		start, err := domain.ParseDate(rc.start)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("invalid --start: %w", err)
		}
		rng.Start = start
	}
	if rc.end != "" {
		end, err := domain.ParseDate(rc.end)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("invalid --end: %w", err)
		}
		rng.End = end
	}
	return domain.NewDateRange(rng.Start, rng.End)
}
