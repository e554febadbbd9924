package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/seller-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/seller-atlas/pkg/runtime/terminal/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const DefaultConfigPath = "profiles.ini"

// CLI represents the command-line interface
type CLI struct {
	configPath string
	reporters  map[string]commands.ReportHandler
	logger     zerolog.Logger
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Logger *zerolog.Logger
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cli := &CLI{
		logger: logger,
		reporters: map[string]commands.ReportHandler{
			"table": export.NewReporter(opts.Output),
			"plain": NewReporter(opts.Output),
		},
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(cli.logger.WithContext(ctx))
}

// SetArgs overrides os.Args, mainly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sellers",
		Short:         "Seller performance analysis tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cli.configPath, "config", DefaultConfigPath, "Path to the dataset profiles file")

	cmd.AddCommand(commands.NewImportCmd(&cli.configPath))
	cmd.AddCommand(commands.NewReportCmd(&cli.configPath, cli.reporters))
	cmd.AddCommand(commands.NewProfilesCmd(&cli.configPath))

	return cmd
}
