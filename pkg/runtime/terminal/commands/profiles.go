package commands

import (
	"fmt"

	"github.com/de-tools/seller-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	configPath *string
}

func NewProfilesCmd(configPath *string) *cobra.Command {
	pc := &ProfilesCmd{configPath: configPath}
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the dataset profiles",
		RunE:  pc.run,
	}
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	registry, err := config.NewRegistry(*pc.configPath)
	if err != nil {
		return fmt.Errorf("failed to create profile registry: %w", err)
	}

	names, err := registry.GetProfiles(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in %s\n", *pc.configPath)
		return nil
	}

	for _, name := range names {
		profile, err := registry.GetProfile(ctx, name)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (invalid: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\tcsv=%s\n", profile, profile.CSVPath)
	}
	return nil
}
