package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobcurator/internal/config"
)

func newInitCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write the default configuration to --config, or to
$XDG_CONFIG_HOME/jobcurator/config.yml when --config is not set.
An existing file is left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			created, err := config.EnsureUserConfig(path, force)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			if !created {
				return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Set GOOGLE_CSE_ID in the file or environment, and store the API key with:")
			fmt.Fprintln(cmd.OutOrStdout(), "  jobcurator credentials set <api-key>")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")
	return cmd
}
