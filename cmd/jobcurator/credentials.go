package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobcurator/internal/secrets"
)

func newCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the search API key stored in the OS keychain",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <api-key>",
		Short: "Store the Google Custom Search API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := secrets.SetSearchAPIKey(args[0]); err != nil {
				return fmt.Errorf("store api key: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key stored in keychain.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := secrets.DeleteSearchAPIKey(); err != nil {
				return fmt.Errorf("delete api key: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key removed from keychain.")
			return nil
		},
	})
	return cmd
}
