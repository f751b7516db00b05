package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buchfink-dev/buchfink/internal/accounts"
	"github.com/buchfink-dev/buchfink/internal/eur"
)

func newInitCommand(configPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database and seed the SKR03 chart and EUER mappings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openEnv(*configPath)
			if err != nil {
				return err
			}

			konten, err := accounts.NewService(db).SeedDefaultChart(force)
			if err != nil {
				return fmt.Errorf("seeding chart of accounts: %w", err)
			}

			mappings, err := eur.SeedOfficialMappings(db, force)
			if err != nil {
				return fmt.Errorf("seeding eur mappings: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d Konten, %d EUER-Zeilen geladen\n", konten, mappings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing accounts and mappings")
	return cmd
}
