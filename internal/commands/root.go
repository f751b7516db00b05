package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/buchfink-dev/buchfink/internal/buildinfo"
	"github.com/buchfink-dev/buchfink/internal/config"
	"github.com/buchfink-dev/buchfink/internal/database"
	"github.com/buchfink-dev/buchfink/internal/logger"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "buchfink",
		Short:   "SKR03 bookkeeping and EUER reporting",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default buchfink.yaml)")

	rootCmd.AddCommand(newInitCommand(&configPath))
	rootCmd.AddCommand(newImportCommand(&configPath))
	rootCmd.AddCommand(newSuggestCommand(&configPath))
	rootCmd.AddCommand(newReportCommand(&configPath))

	return rootCmd
}

// openEnv loads config, sets up logging and opens the database.
func openEnv(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return nil, nil, fmt.Errorf("setting up logging: %w", err)
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
