package cli

import (
	"github.com/spf13/cobra"

	"peersatpark/internal/config"
	"peersatpark/internal/database"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath   string
	DatabaseType string
	DatabaseURL  string
	DatabasePath string
}

// NewRootCommand creates the root command for the parksdb CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "parksdb",
		Short: "Manage the park check-in database",
		Long:  "Create, back up and restore the database that records park check-ins of users and their kids.",
		// main reports the error
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file (overrides PARKS_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.DatabaseType, "database-type", "", "database type (postgres|mysql|sqlite)")
	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database-url", "", "connection URL for postgres or mysql")
	cmd.PersistentFlags().StringVar(&opts.DatabasePath, "database-path", "", "database file for sqlite")

	// Add subcommands
	cmd.AddCommand(NewCreateDBCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

// Config resolves the configuration: defaults, .env, the PARKS_CONFIG
// file and the environment, then the --config file, then the command
// line flags.
func (o *RootOptions) Config() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if o.ConfigPath != "" {
		if err := cfg.LoadFile(o.ConfigPath); err != nil {
			return nil, err
		}
	}

	if o.DatabaseType != "" {
		cfg.DatabaseType = o.DatabaseType
	}
	if o.DatabaseURL != "" {
		cfg.DatabaseURL = o.DatabaseURL
	}
	if o.DatabasePath != "" {
		cfg.DatabasePath = o.DatabasePath
	}

	return cfg, nil
}

func openDB(cmd *cobra.Command, opts *RootOptions) (*database.DB, error) {
	cfg, err := opts.Config()
	if err != nil {
		return nil, err
	}
	return database.Connect(cmd.Context(), cfg)
}
