package cli

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"peersatpark/internal/service"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Write a JSON backup of every table",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			// Generate default filename if not provided
			if output == "" {
				output = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
			}

			if dir := filepath.Dir(output); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			if err := service.NewBackupService(db).Export(cmd.Context(), output); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: backup_YYYYMMDD_HHMMSS.json)")
	return cmd
}

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	Input string
	Clear bool
	Yes   bool
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore a JSON backup",
		Long: `Restore a JSON backup produced by export.

Rows receive new identifiers, so a backup can be merged into a database
that already holds data. With --clear every table is dropped and
recreated first.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "backup file to restore (required)")
	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "drop all existing data before import (destructive)")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the --clear confirmation prompt")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runImport(cmd *cobra.Command, rootOpts *RootOptions, opts *ImportOptions) error {
	ctx := cmd.Context()

	if _, err := os.Stat(opts.Input); err != nil {
		return fmt.Errorf("input file %s: %w", opts.Input, err)
	}

	db, err := openDB(cmd, rootOpts)
	if err != nil {
		return err
	}
	defer db.Close()

	if opts.Clear {
		if !opts.Yes && !confirm(cmd, "WARNING: This will delete all existing data. Type 'yes' to confirm: ") {
			fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled")
			return nil
		}

		log.Println("Clearing existing data...")
		if err := db.DropAll(ctx); err != nil {
			return fmt.Errorf("failed to clear database: %w", err)
		}
	}

	if err := db.CreateAll(ctx); err != nil {
		return err
	}

	stats, err := service.NewBackupService(db).Import(ctx, opts.Input)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d users, %d kids, %d checkins, %d kid checkins\n",
		stats.Users, stats.Kids, stats.Checkins, stats.KidCheckins)
	return nil
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	return strings.TrimSpace(answer) == "yes"
}
