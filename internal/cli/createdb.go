package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCreateDBCommand creates the createdb command.
func NewCreateDBCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "createdb",
		Short:        "Connect to the database and create all tables",
		Long:         "Connects to the configured database and creates the users, kids, checkins and kid_checkin tables. Existing tables are left untouched.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Connected to DB :)")

			return db.CreateAll(cmd.Context())
		},
	}
}
