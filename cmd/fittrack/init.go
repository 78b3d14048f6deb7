package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/app"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local fittrack database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		path, err := resolveDBPath(cfg)
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := db.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		if err := db.ApplyMigrations(sqldb); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized fittrack database at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
