package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/service"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake and progress toward your targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			w, err := e.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			if err := w.log.Refresh(cmd.Context()); err != nil {
				return err
			}
			snap := w.log.Snapshot()
			status := service.TodaySummary(snap.Now, snap.Totals, w.target)

			fmt.Fprintf(e.out, "Date: %s (%d entries)\n", status.Date, len(snap.Today))
			fmt.Fprintf(e.out, "Totals: %s\n", macroLine(status.Totals.Nutrients))
			if !status.Target.Known {
				fmt.Fprintln(e.out, "Targets: —")
			}
			for _, row := range status.Rows {
				fmt.Fprintln(e.out, renderMacroRow(row))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
