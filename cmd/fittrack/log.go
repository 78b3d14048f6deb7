package fittrack

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/nutrition"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/service"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log foods and manage logged entries",
}

var (
	addGrams float64
	addPick  int
)

var logAddCmd = &cobra.Command{
	Use:   "add <query>",
	Short: "Search the catalog and log a match by weight",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := nutrition.ValidateGrams(addGrams); err != nil {
			return err
		}
		if addPick < 1 {
			return fmt.Errorf("--pick must be >= 1")
		}
		query := strings.Join(args, " ")
		return withEnv(cmd, func(e *env) error {
			w, err := e.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			foods, err := w.catalog.SearchFoods(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(foods) == 0 {
				return fmt.Errorf("no foods found for %q", query)
			}
			if addPick > len(foods) {
				return fmt.Errorf("--pick %d out of range (%d results)", addPick, len(foods))
			}
			food := foods[addPick-1]
			entry, err := w.log.Log(cmd.Context(), food, addGrams)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Logged %s (%.1f g) as %s\n", entry.Name, entry.Grams, entry.ID)
			fmt.Fprintf(e.out, "  %s\n", macroLine(entry.Nutrients.Nutrients))
			return nil
		})
	},
}

var customFood service.CustomFood

var logCustomCmd = &cobra.Command{
	Use:   "custom",
	Short: "Log a food that is not in the catalog (values per 100 g)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			w, err := e.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			entry, err := w.log.LogCustom(cmd.Context(), customFood, e.cfg.StrictInput)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Logged %s (%.1f g) as %s\n", entry.Name, entry.Grams, entry.ID)
			fmt.Fprintf(e.out, "  %s\n", macroLine(entry.Nutrients.Nutrients))
			return nil
		})
	},
}

var listAll bool

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's entries",
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
			entries, layout := snap.Today, "15:04"
			if listAll {
				entries, layout = w.log.Entries(), "2006-01-02 15:04"
			}
			fmt.Fprintln(e.out, "ID\tTIME\tNAME\tGRAMS\tKCAL\tP\tC\tF")
			for _, en := range entries {
				n := en.Nutrients
				fmt.Fprintf(e.out, "%s\t%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
					en.ID, en.LoggedAt.In(e.loc).Format(layout), en.Name, en.Grams, n.Calories, n.ProteinG, n.CarbsG, n.FatG)
			}
			fmt.Fprintf(e.out, "Today: %s\n", macroLine(snap.Totals.Nutrients))
			return nil
		})
	},
}

var (
	portionGrams    float64
	portionHalf     bool
	portionIncrease bool
)

var logPortionCmd = &cobra.Command{
	Use:   "portion <id>",
	Short: "Change the gram amount of a logged entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := strings.TrimSpace(args[0])
		set := 0
		for _, changed := range []bool{cmd.Flags().Changed("grams"), portionHalf, portionIncrease} {
			if changed {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("set exactly one of --grams, --half, or --increase")
		}
		return withEnv(cmd, func(e *env) error {
			w, err := e.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			var updated model.LoggedEntry
			switch {
			case portionHalf:
				updated, err = w.log.ScalePortion(cmd.Context(), id, 0.5)
			case portionIncrease:
				updated, err = w.log.ScalePortion(cmd.Context(), id, 1.5)
			default:
				updated, err = w.log.AdjustPortion(cmd.Context(), id, portionGrams)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Updated %s to %.1f g\n", updated.ID, updated.Grams)
			fmt.Fprintf(e.out, "  %s\n", macroLine(updated.Nutrients.Nutrients))
			return nil
		})
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			w, err := e.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			if err := w.log.Delete(cmd.Context(), strings.TrimSpace(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Deleted entry %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd, logCustomCmd, logListCmd, logPortionCmd, logDeleteCmd)

	logAddCmd.Flags().Float64Var(&addGrams, "grams", 100, "Amount eaten in grams")
	logAddCmd.Flags().IntVar(&addPick, "pick", 1, "Which search result to log (1-based)")

	logCustomCmd.Flags().StringVar(&customFood.Name, "name", "", "Food name")
	logCustomCmd.Flags().StringVar(&customFood.Calories, "calories", "", "Calories per 100 g")
	logCustomCmd.Flags().StringVar(&customFood.Protein, "protein", "", "Protein grams per 100 g")
	logCustomCmd.Flags().StringVar(&customFood.Carbs, "carbs", "", "Carbs grams per 100 g")
	logCustomCmd.Flags().StringVar(&customFood.Fat, "fat", "", "Fat grams per 100 g")
	logCustomCmd.Flags().StringVar(&customFood.Grams, "grams", "", "Amount eaten in grams (default 100)")
	_ = logCustomCmd.MarkFlagRequired("name")

	logListCmd.Flags().BoolVar(&listAll, "all", false, "List every entry, not just today's")

	logPortionCmd.Flags().Float64Var(&portionGrams, "grams", 0, "New amount in grams")
	logPortionCmd.Flags().BoolVar(&portionHalf, "half", false, "Halve the portion")
	logPortionCmd.Flags().BoolVar(&portionIncrease, "increase", false, "Increase the portion by 50%")
}
