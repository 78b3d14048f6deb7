package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/config"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/service"
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Show or manage daily macro targets",
}

var (
	targetCalories float64
	targetProtein  float64
	targetCarbs    float64
	targetFat      float64
	targetDate     string
)

var targetSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set local daily targets with an effective date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			if err := e.requireLocal("target set"); err != nil {
				return err
			}
			in := service.SetTargetInput{
				Target:        model.MacroTarget{Calories: targetCalories, ProteinG: targetProtein, CarbsG: targetCarbs, FatG: targetFat},
				EffectiveDate: targetDate,
			}
			if in.EffectiveDate == "" {
				in.EffectiveDate = e.now().Format("2006-01-02")
			}
			if err := service.SetTarget(e.db, in); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Set target effective %s\n", in.EffectiveDate)
			return nil
		})
	},
}

var targetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the target in effect today",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			var t model.TargetState
			if e.cfg.Backend == config.BackendLocal {
				t = service.ResolveTarget(cmd.Context(), service.LocalTargets{DB: e.db, Now: e.now}, e.log)
			} else {
				sess, err := e.resume(cmd.Context())
				if err != nil {
					return err
				}
				t = sess.Target
			}
			printTargets(e.out, t)
			return nil
		})
	},
}

var targetHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show local target history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			if err := e.requireLocal("target history"); err != nil {
				return err
			}
			goals, err := service.TargetHistory(e.db)
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, "DATE\tKCAL\tP\tC\tF")
			for _, g := range goals {
				fmt.Fprintf(e.out, "%s\t%.0f\t%.1f\t%.1f\t%.1f\n", g.EffectiveDate, g.Target.Calories, g.Target.ProteinG, g.Target.CarbsG, g.Target.FatG)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(targetCmd)
	targetCmd.AddCommand(targetSetCmd, targetShowCmd, targetHistoryCmd)

	targetSetCmd.Flags().Float64Var(&targetCalories, "calories", 0, "Daily calorie target")
	targetSetCmd.Flags().Float64Var(&targetProtein, "protein", 0, "Daily protein target grams")
	targetSetCmd.Flags().Float64Var(&targetCarbs, "carbs", 0, "Daily carbs target grams")
	targetSetCmd.Flags().Float64Var(&targetFat, "fat", 0, "Daily fat target grams")
	targetSetCmd.Flags().StringVar(&targetDate, "effective-date", "", "Effective date YYYY-MM-DD (default today)")
	_ = targetSetCmd.MarkFlagRequired("calories")
	_ = targetSetCmd.MarkFlagRequired("protein")
	_ = targetSetCmd.MarkFlagRequired("carbs")
	_ = targetSetCmd.MarkFlagRequired("fat")
}
