package fittrack

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the food catalog (values per 100 g)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withEnv(cmd, func(e *env) error {
			cat, err := e.catalog(cmd.Context())
			if err != nil {
				return err
			}
			foods, err := cat.SearchFoods(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(foods) == 0 {
				fmt.Fprintf(e.out, "No foods found for %q\n", query)
				return nil
			}
			fmt.Fprintln(e.out, "#\tNAME\tKCAL/100g\tP\tC\tF")
			for i, f := range foods {
				n := f.Per100g
				fmt.Fprintf(e.out, "%d\t%s\t%.1f\t%.1f\t%.1f\t%.1f\n", i+1, f.Name, n.Calories, n.ProteinG, n.CarbsG, n.FatG)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
