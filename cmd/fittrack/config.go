package fittrack

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		path, err := resolveDBPath(cfg)
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		usdaKey := "unset"
		if cfg.USDAAPIKey != "" {
			usdaKey = "set"
		}
		rows := [][2]string{
			{"api_url", cfg.APIURL},
			{"backend", string(cfg.Backend)},
			{"catalog", string(cfg.Catalog)},
			{"db_path", path},
			{"http_timeout", cfg.HTTPTimeout.String()},
			{"log_level", cfg.LogLevel},
			{"strict_input", strconv.FormatBool(cfg.StrictInput)},
			{"timezone", loc.String()},
			{"usda_api_key", usdaKey},
		}
		fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
		for _, r := range rows {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r[0], r[1])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
