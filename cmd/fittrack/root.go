package fittrack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath      string
	apiURL      string
	backendFlag string
	catalogFlag string
	tzFlag      string
	strictInput bool
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "fittrack logs food and tracks daily macros from your terminal",
	Long: "fittrack is a terminal client for the fitness tracker API. It logs foods by weight, " +
		"rescales portions, and shows today's totals against your daily macro targets.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dbPath, "db", "", "Path to SQLite database (env FITTRACK_DB_PATH)")
	pf.StringVar(&apiURL, "api-url", "", "Tracker API base URL (env FITTRACK_API_URL)")
	pf.StringVar(&backendFlag, "backend", "", "Food log backend: remote or local (env FITTRACK_BACKEND)")
	pf.StringVar(&catalogFlag, "catalog", "", "Food catalog: remote, usda, or openfoodfacts (env FITTRACK_CATALOG)")
	pf.StringVar(&tzFlag, "tz", "", "IANA time zone that defines \"today\" (env FITTRACK_TIMEZONE)")
	pf.BoolVar(&strictInput, "strict", false, "Reject malformed numbers instead of treating them as 0 (env FITTRACK_STRICT_INPUT)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (env FITTRACK_LOG_LEVEL)")
}
