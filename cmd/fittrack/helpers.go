package fittrack

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/app"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/config"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/db"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/logger"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/provider/api"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/provider/openfoodfacts"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/provider/usda"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/service"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/session"
)

// resolveConfig layers explicitly set flags over the environment.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = dbPath
	}
	if flags.Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if flags.Changed("backend") {
		cfg.Backend = config.Backend(backendFlag)
	}
	if flags.Changed("catalog") {
		cfg.Catalog = config.CatalogSource(catalogFlag)
	}
	if flags.Changed("tz") {
		cfg.Timezone = tzFlag
	}
	if flags.Changed("strict") {
		cfg.StrictInput = strictInput
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveDBPath(cfg *config.Config) (string, error) {
	if strings.TrimSpace(cfg.DBPath) != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

type env struct {
	cfg *config.Config
	db  *sql.DB
	log zerolog.Logger
	loc *time.Location
	api *api.Client
	out io.Writer
}

func withEnv(cmd *cobra.Command, run func(*env) error) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
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
	sqldb, err := db.OpenMigrated(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	log := logger.New(cfg.LogLevel, cmd.ErrOrStderr())
	client := api.New(cfg.APIURL, cfg.HTTPTimeout, log)
	client.Location = loc
	log.Debug().Str("db", path).Str("backend", string(cfg.Backend)).Str("catalog", string(cfg.Catalog)).Msg("environment ready")

	return run(&env{cfg: cfg, db: sqldb, log: log, loc: loc, api: client, out: cmd.OutOrStdout()})
}

// now reads the clock in the viewer's zone, which decides what "today" is.
func (e *env) now() time.Time {
	return time.Now().In(e.loc)
}

func (e *env) sessions() *session.Manager {
	return &session.Manager{
		Identity: e.api,
		Tokens:   service.ConfigTokenStore{DB: e.db},
		Account:  func(tok model.Token) session.Account { return e.api.WithToken(tok) },
		Log:      e.log,
	}
}

func (e *env) resume(ctx context.Context) (*session.Session, error) {
	sess, err := e.sessions().Resume(ctx)
	if errors.Is(err, session.ErrNotAuthenticated) || errors.Is(err, session.ErrSessionExpired) {
		return nil, fmt.Errorf("%w (run `fittrack login`)", err)
	}
	return sess, err
}

func (e *env) requireRemote(what string) error {
	if e.cfg.Backend != config.BackendRemote {
		return fmt.Errorf("%s needs the remote backend (--backend remote)", what)
	}
	return nil
}

func (e *env) requireLocal(what string) error {
	if e.cfg.Backend != config.BackendLocal {
		return fmt.Errorf("%s is only available with the local backend; remote targets are computed by the server", what)
	}
	return nil
}

// workspace is the food log, catalog and target a command operates on.
type workspace struct {
	log     *service.FoodLog
	catalog service.Catalog
	target  model.TargetState
	session *session.Session
}

func (e *env) openWorkspace(ctx context.Context) (*workspace, error) {
	w := &workspace{}
	var store service.LogStore
	switch e.cfg.Backend {
	case config.BackendLocal:
		store = service.NewLocalLog(e.db)
		w.target = service.ResolveTarget(ctx, service.LocalTargets{DB: e.db, Now: e.now}, e.log)
	default:
		sess, err := e.resume(ctx)
		if err != nil {
			return nil, err
		}
		store = e.api.WithToken(sess.Token)
		w.session = sess
		w.target = sess.Target
	}
	cat, err := e.catalogFor(w.session)
	if err != nil {
		return nil, err
	}
	w.catalog = cat
	w.log = service.NewFoodLog(store, service.WithClock(e.now), service.WithLogger(e.log))
	return w, nil
}

// catalog builds the configured catalog, resuming the session only when the
// catalog is the remote API.
func (e *env) catalog(ctx context.Context) (service.Catalog, error) {
	if e.cfg.Catalog != config.CatalogRemote {
		return e.catalogFor(nil)
	}
	sess, err := e.resume(ctx)
	if err != nil {
		return nil, err
	}
	return e.catalogFor(sess)
}

func (e *env) catalogFor(sess *session.Session) (service.Catalog, error) {
	switch e.cfg.Catalog {
	case config.CatalogUSDA:
		return &usda.Client{APIKey: e.cfg.USDAAPIKey, Timeout: e.cfg.HTTPTimeout}, nil
	case config.CatalogOpenFoodFacts:
		return &openfoodfacts.Client{Timeout: e.cfg.HTTPTimeout}, nil
	default:
		if sess == nil {
			return nil, fmt.Errorf("the remote catalog needs a session (run `fittrack login`)")
		}
		return e.api.WithToken(sess.Token), nil
	}
}

func macroLine(n model.Nutrients) string {
	return fmt.Sprintf("%.1f kcal | P %.1fg | C %.1fg | F %.1fg", n.Calories, n.ProteinG, n.CarbsG, n.FatG)
}

func targetValue(v float64, known bool, unit string) string {
	if !known {
		return "—"
	}
	return fmt.Sprintf("%.0f %s", v, unit)
}

func printTargets(out io.Writer, t model.TargetState) {
	fmt.Fprintln(out, "Daily targets:")
	fmt.Fprintf(out, "  Calories: %s\n", targetValue(t.Target.Calories, t.Known, "kcal"))
	fmt.Fprintf(out, "  Protein:  %s\n", targetValue(t.Target.ProteinG, t.Known, "g"))
	fmt.Fprintf(out, "  Carbs:    %s\n", targetValue(t.Target.CarbsG, t.Known, "g"))
	fmt.Fprintf(out, "  Fat:      %s\n", targetValue(t.Target.FatG, t.Known, "g"))
}
