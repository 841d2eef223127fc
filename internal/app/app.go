package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/sourcegraph/conc"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/efantasy/league-service/internal/config"
	"github.com/efantasy/league-service/internal/domain/league"
	"github.com/efantasy/league-service/internal/infrastructure/account/jwtauth"
	"github.com/efantasy/league-service/internal/infrastructure/repository/memory"
	"github.com/efantasy/league-service/internal/infrastructure/repository/postgres"
	"github.com/efantasy/league-service/internal/interfaces/httpapi"
	"github.com/efantasy/league-service/internal/observability"
	"github.com/efantasy/league-service/internal/platform/logging"
	"github.com/efantasy/league-service/internal/usecase"
)

// App owns the HTTP servers and the store connection for one process.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	server  *http.Server
	pprof   *http.Server
	closers []func() error
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{cfg: cfg, logger: logger}

	repo, err := a.newLeagueRepository()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	clock := clockwork.NewRealClock()
	leagueSvc := usecase.NewLeagueService(repo, clock, logger)

	verifierOpts := []jwtauth.Option{jwtauth.WithLeeway(cfg.JWTLeeway), jwtauth.WithClock(clock)}
	if cfg.JWTIssuer != "" {
		verifierOpts = append(verifierOpts, jwtauth.WithIssuer(cfg.JWTIssuer))
	}
	verifier := jwtauth.NewVerifier(cfg.JWTSecret, logger, verifierOpts...)

	handler := httpapi.NewHandler(leagueSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	a.server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	a.pprof = observability.NewPprofServer(cfg, logger)

	return a, nil
}

func (a *App) newLeagueRepository() (league.Repository, error) {
	switch a.cfg.StoreDriver {
	case config.StoreDriverMemory:
		a.logger.Warn("using in-memory league store", "seeded_leagues", 2)
		return memory.NewLeagueRepository(memory.SeedLeagues(clockwork.NewRealClock().Now())), nil
	case config.StoreDriverPostgres, "":
	default:
		return nil, fmt.Errorf("unsupported store driver %q", a.cfg.StoreDriver)
	}

	db, err := openPostgres(a.cfg.Database)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	a.logger.Info("postgres league store ready",
		"db_url", redactDBURL(a.cfg.Database.URL),
		"max_open_conns", a.cfg.Database.MaxOpenConns,
	)
	return postgres.NewLeagueRepository(db), nil
}

func openPostgres(cfg config.Database) (*sqlx.DB, error) {
	dbName := dbNameFromURL(cfg.URL)
	db, err := otelsqlx.Open("postgres", cfg.URL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	otelsql.ReportDBStatsMetrics(db.DB, otelsql.WithDBName(dbName))

	return db, nil
}

// Run serves until ctx is cancelled or a server fails, then shuts every
// server down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	servers := map[string]*http.Server{"http": a.server}
	if a.pprof != nil {
		servers["pprof"] = a.pprof
	}

	failed := make(chan error, len(servers))
	var wg conc.WaitGroup
	for name, srv := range servers {
		wg.Go(func() {
			a.logger.Info("server starting", "server", name, "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				failed <- fmt.Errorf("%s server: %w", name, err)
			}
		})
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown requested")
	case runErr = <-failed:
		a.logger.Error("server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	var shutdownErr error
	for name, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			shutdownErr = errors.Join(shutdownErr, fmt.Errorf("shutdown %s server: %w", name, err))
		}
	}
	if recovered := wg.WaitAndRecover(); recovered != nil {
		runErr = errors.Join(runErr, recovered.AsError())
	}

	a.logger.Info("servers stopped")
	return errors.Join(runErr, shutdownErr)
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, a.closers[i]())
	}
	a.closers = nil
	return err
}
