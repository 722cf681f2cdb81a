// Package bootstrap assembles the bot's infrastructure in dependency
// order: logger, state store, turn handler.
package bootstrap

import (
	"fmt"
	"io"
	"time"

	"log/slog"

	"github.com/Niksavenkov/shopbot/core/bot"
	coreconfig "github.com/Niksavenkov/shopbot/core/config"
	coredatabase "github.com/Niksavenkov/shopbot/core/database"
	"github.com/Niksavenkov/shopbot/core/logger"
	"github.com/Niksavenkov/shopbot/core/state"
)

// Options control the bootstrap pipeline. Hooks default to the real
// implementations and exist so tests can stub infrastructure.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	Migrate    func(coreconfig.DatabaseConfig) error
}

// App exposes the infrastructure initialized by Run.
type App struct {
	Config  *coreconfig.Config
	Store   state.Store
	Handler *bot.Handler

	closers []io.Closer
}

// Close releases backend connections held by the store.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run initializes the logger, builds the configured state store and wires
// the turn handler on top of it.
func Run(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(cfg); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	app := &App{Config: cfg}

	store, err := buildStore(app, opts)
	if err != nil {
		return nil, err
	}
	app.Store = store

	counter, err := bot.NewCounterAccessor(store)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	// logger.BOT is nil when a LoggerInit hook skipped the global setup.
	botLog := logger.BOT
	if botLog == nil {
		botLog = slog.Default()
	}
	handler, err := bot.New(counter, botLog)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	app.Handler = handler

	logger.Info(logger.Background(), "app", "state.ready",
		slog.String("backend", cfg.State.Backend),
	)

	return app, nil
}

func buildStore(app *App, opts Options) (state.Store, error) {
	cfg := app.Config
	switch cfg.State.Backend {
	case coreconfig.BackendMemory:
		return state.NewMemoryStore(), nil

	case coreconfig.BackendPostgres:
		migrate := opts.Migrate
		if migrate == nil {
			migrate = coredatabase.RunMigrations
		}
		if err := migrate(cfg.Database); err != nil {
			return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
		}
		db, err := coredatabase.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
		}
		app.closers = append(app.closers, db)
		store, err := state.NewPostgresStore(db)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		return store, nil

	case coreconfig.BackendRedis:
		rc := cfg.State.Redis
		var redisOpts []state.RedisOption
		if rc.Prefix != "" {
			redisOpts = append(redisOpts, state.WithPrefix(rc.Prefix))
		}
		if rc.TTLSeconds > 0 {
			redisOpts = append(redisOpts, state.WithTTL(time.Duration(rc.TTLSeconds)*time.Second))
		}
		store := state.NewRedisStore(rc.Addr, rc.Password, rc.DB, redisOpts...)
		app.closers = append(app.closers, store)
		return store, nil

	default:
		return nil, fmt.Errorf("bootstrap: unknown state backend %q", cfg.State.Backend)
	}
}
