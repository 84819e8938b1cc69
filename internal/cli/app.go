package cli

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vijay-prabhu/campusfind/internal/config"
	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/finder"
	"github.com/vijay-prabhu/campusfind/internal/logger"
	"github.com/vijay-prabhu/campusfind/internal/match"
)

// app bundles the dependencies every data command needs
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *database.DB
	engine *match.Engine
	finder *finder.Finder
}

// loadConfig reads the config file. A missing file at the default location
// falls back to the built-in defaults; an explicit --config must exist.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if errors.Is(err, config.ErrNotFound) && !rootCmd.PersistentFlags().Changed("config") {
		return config.Parse(nil)
	}
	return cfg, err
}

// newLogger builds the logger. Commands whose stdout is their product stay
// quiet below defaultLevel unless --verbose or log.level say otherwise.
func newLogger(cfg *config.Config, defaultLevel string) (*zap.Logger, error) {
	level := cfg.Log.Level
	if level == "" {
		level = defaultLevel
	}
	if verbose {
		level = "debug"
	}
	return logger.NewLogger(cfg.Log.Env, level)
}

// openApp loads configuration and opens the database and matching engine
func openApp(defaultLevel string) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg, defaultLevel)
	if err != nil {
		return nil, err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database.Path, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	engine, err := match.NewEngine(
		match.WithPool(cfg.Engine.Workers),
		match.WithParallelThreshold(cfg.Engine.ParallelThreshold),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create matching engine: %w", err)
	}

	return &app{
		cfg:    cfg,
		logger: log,
		db:     db,
		engine: engine,
		finder: finder.New(db, engine, cfg.Matching, log),
	}, nil
}

func (a *app) Close() {
	a.engine.Release()
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}
