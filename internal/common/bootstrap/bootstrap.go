package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/AlibekovAA/exercise-tracker/internal/common/clock"
	"github.com/AlibekovAA/exercise-tracker/internal/common/config"
	"github.com/AlibekovAA/exercise-tracker/internal/common/logger"
	"github.com/AlibekovAA/exercise-tracker/internal/tracker/repository"
	"github.com/AlibekovAA/exercise-tracker/internal/tracker/service"
)

const DefaultDotEnvFile = ".env"

type Options struct {
	DotEnvFile string
	// Configure runs after the environment is read; the result is validated again.
	Configure func(*config.TrackerConfig)
}

type TrackerApp struct {
	Log      *logger.Logger
	Config   config.TrackerConfig
	Clock    clock.Clock
	Registry repository.Registry
	Store    *service.UserStore

	dotEnvFile string
}

func NewTrackerApp(opts Options) (*TrackerApp, error) {
	if opts.DotEnvFile == "" {
		opts.DotEnvFile = DefaultDotEnvFile
	}
	if err := config.LoadDotEnv(opts.DotEnvFile); err != nil {
		return nil, err
	}

	log, err := initializeLogger("tracker")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Errorf("failed to load config: %v", err)
		_ = log.Close()
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := newTrackerApp(log, cfg, clock.NewRealClock())
	app.dotEnvFile = opts.DotEnvFile
	return app, nil
}

func loadConfig(opts Options) (config.TrackerConfig, error) {
	cfg, err := config.LoadTrackerConfig()
	if err != nil {
		return config.TrackerConfig{}, err
	}
	if opts.Configure == nil {
		return cfg, nil
	}
	opts.Configure(&cfg)
	if err := cfg.Validate(); err != nil {
		return config.TrackerConfig{}, err
	}
	return cfg, nil
}

func newTrackerApp(log *logger.Logger, cfg config.TrackerConfig, clk clock.Clock) *TrackerApp {
	registry := repository.NewMemoryRegistry()
	return &TrackerApp{
		Log:      log,
		Config:   cfg,
		Clock:    clk,
		Registry: registry,
		Store:    service.NewUserStore(registry, clk, log),
	}
}

// WatchLogLevel applies LOG_LEVEL from the dotenv file whenever it changes.
// The returned stop function closes the watcher.
func (a *TrackerApp) WatchLogLevel(ctx context.Context) (func() error, error) {
	w, err := config.NewDotEnvWatcher(a.dotEnvFile, func(values map[string]string) {
		level, ok := values["LOG_LEVEL"]
		if !ok {
			return
		}
		a.Log.SetLevel(logger.ParseLevel(level))
		a.Log.WithFields(ctx, logger.Fields{
			"level":  level,
			"action": "log_level_reloaded",
		}).Info("log level reloaded from dotenv file")
	}, func(err error) {
		a.Log.Warnf("dotenv watcher: %v", err)
	})
	if err != nil {
		return nil, err
	}

	go w.Start(ctx)
	return w.Close, nil
}

func initializeLogger(serviceName string) (*logger.Logger, error) {
	return logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
}
