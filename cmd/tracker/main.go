package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/AlibekovAA/exercise-tracker/internal/common/bootstrap"
	"github.com/AlibekovAA/exercise-tracker/internal/common/config"
	commonhttp "github.com/AlibekovAA/exercise-tracker/internal/common/http"
	srv "github.com/AlibekovAA/exercise-tracker/internal/common/server"
	trackerhttp "github.com/AlibekovAA/exercise-tracker/internal/tracker/http"
)

type flags struct {
	envFile      string
	port         string
	staticDir    string
	strictStatus bool
	watchEnv     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "tracker",
		Short:         "In-memory exercise tracking service",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, f)
		},
	}

	root.PersistentFlags().StringVar(&f.envFile, "env-file", bootstrap.DefaultDotEnvFile, "dotenv file read before the environment")
	root.PersistentFlags().StringVar(&f.port, "port", "", "HTTP port (overrides PORT)")
	root.PersistentFlags().StringVar(&f.staticDir, "static-dir", "", "directory served at / (overrides STATIC_DIR)")
	root.PersistentFlags().BoolVar(&f.strictStatus, "strict-status", false, "answer not-found and conflict errors with 404 and 409")
	root.Flags().BoolVar(&f.watchEnv, "watch-env", false, "reload LOG_LEVEL when the dotenv file changes")

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.NewTrackerApp(appOptions(cmd, f))
			if err != nil {
				return err
			}
			defer app.Log.Close()
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(app.Config)
		},
	})

	return root
}

func appOptions(cmd *cobra.Command, f *flags) bootstrap.Options {
	return bootstrap.Options{
		DotEnvFile: f.envFile,
		Configure: func(cfg *config.TrackerConfig) {
			if cmd.Flags().Changed("port") {
				cfg.HTTPPort = f.port
			}
			if cmd.Flags().Changed("static-dir") {
				cfg.StaticDir = f.staticDir
			}
			if cmd.Flags().Changed("strict-status") {
				cfg.StrictStatus = f.strictStatus
			}
		},
	}
}

func serve(cmd *cobra.Command, f *flags) error {
	app, err := bootstrap.NewTrackerApp(appOptions(cmd, f))
	if err != nil {
		return err
	}
	log := app.Log
	defer log.Close()
	cfg := app.Config

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := trackerhttp.NewHandler(app.Store, log, trackerhttp.Options{
		StrictStatus:   cfg.StrictStatus,
		RequestTimeout: cfg.RequestTimeout,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", api)
	mux.Handle("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	var rateLimiter *commonhttp.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = commonhttp.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	handler := commonhttp.BuildBaseHandler(log, mux, commonhttp.BaseHandlerOptions{
		MaxRequestSize: cfg.MaxRequestSize,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimiter:    rateLimiter,
	})

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), handler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			if rateLimiter != nil {
				log.Infof("tracker service: stopping rate limiter cleanup")
				rateLimiter.Stop()
			}
			return nil
		},
		func(ctx context.Context) error {
			log.Infof("tracker service: discarding %d users held in memory", app.Registry.Count(ctx))
			return nil
		},
	}

	if f.watchEnv {
		stopWatch, err := app.WatchLogLevel(ctx)
		if err != nil {
			log.Warnf("dotenv watcher disabled: %v", err)
		} else {
			shutdownHooks = append(shutdownHooks, func(ctx context.Context) error {
				cancel()
				return stopWatch()
			})
		}
	}

	return srv.StartWithGracefulShutdownAndHooks(server, log, "tracker", shutdownHooks)
}
