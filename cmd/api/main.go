package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"huddle-backend/internal/application/analytics"
	"huddle-backend/internal/config"
	"huddle-backend/internal/infrastructure/database"
	"huddle-backend/internal/infrastructure/queue"
	"huddle-backend/internal/interfaces/router"
	"huddle-backend/internal/logger"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "huddle-api",
	Short: "Huddle team invitation API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("config load: %w", err)
		}
		logger.Setup(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  cfg.Env == "development",
			File:    cfg.LogFile,
			Service: "huddle-api",
		})
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume queued analytics batches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return work()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info().Msg("migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, workerCmd, migrateCmd)
}

func serve(ctx context.Context) error {
	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		return fmt.Errorf("app create: %w", err)
	}
	defer rdb.Close()
	defer database.Close(db)
	log.Info().Msg("postgres connected")
	log.Info().Msg("redis connected")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msgf("server running at http://localhost:%s", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}

func work() error {
	if cfg.DatabaseURL == "" {
		return errors.New("database url is not configured")
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close(db)
	rdb, err := database.OpenRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		return err
	}

	srv := queue.NewServer(rdb, queue.ServerOptions{
		Concurrency: cfg.WorkerConcurrency,
		LogLevel:    cfg.LogLevel,
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(analytics.TaskTrackEvents, analytics.TrackHandler(&analytics.StoreTracker{DB: db}))

	log.Info().Int("concurrency", cfg.WorkerConcurrency).Msg("worker started")
	// Run blocks until SIGTERM or SIGINT and closes rdb on shutdown.
	return srv.Run(mux)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
