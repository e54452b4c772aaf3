package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/config"
	"github.com/fhuszti/streams-ms-go/internal/db"
	workerHandler "github.com/fhuszti/streams-ms-go/internal/handler/worker"
	"github.com/fhuszti/streams-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/streams-ms-go/internal/source"
	"github.com/fhuszti/streams-ms-go/internal/streaming"
	"github.com/fhuszti/streams-ms-go/internal/task"
	streamSvc "github.com/fhuszti/streams-ms-go/internal/usecase/stream"
	"github.com/hibiken/asynq"

	"github.com/fhuszti/streams-ms-go/internal/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	provider := streaming.NewCloudflareStream(cfg.CFAPIBaseURL, cfg.CFAccountID, cfg.CFAPIToken, cfg.CFCustomerSubdomain)
	repo := mariadb.NewVideoRepository(database.DB)
	dispatcher := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, provider.Name(), cfg.CopyDelay, cfg.PollInterval, cfg.TaskMaxRetry)
	resolver := source.NewResolver()

	copierSvc := streamSvc.NewStreamCopier(repo, provider, resolver, dispatcher, cfg.PublicBaseURL, cfg.RequireSignedURLs)
	updaterSvc := streamSvc.NewStreamStatusUpdater(repo, provider)
	checkerSvc := streamSvc.NewStreamStatusChecker(repo, updaterSvc, dispatcher)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeCopyVideo(provider.Name()), func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseStreamTaskPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.CopyVideoHandler(ctx, p, copierSvc)
	})
	mux.HandleFunc(task.TypeCheckStreamStatus(provider.Name()), func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseStreamTaskPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.CheckStreamStatusHandler(ctx, p, checkerSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(db.MariaDbConfig{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{task.QueueStreams: 1},
	})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	// Close DB
	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
