package main

import (
	"context"
	"log"

	"github.com/fhuszti/streams-ms-go/internal/config"
	"github.com/fhuszti/streams-ms-go/internal/db"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/streams-ms-go/internal/streaming"
	"github.com/fhuszti/streams-ms-go/internal/task"
	streamSvc "github.com/fhuszti/streams-ms-go/internal/usecase/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	dispatcher := initDispatcher(cfg)
	repo := mariadb.NewVideoRepository(database.DB)

	reconciler := streamSvc.NewStreamReconciler("videos", repo, dispatcher)
	if err := reconciler.ReconcileStreams(context.Background()); err != nil {
		log.Fatalf("❌  Stream reconciliation failed: %v", err)
	}
	log.Println("✅  Stream reconciliation completed")
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	dbCfg := db.MariaDbConfig{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	database, err := db.New(dbCfg)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}

func initDispatcher(cfg *config.Settings) port.TaskDispatcher {
	if cfg.RedisAddr == "" {
		log.Fatalf("❌  Redis not configured: this command requires a running Redis instance")
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, streaming.ProviderName, cfg.CopyDelay, cfg.PollInterval, cfg.TaskMaxRetry)
}
