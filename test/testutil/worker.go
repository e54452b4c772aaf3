package testutil

import (
	"context"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/db"
	workerHandler "github.com/fhuszti/streams-ms-go/internal/handler/worker"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/streams-ms-go/internal/source"
	"github.com/fhuszti/streams-ms-go/internal/task"
	streamSvc "github.com/fhuszti/streams-ms-go/internal/usecase/stream"
	"github.com/hibiken/asynq"

	"github.com/fhuszti/streams-ms-go/internal/logger"
)

// StartWorker starts an asynq worker processing stream copy and status-poll
// tasks against the given provider, with near-immediate delays so tests
// converge fast. It returns a function to gracefully shut down the worker.
func StartWorker(dbConn *db.Database, redisAddr, baseURL string, provider port.StreamProvider) func() {
	repo := mariadb.NewVideoRepository(dbConn.DB)
	dispatcher := task.NewDispatcher(redisAddr, "", provider.Name(), 50*time.Millisecond, 100*time.Millisecond, 3)
	resolver := source.NewResolver()

	copierSvc := streamSvc.NewStreamCopier(repo, provider, resolver, dispatcher, baseURL, false)
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

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{task.QueueStreams: 1},
		// scheduled tasks must surface quickly or the re-queue loop
		// would pace the whole test suite at the default 5s tick
		DelayedTaskCheckInterval: 100 * time.Millisecond,
	})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
