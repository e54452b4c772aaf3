package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/cache"
	"github.com/fhuszti/streams-ms-go/internal/collection"
	"github.com/fhuszti/streams-ms-go/internal/config"
	"github.com/fhuszti/streams-ms-go/internal/db"
	"github.com/fhuszti/streams-ms-go/internal/handler/api"
	"github.com/fhuszti/streams-ms-go/internal/hook"
	"github.com/fhuszti/streams-ms-go/internal/logger"
	cMiddleware "github.com/fhuszti/streams-ms-go/internal/middleware"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/renderer"
	"github.com/fhuszti/streams-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/streams-ms-go/internal/storage"
	"github.com/fhuszti/streams-ms-go/internal/streaming"
	"github.com/fhuszti/streams-ms-go/internal/task"
	streamSvc "github.com/fhuszti/streams-ms-go/internal/usecase/stream"
	videoSvc "github.com/fhuszti/streams-ms-go/internal/usecase/video"
	msuuid "github.com/fhuszti/streams-ms-go/internal/uuid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg.JWTPublicKey)

	strg := initStorage(ctx, cfg)
	initBuckets(ctx, strg, []string{cfg.StagingBucket, cfg.VideosBucket})

	provider := streaming.NewCloudflareStream(cfg.CFAPIBaseURL, cfg.CFAccountID, cfg.CFAPIToken, cfg.CFCustomerSubdomain)

	videoRepo := mariadb.NewVideoRepository(database.DB)
	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, provider.Name(), cfg.CopyDelay, cfg.PollInterval, cfg.TaskMaxRetry)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured — caching and stream tasks are disabled")
	}

	coll := collection.New("videos")
	updaterSvc := streamSvc.NewStreamStatusUpdater(videoRepo, provider)
	removerSvc := streamSvc.NewStreamRemover(provider)
	hook.AttachStreamHooks(coll, updaterSvc, removerSvc, dispatcher)

	uploadLinkGeneratorSvc := videoSvc.NewUploadLinkGenerator(videoRepo, strg, msuuid.NewUUID, cfg.StagingBucket)
	r.Post("/videos/generate_upload_link", api.GenerateUploadLinkHandler(uploadLinkGeneratorSvc))

	uploadFinaliserSvc := videoSvc.NewUploadFinaliser(videoRepo, strg, coll, cfg.StagingBucket, cfg.VideosBucket)
	r.With(cMiddleware.WithVideoID()).
		Post("/videos/finalise_upload/{id}", api.FinaliseUploadHandler(uploadFinaliserSvc))

	getVideoSvc := videoSvc.NewVideoGetter(videoRepo, strg, coll)
	rendererSvc := renderer.NewHTTPRenderer(ca)
	r.With(cMiddleware.WithVideoID()).
		Get("/videos/{id}", api.GetVideoHandler(rendererSvc, getVideoSvc))

	r.With(cMiddleware.WithVideoID()).
		Get("/videos/{id}/file", api.GetFileHandler(getVideoSvc))

	r.With(cMiddleware.WithVideoID()).
		Get("/videos/{id}/preview", api.PreviewVideoHandler(getVideoSvc, provider))

	deleteVideoSvc := videoSvc.NewVideoDeleter(videoRepo, ca, strg, coll)
	r.With(cMiddleware.WithVideoID()).
		Delete("/videos/{id}", api.DeleteVideoHandler(deleteVideoSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
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

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithDSTAuth(jwtKey))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(ctx context.Context, strg port.Storage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
