package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"darman-data/internal/config"
	"darman-data/internal/database"
	httpapi "darman-data/internal/http"
	"darman-data/internal/logger"
	"darman-data/internal/repository"
	"darman-data/internal/service"
	"darman-data/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "darman-data")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Repositories: Postgres when available, in-memory fallback otherwise so
	// imports and statistics can still be exercised in dev.
	var db *sql.DB
	var repos *repository.Repos
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			repos = repository.NewPostgresRepos(db)
			log.Info("DB enabled for darman-data")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory repositories", zap.Error(err))
		}
	}
	if repos == nil {
		repos = repository.NewMemoryRepos()
	}

	// Stats cache: Redis when reachable, in-memory otherwise.
	var kv store.KV
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("redis unavailable, using in-memory stats cache", zap.Error(err))
		_ = redisClient.Close()
		redisClient = nil
		kv = store.NewMemoryKV()
	} else {
		kv = store.NewRedisKV(redisClient)
	}

	notify := service.NewNotifyClient(cfg.Notify.URL, time.Duration(cfg.Notify.Timeout)*time.Second, log)

	importSvc := service.NewImportService(repos, kv, notify, log)
	statsSvc := service.NewStatsService(repos, kv, log)

	router := httpapi.NewRouter(log)
	router.RegisterImportRoutes(httpapi.NewImportHandler(importSvc, cfg.MaxUploadBytes, log))
	router.RegisterStatsRoutes(httpapi.NewStatsHandler(statsSvc, log))
	router.RegisterEntityRoutes(httpapi.NewEntityHandler(repos, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}
