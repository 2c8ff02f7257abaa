package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/learnloop/courseai/internal/cache"
	"github.com/learnloop/courseai/internal/config"
	"github.com/learnloop/courseai/internal/queue"
	"github.com/learnloop/courseai/internal/queue/workers"
	"github.com/learnloop/courseai/internal/speech"
	"github.com/learnloop/courseai/internal/voices"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		slog.Warn("config incomplete", "error", err)
	}

	if cfg.Voices.ConfigPath != "" {
		if err := voices.LoadOverrides(cfg.Voices.ConfigPath); err != nil {
			slog.Warn("voice overrides not loaded", "path", cfg.Voices.ConfigPath, "error", err)
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			// Synthesis is upstream-rate-limited; keep concurrency low.
			Concurrency: 4,
		},
	)

	gateway := speech.NewGateway(cfg.Speech)
	narrCache := cache.NewNarrationCache(rdb, 24*time.Hour)
	narration := workers.NewNarrationWorker(gateway, narrCache)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeNarrationPrefetch, narration.ProcessTask)

	slog.Info("starting narration worker", "concurrency", 4)
	if err := srv.Run(mux); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
