package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/clearflow/clearflow-cms/internal/app"
	"github.com/clearflow/clearflow-cms/internal/platform/db"
	"github.com/clearflow/clearflow-cms/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, db.PoolOptions{
		MaxConns:        cfg.PGMaxConns,
		MaxConnLifetime: cfg.PGConnMaxLifetime,
	})
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	purgeHandler := func(ctx context.Context, t *asynq.Task) error {
		var payload jobs.LeadPurgePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.RetainDays <= 0 {
			payload.RetainDays = cfg.LeadRetainDays
		}
		cutoff := time.Now().AddDate(0, 0, -payload.RetainDays)
		tag, err := pool.Exec(ctx, `DELETE FROM contact_messages WHERE is_read = TRUE AND created_at < $1`, cutoff)
		if err != nil {
			return err
		}
		logger.Info("purged read leads", slog.Int64("count", tag.RowsAffected()), slog.Time("cutoff", cutoff))
		return nil
	}

	purgeTask, err := jobs.NewLeadPurgeTask(jobs.LeadPurgePayload{RetainDays: cfg.LeadRetainDays})
	if err != nil {
		logger.Error("build purge task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeLeadPurge, Handler: purgeHandler},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 3 * * *", Task: purgeTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
