package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/clearflow/clearflow-cms/internal/app"
	"github.com/clearflow/clearflow-cms/internal/auth"
	"github.com/clearflow/clearflow-cms/internal/catalog/categories"
	"github.com/clearflow/clearflow-cms/internal/catalog/products"
	"github.com/clearflow/clearflow-cms/internal/messages"
	"github.com/clearflow/clearflow-cms/internal/news"
	"github.com/clearflow/clearflow-cms/internal/platform/cache"
	"github.com/clearflow/clearflow-cms/internal/platform/db"
	"github.com/clearflow/clearflow-cms/internal/sitecfg"
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

	dbpool, err := db.New(ctx, cfg.PGDSN, db.PoolOptions{
		MaxConns:        cfg.PGMaxConns,
		MaxConnLifetime: cfg.PGConnMaxLifetime,
	})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokenStore := auth.NewTokenStore(redisClient, cfg.TokenTTL)
	authService := auth.NewService(auth.NewRepository(dbpool), tokenStore)
	authHandler := auth.NewHandler(logger, authService)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("asynq client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()

	productCache := cache.NewListCache(redisClient, "catalog:version", cfg.CacheTTL)
	newsCache := cache.NewListCache(redisClient, "news:version", cfg.CacheTTL)

	productService := products.NewService(products.NewRepository(dbpool), productCache)
	productHandler := products.NewHandler(logger, productService)

	categoryService := categories.NewService(categories.NewRepository(dbpool), productCache)
	categoryHandler := categories.NewHandler(logger, categoryService)

	newsService := news.NewService(news.NewRepository(dbpool), newsCache)
	newsHandler := news.NewHandler(logger, newsService)

	messageService := messages.NewService(messages.NewRepository(dbpool), jobs.NewLeadNotifier(jobClient), logger)
	messageHandler := messages.NewHandler(logger, messageService)

	siteCfgService := sitecfg.NewService(sitecfg.NewRepository(dbpool))
	siteCfgHandler := sitecfg.NewHandler(logger, siteCfgService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthService:     authService,
		AuthHandler:     authHandler,
		ProductHandler:  productHandler,
		CategoryHandler: categoryHandler,
		NewsHandler:     newsHandler,
		MessageHandler:  messageHandler,
		SiteCfgHandler:  siteCfgHandler,
		JobHandler:      jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
