package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/petmall-backend/config"
	"github.com/d60-Lab/petmall-backend/internal/api/handler"
	"github.com/d60-Lab/petmall-backend/internal/api/router"
	"github.com/d60-Lab/petmall-backend/internal/repository"
	"github.com/d60-Lab/petmall-backend/internal/service"
	"github.com/d60-Lab/petmall-backend/pkg/database"
	"github.com/d60-Lab/petmall-backend/pkg/logger"
	"github.com/d60-Lab/petmall-backend/pkg/tracing"
)

// @title petmall-backend API
// @version 1.0
// @description 宠物商城小程序后端接口
func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Server.Mode != "release"); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN, Environment: cfg.Server.Mode}); err != nil {
			logger.L().Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	if cfg.Trace.Enabled {
		shutdown, err := tracing.Init(ctx, "petmall-backend", cfg.Trace.Endpoint)
		if err != nil {
			logger.L().Fatal("init tracing", zap.Error(err))
		}
		defer func() { _ = shutdown(ctx) }()
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.L().Fatal("open database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.L().Fatal("migrate database", zap.Error(err))
	}

	var cache *redis.Client
	if cfg.Redis.Enabled {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := cache.Ping(ctx).Err(); err != nil {
			logger.L().Fatal("connect redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
	}

	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	merchantRepo := repository.NewMerchantRepository(db)

	orders := service.NewOrderService(orderRepo)
	users := service.NewUserService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	catalog := service.NewCatalogService(petRepo, productRepo, serviceRepo, merchantRepo, cache, cfg.Redis.CacheTTL)

	h := handler.New(orders, users, catalog, cfg)
	r := router.New(cfg, h, users)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.L().Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("server shutdown", zap.Error(err))
	}
}
