package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stocktrack/config"
	"stocktrack/internal/auth"
	"stocktrack/internal/product"
	prodH "stocktrack/internal/product/handler"
	invListenerPkg "stocktrack/internal/product/listener"
	prodRepoPkg "stocktrack/internal/product/repository"
	prodUCPkg "stocktrack/internal/product/usecase"
	userH "stocktrack/internal/user/handler"
	userRepoPkg "stocktrack/internal/user/repository"
	userUCPkg "stocktrack/internal/user/usecase"
	"stocktrack/pkg/broker"
	"stocktrack/pkg/cache"
	"stocktrack/pkg/database/postgres"
	"stocktrack/pkg/database/sqlite"
	"stocktrack/pkg/logger"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const tokenTTL = 1 * time.Hour

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Open the configured storage backend. Exactly one backend serves the
	// whole process; a client/server engine that cannot be reached at startup
	// is fatal.
	var (
		db       *sqlx.DB
		prodRepo product.Repository
	)

	repoOpts := prodRepoPkg.Options{
		MaxPageSize:        cfg.Storage.MaxPageSize,
		DefaultPageSize:    cfg.Storage.DefaultPageSize,
		AllowNegativeStock: cfg.Storage.AllowNegativeStock,
	}

	switch cfg.Storage.Driver {
	case "postgres":
		pg, err := postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			appLogger.Fatal("could not connect to postgres", zap.Error(err))
		}
		db = pg
		prodRepo = prodRepoPkg.NewPGRepository(db, repoOpts)
		appLogger.Info("connected to postgres", zap.String("db_name", cfg.Postgres.DBName))
	case "sqlite":
		lite, err := sqlite.NewSQLite(&sqlite.Config{Path: cfg.SQLite.Path})
		if err != nil {
			appLogger.Fatal("could not open sqlite database", zap.Error(err))
		}
		db = lite
		prodRepo = prodRepoPkg.NewSQLiteRepository(db, repoOpts)
		appLogger.Info("opened sqlite database", zap.String("path", cfg.SQLite.Path))
	default:
		appLogger.Fatal("unknown storage driver", zap.String("driver", cfg.Storage.Driver))
	}
	defer db.Close()

	userRepo := userRepoPkg.NewSQLRepository(db)

	// 4. Optional Redis read cache
	var redisClient *cache.RedisClient
	if cfg.Redis.Addr != "" {
		var err error
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("could not connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5. UseCases
	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, tokenTTL)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, appLogger)
	userUC := userUCPkg.NewUserUseCase(userRepo, tokens, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 6. Optional order-events listener
	if len(cfg.Kafka.Brokers) > 0 {
		consumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()
		appLogger.Info("connected to kafka consumer",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)

		invListener := invListenerPkg.NewInventoryListener(consumer, prodUC, appLogger)
		go invListener.Start(ctx)
	}

	// 7. HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	authHandler := userH.NewAuthHandler(userUC, appLogger)
	authHandler.Register(e.Group("/api/auth"))

	productHandler := prodH.NewProductHandler(prodUC, appLogger)
	productHandler.Register(e.Group("/api/products", auth.Middleware(tokens)))

	go func() {
		if err := e.Start(cfg.Server.HTTPPort); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()
	appLogger.Info("starting http server", zap.String("port", cfg.Server.HTTPPort))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
