package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mcoot/gamehub/internal/api"
	"github.com/mcoot/gamehub/internal/config"
	"github.com/mcoot/gamehub/internal/factory"
	"github.com/mcoot/gamehub/internal/storage/postgres"
	redisstorage "github.com/mcoot/gamehub/internal/storage/redis"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	envFile := flag.String("env-file", ".env", "Dotenv file loaded before config (ignored if missing)")
	flag.Parse()

	// Variables already set in the environment take precedence
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		slog.Error("failed to load env file", slog.String("path", *envFile), slog.String("error", err.Error()))
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Build factory config
	factoryCfg := factory.Config{
		Logger:          logger,
		StorageType:     cfg.Storage.Type,
		SQLitePath:      cfg.Storage.SQLite.Path,
		PasswordHashing: cfg.Auth.PasswordHashing,
		BcryptCost:      cfg.Auth.BcryptCost,
	}
	if cfg.Storage.Type == factory.StorageTypeRedis {
		factoryCfg.RedisConfig = &redisstorage.Config{
			URL:          cfg.Storage.Redis.URL,
			PoolSize:     cfg.Storage.Redis.PoolSize,
			MinIdleConns: cfg.Storage.Redis.MinIdleConns,
			KeyPrefix:    cfg.Storage.Redis.KeyPrefix,
		}
	}

	if cfg.Storage.Type == factory.StorageTypePostgres {
		factoryCfg.PostgresConfig = &postgres.Config{
			URL:      cfg.Storage.Postgres.URL,
			Table:    cfg.Storage.Postgres.Table,
			MaxConns: cfg.Storage.Postgres.MaxConns,
		}
	}

	// Create application; stored state is read here
	app, err := factory.New(ctx, factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:   logger,
		Storage:  app.Storage,
		Accounts: app.Accounts,
		Catalog:  app.Catalog,
		Market:   app.Market,

		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Listen.Host
	serverConfig.Port = cfg.Listen.Port
	server := api.NewServer(router, serverConfig, logger)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		stop()
		_ = app.Close()
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
