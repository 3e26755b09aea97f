package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vsynytsia/clothing-shop/internal/auth"
	"github.com/vsynytsia/clothing-shop/internal/cache"
	"github.com/vsynytsia/clothing-shop/internal/catalog"
	"github.com/vsynytsia/clothing-shop/internal/checkout"
	"github.com/vsynytsia/clothing-shop/internal/menu"
	"github.com/vsynytsia/clothing-shop/internal/publisher"
	"github.com/vsynytsia/clothing-shop/internal/repository"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// The menus own stdout, so structured logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		slog.Error("invalid DB_PORT", "error", err)
		os.Exit(1)
	}

	cfg := &repository.Config{
		Driver:            getEnv("DB_DRIVER", repository.DriverSQLite),
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              dbPort,
		User:              getEnv("DB_USER", "postgres"),
		Password:          getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "shop"),
		Path:              getEnv("DB_PATH", "./shop.db"),
		MigrationsDirPath: getEnv("MIGRATIONS_PATH", "./internal/repository/migrations"),
	}

	repo, err := repository.NewRepository(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations completed", "driver", cfg.Driver)

	redisClient := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_ADDR", "localhost:6379"),
	})
	defer redisClient.Close()

	catalogSvc := catalog.NewService(repo, cache.NewRedisCache(redisClient))
	authSvc := auth.NewService(repo)
	checkoutSvc := checkout.NewService(repo)

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	poller := publisher.NewOutboxPoller(repo, brokers...)

	pollerCtx, pollerCancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Run(pollerCtx)
	}()

	app := menu.NewApp(
		menu.NewPrompter(os.Stdin, os.Stdout),
		authSvc,
		catalogSvc,
		checkoutSvc,
		repo,
		repo,
	)

	if err := app.Run(context.Background()); err != nil {
		slog.Error("interface exited with error", "error", err)
	}

	// Drain the outbox poller before shutting down.
	pollerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("outbox poller stopped cleanly")
	case <-shutdownCtx.Done():
		slog.Warn("outbox poller didn't stop in time")
	}

	if err := poller.Close(); err != nil {
		slog.Warn("failed to close kafka writer", "error", err)
	}
}
