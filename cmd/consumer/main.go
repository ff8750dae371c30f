package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do"
	"github.com/serroba/scoreboard/internal/container"
	"github.com/serroba/scoreboard/internal/messaging"
	"go.uber.org/zap"
)

// The consumer reads score events from Redis streams and keeps per-player counters.
func main() {
	opts := &container.Options{
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		Events:    container.EventsRedis,
	}

	injector := do.New()
	container.RegisterConsumer(injector, opts)

	logger, err := do.Invoke[*zap.Logger](injector)
	if err != nil {
		log.Fatal(err)
	}

	group := do.MustInvoke[*messaging.ConsumerGroup](injector)

	ctx, cancel := context.WithCancel(context.Background())

	if err := group.Start(ctx); err != nil {
		logger.Fatal("failed to start consumer group", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	cancel()

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
	_ = logger.Sync()
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return defaultValue
}
