package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/najino/Cooko-application-api/config"
	"github.com/najino/Cooko-application-api/internal/database"
	"github.com/najino/Cooko-application-api/internal/router"
	"github.com/najino/Cooko-application-api/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Main] Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("[Main] Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("[Main] Failed to run migrations: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("[Main] Redis unavailable (%v), continuing without rate limiting", err)
			redisClient = nil
		}
	}

	ctx := context.Background()
	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.Fatalf("[Main] Failed to initialize object storage: %v", err)
	}
	if err := s3Config.EnsureBucket(ctx); err != nil {
		log.Fatalf("[Main] Failed to ensure upload bucket: %v", err)
	}

	engine := router.SetupRouter(db, redisClient, s3Config)
	srv := server.New(cfg.ServerPort, engine)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("[Main] Server failed: %v", err)
		}
	case sig := <-quit:
		log.Printf("[Main] Received signal %v, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[Main] Graceful shutdown failed: %v", err)
		}
	}
}
