package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nacora/cargo-analytics/internal/api"
	"github.com/nacora/cargo-analytics/internal/config"
	"github.com/nacora/cargo-analytics/internal/enrichment"
	"github.com/nacora/cargo-analytics/internal/report"
	"github.com/nacora/cargo-analytics/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Optional Redis-backed enrichment cache; in-process cache otherwise.
	var cache enrichment.Cache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("Redis unreachable (%v), falling back to in-memory cache", err)
		} else {
			cache = enrichment.NewRedisCache(redisClient)
			log.Printf("Enrichment cache backed by Redis at %s", cfg.Redis.Addr)
		}
		pingCancel()
		defer redisClient.Close()
	}

	enrich := enrichment.NewService(cfg.Enrichment, cache)
	if cfg.Enrichment.WTOAPIKey == "" {
		log.Println("Warning: no WTO API key configured, trade enrichment will be degraded")
	}

	renderer, err := report.NewRenderer(cfg.Report.Title)
	if err != nil {
		log.Fatalf("Failed to build report renderer: %v", err)
	}

	sessions := store.New(cfg.Normalizer.FuzzyThreshold)
	handlers := api.NewHandlers(sessions, enrich, renderer)
	server := api.NewServer(cfg.Server, handlers)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
