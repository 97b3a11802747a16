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

	"github.com/mosesab/viralytics/internal/config"
	"github.com/mosesab/viralytics/internal/database"
	"github.com/mosesab/viralytics/internal/events"
	"github.com/mosesab/viralytics/internal/handlers"
	"github.com/mosesab/viralytics/internal/pipeline"
	"github.com/mosesab/viralytics/internal/repository"
	"github.com/mosesab/viralytics/internal/router"
	"github.com/mosesab/viralytics/internal/services"
	"github.com/mosesab/viralytics/internal/textclass"
	"github.com/mosesab/viralytics/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Viralytics...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Store ────
	store := repository.NewStore(pool)

	// ──── Step 5: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiConcurrentReqs)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Println("✓ Gemini client initialized")

	// ──── Initialize Provider Clients ────
	trendsClient := services.NewGoogleTrendsClient()
	tiktokClient := services.NewTikTokClient(cfg.TikTokSessionID)
	mediaService := services.NewMediaService()

	// ──── Step 6: Start Classification Worker Pool ────
	classifierPool := textclass.NewPool(cfg.AnalysisWorkers, cfg.FetchCount)

	// ──── Initialize Pipeline ────
	publisher := events.NewPublisher(redisClients.Publish)
	selector := pipeline.NewTrendSelector(trendsClient, geminiService, cfg.Region)
	collector := pipeline.NewCollector(tiktokClient)
	analyzer := pipeline.NewAnalyzer(tiktokClient, classifierPool, pipeline.AnalyzerConfig{
		TopN:              cfg.TopNVideos,
		MinSentimentScore: cfg.MinSentimentScore,
		MaxComments:       cfg.MaxCommentsAnalysis,
	})
	generator := pipeline.NewGenerator(geminiService, tiktokClient, mediaService, publisher, pipeline.GeneratorConfig{
		DownloadsDir: cfg.DownloadsPath,
		MaxComments:  cfg.MaxCommentsScripting,
	})
	stages := pipeline.New(store, publisher, selector, collector, analyzer, generator, pipeline.Config{
		Region:     cfg.Region,
		FetchCount: cfg.FetchCount,
	})
	runner := pipeline.NewRunner(store, publisher, stages)
	log.Println("✓ Pipeline initialized")

	// ──── Initialize Handlers ────
	projectHandler := handlers.NewProjectHandler(store)
	pipelineHandler := handlers.NewPipelineHandler(runner, store)

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	r := router.New(projectHandler, pipelineHandler, wsHub)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		classifierPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Viralytics ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
