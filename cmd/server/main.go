package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tcgscan/scanbot/internal/api"
	"github.com/tcgscan/scanbot/internal/database"
	"github.com/tcgscan/scanbot/internal/models"
	"github.com/tcgscan/scanbot/internal/services"
)

func main() {
	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./scanbot.db"
	}

	// Initialize database
	if err := database.Initialize(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize provider clients
	pokemonService := services.NewPokemonTCGService(os.Getenv("POKEMONTCG_API_KEY"))
	scryfallService := services.NewScryfallService()

	// Initialize pipeline services
	resolverService := services.NewResolverService(pokemonService, scryfallService)
	marketService := services.NewMarketService(pokemonService, scryfallService)
	scanService := services.NewScanService(database.GetDB())
	analyzerService := services.NewAnalyzerService(marketService, scanService)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optionally run the mock capture loop (demo mode, no live providers)
	if os.Getenv("CAPTURE_ENABLED") == "true" {
		var interval time.Duration
		if secondsStr := os.Getenv("CAPTURE_INTERVAL_SECONDS"); secondsStr != "" {
			if seconds, err := strconv.Atoi(secondsStr); err == nil && seconds > 0 {
				interval = time.Duration(seconds) * time.Second
			}
		}
		captureWorker := services.NewCaptureWorker(
			services.NoopFrameSource{},
			services.NewMockRecognizer(),
			analyzerService,
			models.AutoBetRules{TargetDiscount: 0.3, Condition: models.ConditionGood},
			interval,
		)
		go captureWorker.Start(ctx)
	}

	// Setup router
	router := api.SetupRouter(resolverService, analyzerService, scanService)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop the capture worker
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
