package api

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tcgscan/scanbot/internal/api/handlers"
	"github.com/tcgscan/scanbot/internal/services"
)

func SetupRouter(resolver *services.ResolverService, analyzer *services.AnalyzerService, scans *services.ScanService) *gin.Engine {
	router := gin.Default()
	router.Use(metricsMiddleware())

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false
	router.Use(cors.New(config))

	// Initialize handlers
	resolveHandler := handlers.NewResolveHandler(resolver)
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer)
	scanHandler := handlers.NewScanHandler(scans)

	// API routes
	api := router.Group("/api")
	{
		api.POST("/resolve", resolveHandler.Resolve)
		api.POST("/analyze", analyzeHandler.Analyze)

		scansGroup := api.Group("/scans")
		{
			scansGroup.GET("", scanHandler.ListScans)
			scansGroup.GET("/:id", scanHandler.GetScan)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
