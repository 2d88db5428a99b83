package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/contribution-analyzer/internal/handlers"
	"github.com/alimgiray/contribution-analyzer/internal/middleware"
	"github.com/alimgiray/contribution-analyzer/internal/models"
	"github.com/alimgiray/contribution-analyzer/internal/repositories"
	"github.com/alimgiray/contribution-analyzer/internal/services"
	"github.com/alimgiray/contribution-analyzer/pkg/config"
	"github.com/alimgiray/contribution-analyzer/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	logger.Init()

	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	gin.SetMode(cfg.Server.Mode)

	scoring, err := scoringConfig(cfg.Scoring)
	if err != nil {
		logger.Fatalf("Invalid scoring configuration: %v", err)
	}

	// Initialize GitHub client
	githubClient, err := services.NewGitHubClient(cfg.GitHub.Token, cfg.GitHub.APIURL)
	if err != nil {
		logger.Fatalf("Failed to create GitHub client: %v", err)
	}
	githubService := services.NewGitHubService(githubClient, cfg.GitHub.RateLimit)

	// Initialize dependencies
	statsCache := repositories.NewMemoryStatsCache()
	statsService := services.NewStatsService(
		githubService,
		services.NewDetailFetcher(cfg.GitHub.DetailConcurrency),
		statsCache,
		services.NewClassifierService(),
		services.NewScoreService(scoring),
		services.NewAggregationService(),
		cfg.Stats.CacheTTL,
	)
	exportService := services.NewExportService()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	setupRoutes(router, statsService, exportService, githubService, cfg.Stats)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server stopped")
}

func setupRoutes(router *gin.Engine, statsService *services.StatsService, exportService *services.ExportService, githubService *services.GitHubService, statsCfg config.StatsConfig) {
	// Initialize handlers
	statsHandler := handlers.NewStatsHandler(statsService, exportService, statsCfg.DefaultSinceDays, statsCfg.DefaultMaxCommits)
	githubHandler := handlers.NewGitHubHandler(githubService)
	healthHandler := handlers.NewHealthHandler()

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/stats/:owner/:repo", statsHandler.GetStats)
		api.GET("/stats/:owner/:repo/export", statsHandler.ExportStats)
		api.GET("/contributors/:owner/:repo", githubHandler.GetContributors)
		api.GET("/commits/:owner/:repo", githubHandler.GetCommits)
	}
}

// scoringConfig converts the env based weights into the domain scoring config
func scoringConfig(sc config.ScoringConfig) (*models.ScoringConfig, error) {
	scoring := &models.ScoringConfig{
		CommitWeight:  sc.CommitWeight,
		LOCCap:        sc.LOCCap,
		LOCWeight:     sc.LOCWeight,
		IssueRefBonus: sc.IssueRefBonus,
		TypeBonus:     make(map[models.ChangeType]float64, len(sc.TypeBonus)),
	}
	for changeType, bonus := range sc.TypeBonus {
		scoring.TypeBonus[models.ChangeType(changeType)] = bonus
	}
	if err := scoring.Validate(); err != nil {
		return nil, err
	}
	return scoring, nil
}
