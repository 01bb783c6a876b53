package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/watchearn/rewards-ledger/internal/domain/usecase/ledger"
	"github.com/watchearn/rewards-ledger/internal/domain/usecase/rewardday"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/database"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/logger"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/metrics"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/time"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/config"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/jobs"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() { _ = appLogger.Flush() }()

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Reward-day resolver in the product's wall-clock time zone
	days, err := rewardday.NewResolver(cfg.Rewards.TimeZone)
	if err != nil {
		appLogger.Error("Invalid rewards time zone", map[string]any{
			"time_zone": cfg.Rewards.TimeZone,
			"error":     err.Error(),
		})
		os.Exit(1)
	}

	// Connect to the database
	conn, err := database.NewConnection(database.FromAppConfig(cfg), appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	// Run migrations
	migrationMgr := migration.NewMigrationManager(conn.DB, appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Unit of work (transaction coordinator)
	uow := database.NewUnitOfWork(conn.DB, appLogger, tp)

	// Metrics
	ledgerMetrics := metrics.NewPrometheusMetrics(prometheus.DefaultRegisterer)

	// Reward rules from configuration
	rules := ledger.Rules{
		AdWatchPoints:           cfg.Rewards.AdWatchPoints,
		DailyWatchLimit:         cfg.Rewards.DailyWatchLimit,
		OfferDefaultPoints:      cfg.Rewards.OfferDefaultPoints,
		OfferMaxPoints:          cfg.Rewards.OfferMaxPoints,
		ReferralBonusPoints:     cfg.Rewards.ReferralBonusPoints,
		ReferralThresholdPoints: cfg.Rewards.ReferralThresholdPoints,
		PointsPerCurrencyUnit:   cfg.Rewards.PointsPerCurrencyUnit,
		MinWithdrawalAmount:     cfg.Rewards.MinWithdrawalAmount,
	}

	// Ledger service
	ledgerService := ledger.NewService(uow, days, rules, tp, appLogger, ledgerMetrics)

	// Event identity retention sweep
	sweeper := jobs.NewRetentionSweeper(
		repository.NewEventIdentityRepository(conn.DB, appLogger),
		tp,
		appLogger,
		cfg.Rewards.EventRetentionDays,
		cfg.Rewards.RetentionSweepInterval,
	)
	if err := sweeper.Start(); err != nil {
		appLogger.Error("Failed to start retention sweep", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize API handlers
	accountHandler := handler.NewAccountHandler(ledgerService, appLogger)
	creditHandler := handler.NewCreditHandler(ledgerService, appLogger)
	withdrawalHandler := handler.NewWithdrawalHandler(ledgerService, appLogger)

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, accountHandler, creditHandler, withdrawalHandler, healthCheck(conn))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := sweeper.Stop(); err != nil {
		appLogger.Error("Failed to stop retention sweep", map[string]any{
			"error": err.Error(),
		})
	}

	// Drain per-account queues before closing the server
	appLogger.Info("Shutting down ledger service...", nil)
	ledgerService.Shutdown()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// healthCheck reports liveness and database reachability
func healthCheck(conn *database.Connection) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := conn.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"error":  "database unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or RL_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or RL_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missingConfigs = append(missingConfigs, "database.password (or RL_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or RL_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Rewards.TimeZone == "" {
		missingConfigs = append(missingConfigs, "rewards.timeZone")
	}
	if cfg.Rewards.AdWatchPoints <= 0 {
		missingConfigs = append(missingConfigs, "rewards.adWatchPoints")
	}
	if cfg.Rewards.DailyWatchLimit <= 0 {
		missingConfigs = append(missingConfigs, "rewards.dailyWatchLimit")
	}
	if cfg.Rewards.PointsPerCurrencyUnit <= 0 {
		missingConfigs = append(missingConfigs, "rewards.pointsPerCurrencyUnit")
	}
	if cfg.Rewards.MinWithdrawalAmount <= 0 {
		missingConfigs = append(missingConfigs, "rewards.minWithdrawalAmount")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment == config.Production {
		var warnings []string

		if mode := strings.ToLower(cfg.Database.SSLMode); mode != "require" && mode != "verify-ca" && mode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential issues in production configuration: %v", warnings)
		}
	}

	return nil
}
