// Package main provides the main entry point for the Cliphaus campaign payout platform
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

	"github.com/cliphaus/cliphaus-platform/app/handlers"
	"github.com/cliphaus/cliphaus-platform/app/middleware"
	"github.com/cliphaus/cliphaus-platform/app/router"
	"github.com/cliphaus/cliphaus-platform/app/scheduler"
	"github.com/cliphaus/cliphaus-platform/app/services"
	businessflow "github.com/cliphaus/cliphaus-platform/business_flow"
	"github.com/cliphaus/cliphaus-platform/config"
	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting Cliphaus application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Cache client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// startMetricsServer exposes the Prometheus registry on a dedicated port.
// The returned function shuts the server down.
func startMetricsServer(cfg config.MetricsConfig) func() {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
	}

	go func() {
		log.Printf("Metrics server listening on :%d%s", cfg.Port, cfg.Path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Metrics server error: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// ensureBootstrapAdmin creates the first administrator account from config
// so a fresh deployment is reachable. The configured value is a bcrypt hash.
func ensureBootstrapAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	if cfg.BootstrapUsername == "" || cfg.BootstrapPasswordHash == "" {
		return nil
	}

	adminRepo := repository.NewAdminRepository(db)
	existing, err := adminRepo.ByUsername(context.Background(), cfg.BootstrapUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	admin := models.Admin{
		UUID:         uuid.New(),
		Username:     cfg.BootstrapUsername,
		PasswordHash: cfg.BootstrapPasswordHash,
		IsActive:     utils.ToPtr(true),
	}
	if err := adminRepo.Save(context.Background(), &admin); err != nil {
		return err
	}

	log.Printf("Bootstrap admin %s created", cfg.BootstrapUsername)
	return nil
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, 30*time.Second)
		stopFuncs = append(stopFuncs, cancel)
	}

	if cfg.Metrics.Enabled {
		stopFuncs = append(stopFuncs, startMetricsServer(cfg.Metrics))
	}

	// Seed the first admin account if configured
	if err := ensureBootstrapAdmin(db, cfg.Admin); err != nil {
		return nil, err
	}

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	clientRepo := repository.NewClientRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	clipperRepo := repository.NewClipperRepository(db)
	clipRepo := repository.NewClipRepository(db)
	batchRepo := repository.NewPayoutBatchRepository(db)
	payoutRepo := repository.NewClipperPayoutRepository(db)
	settingsRepo := repository.NewPlatformSettingRepository(db)

	// Initialize token service
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	// Initialize services
	metricsClient := services.NewSocialMetricsClient(&cfg.SocialAPI)
	reportService := services.NewReportService(batchRepo, payoutRepo, clipRepo)

	// Initialize flows
	adminAuthFlow := businessflow.NewAdminAuthFlow(adminRepo, auditRepo, tokenService)
	settingsFlow := businessflow.NewSettingsFlow(settingsRepo, auditRepo)
	clientFlow := businessflow.NewClientFlow(clientRepo)
	campaignFlow := businessflow.NewCampaignFlow(campaignRepo, clientRepo)
	clipperFlow := businessflow.NewClipperFlow(clipperRepo)
	clipFlow := businessflow.NewClipFlow(clipRepo, clipperRepo, campaignRepo, auditRepo, db)
	duplicateFlow := businessflow.NewDuplicateFlow(clipRepo, auditRepo, db)
	metricsRefreshFlow := businessflow.NewMetricsRefreshFlow(clipRepo, auditRepo, metricsClient, cfg.SocialAPI.FetchDelay)
	payoutFlow := businessflow.NewPayoutFlow(clipRepo, clipperRepo, batchRepo, payoutRepo, auditRepo, settingsFlow, db, rc)
	batchFlow := businessflow.NewBatchFlow(clipRepo, clipperRepo, batchRepo, payoutRepo, auditRepo, db)

	// Initialize handlers
	adminAuthHandler := handlers.NewAdminAuthHandler(adminAuthFlow)
	clipHandler := handlers.NewClipHandler(clipFlow, duplicateFlow, metricsRefreshFlow)
	payoutHandler := handlers.NewPayoutHandler(payoutFlow, batchFlow, reportService)
	campaignHandler := handlers.NewCampaignHandler(campaignFlow)
	clientHandler := handlers.NewClientHandler(clientFlow, clipperFlow)
	settingsHandler := handlers.NewPlatformSettingsHandler(settingsFlow)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Initialize router
	appRouter := router.NewFiberRouter(
		cfg,
		authMiddleware,
		adminAuthHandler,
		clipHandler,
		payoutHandler,
		campaignHandler,
		clientHandler,
		settingsHandler,
	)

	if cfg.Scheduler.Enabled {
		sched := scheduler.NewMetricsScheduler(metricsRefreshFlow, cfg.Scheduler, cfg.Logging)
		stopScheduler := sched.Start(context.Background())
		stopFuncs = append(stopFuncs, stopScheduler)
	}

	// Create application struct from FiberRouter
	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
