package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tusharj/bizbill-api/internal/application/service"
	"github.com/tusharj/bizbill-api/internal/config"
	"github.com/tusharj/bizbill-api/internal/infrastructure/database"
	"github.com/tusharj/bizbill-api/internal/infrastructure/licensestore"
	"github.com/tusharj/bizbill-api/internal/infrastructure/repository"
	"github.com/tusharj/bizbill-api/internal/license"
	"github.com/tusharj/bizbill-api/internal/logging"
	"github.com/tusharj/bizbill-api/internal/presentation/http/handler"
	"github.com/tusharj/bizbill-api/internal/presentation/http/routes"
	"github.com/tusharj/bizbill-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logging.New(cfg.App.Debug)

	// Connect to database
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the invoice counter
	if err := database.SeedDefaultData(db); err != nil {
		log.Fatalf("Failed to seed default data: %v", err)
	}

	// Initialize JWT manager for license session tokens
	jwtManager := utils.NewJWTManager(cfg.Session.Secret, cfg.Session.ExpiryHours)

	// Initialize repositories
	shopRepo := repository.NewShopRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	keyValueRepo := repository.NewKeyValueRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// License validation against the remote record store
	storeClient := licensestore.NewClient(cfg.License.StoreBaseURL, cfg.License.StoreAPIKey)
	deviceIdentity := license.NewDeviceIdentity(keyValueRepo)
	licenseService := license.NewService(storeClient, keyValueRepo, deviceIdentity, logger)

	// Re-check the cached activation at boot. A rejection is logged, not
	// fatal: activation happens over the API.
	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	status := licenseService.CheckStatus(bootCtx)
	cancel()
	if status.OK {
		logger.Info("license check passed")
	} else {
		logger.WithField("reason", status.Reason).Warn("license check failed, activation required")
	}

	// Initialize services
	shopService := service.NewShopService(shopRepo)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo, invoiceRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, customerService)
	dashboardService := service.NewDashboardService(invoiceRepo, productRepo, customerRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		License:   handler.NewLicenseHandler(licenseService, jwtManager),
		Shop:      handler.NewShopHandler(shopService),
		Product:   handler.NewProductHandler(productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Invoice:   handler.NewInvoiceHandler(invoiceService, shopService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	deps := &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Log:             logger,
		IdempotencyRepo: idempotencyRepo,
	}

	router := routes.Setup(handlers, deps)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.WithField("port", port).Info("starting " + cfg.App.Name)
	if err := router.Run(":" + port); err != nil {
		logger.WithField("error", err.Error()).Error("server stopped")
		os.Exit(1)
	}
}
