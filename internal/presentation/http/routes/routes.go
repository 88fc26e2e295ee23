package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tusharj/bizbill-api/internal/config"
	domainRepo "github.com/tusharj/bizbill-api/internal/domain/repository"
	"github.com/tusharj/bizbill-api/internal/presentation/http/handler"
	"github.com/tusharj/bizbill-api/internal/presentation/http/middleware"
	"github.com/tusharj/bizbill-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	License   *handler.LicenseHandler
	Shop      *handler.ShopHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Invoice   *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Log             *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no session required)
		registerLicenseRoutes(v1, h)

		// Business routes require an activated license session
		protected := v1.Group("")
		protected.Use(middleware.SessionMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerLicenseRoutes(v1 *gin.RouterGroup, h *Handlers) {
	licenseGroup := v1.Group("/license")
	{
		licenseGroup.POST("/activate", h.License.Activate)
		licenseGroup.GET("/status", h.License.Status)
		licenseGroup.POST("/clear", h.License.Clear)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Current license session
	protected.GET("/session", h.License.Session)

	// Shop profile
	protected.GET("/shop", h.Shop.Get)
	protected.PUT("/shop", h.Shop.Save)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Stats)

	registerProductRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerInvoiceRoutes(protected, h, deps)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.GET("/:id/invoices", h.Customer.Invoices)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		// Invoice creation uses idempotency middleware so a retried POST
		// cannot burn a second invoice number
		invoices.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/:id/html", h.Invoice.Render)
		invoices.PUT("/:id", h.Invoice.Update)
	}
}
