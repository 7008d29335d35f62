package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/lubepos-api/internal/config"
	domainRepo "github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/internal/presentation/http/handler"
	"github.com/sangkips/lubepos-api/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Catalog   *handler.CatalogHandler
	POS       *handler.POSHandler
	Item      *handler.ItemHandler
	Category  *handler.CategoryHandler
	User      *handler.UserHandler
	Sale      *handler.SaleHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is built from Cfg.RateLimit when nil
	RateLimiter *middleware.SessionRateLimiter
}

// NewRateLimiter builds the per-session limiter described by cfg
func NewRateLimiter(cfg *config.RateLimitConfig) *middleware.SessionRateLimiter {
	rlCfg := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rlCfg.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rlCfg.BurstSize = cfg.Requests
	}
	rlCfg.CleanupInterval = 5 * time.Minute
	return middleware.NewSessionRateLimiter(rlCfg)
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = NewRateLimiter(&deps.Cfg.RateLimit)
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.SessionMiddleware())
	v1.Use(rateLimiter.Middleware())
	{
		registerCatalogRoutes(v1, h)
		registerPOSRoutes(v1, h, deps)
		registerItemRoutes(v1, h, deps)
		registerCategoryRoutes(v1, h)
		registerUserRoutes(v1, h, deps)
		registerSaleRoutes(v1, h)

		v1.GET("/dashboard", h.Dashboard.GetStats)

		reports := v1.Group("/reports")
		{
			reports.GET("/types", h.Report.Types)
			reports.POST("/generate", h.Report.Generate)
		}

		printerGroup := v1.Group("/printer")
		{
			printerGroup.GET("/status", h.Printer.GetStatus)
			printerGroup.POST("/test", h.Printer.TestPrint)
		}
	}

	return router
}

func idempotencyConfig(deps *Deps) middleware.IdempotencyConfig {
	return middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Logger: deps.Logger}
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/products", h.Catalog.ListProducts)
		catalog.GET("/products/:id", h.Catalog.GetProduct)
		catalog.GET("/brands", h.Catalog.Brands)
		catalog.GET("/types", h.Catalog.Types)
		catalog.GET("/variants", h.Catalog.Variants)
	}
}

func registerPOSRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	pos := v1.Group("/pos")
	{
		pos.GET("/cart", h.POS.GetCart)
		pos.DELETE("/cart", h.POS.ClearCart)
		pos.POST("/cart/items", h.POS.AddToCart)
		pos.PUT("/cart/items/:key", h.POS.UpdateCartLine)
		pos.DELETE("/cart/items/:key", h.POS.RemoveCartLine)

		pos.GET("/staging", h.POS.GetStaging)
		pos.DELETE("/staging", h.POS.ClearStaging)
		pos.POST("/staging", h.POS.SelectVariant)
		pos.POST("/staging/commit", h.POS.CommitStaging)
		pos.PATCH("/staging/:key", h.POS.AdjustStaged)

		// Checkout must not record the same sale twice when a till retries
		pos.POST("/checkout", middleware.IdempotencyRequired(idempotencyConfig(deps)), h.POS.Checkout)
	}
}

func registerItemRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	items := v1.Group("/items")
	{
		items.GET("", h.Item.List)
		items.POST("", middleware.Idempotency(idempotencyConfig(deps)), h.Item.Create)
		items.GET("/low-stock", h.Item.GetLowStock)
		items.GET("/export", h.Item.Export)
		items.POST("/import", h.Item.Import)
		items.GET("/:id", h.Item.Get)
		items.PUT("/:id", h.Item.Update)
		items.DELETE("/:id", h.Item.Delete)
		items.POST("/:id/duplicate", middleware.Idempotency(idempotencyConfig(deps)), h.Item.Duplicate)
	}
}

func registerCategoryRoutes(v1 *gin.RouterGroup, h *Handlers) {
	categories := v1.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.DELETE("/:name", h.Category.Delete)
	}
}

func registerUserRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	users := v1.Group("/users")
	{
		users.GET("", h.User.List)
		users.POST("", middleware.Idempotency(idempotencyConfig(deps)), h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers) {
	sales := v1.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/print", h.Sale.Print)
	}
}
