package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-receiving/internal/config"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	domainRepo "github.com/sangkips/investify-receiving/internal/domain/repository"
	"github.com/sangkips/investify-receiving/internal/logger"
	"github.com/sangkips/investify-receiving/internal/presentation/http/handler"
	"github.com/sangkips/investify-receiving/internal/presentation/http/middleware"
	"github.com/sangkips/investify-receiving/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Receiving *handler.ReceivingHandler
	Supplier  *handler.SupplierHandler
	Catalog   *handler.CatalogHandler
	Receipt   *handler.ReceiptHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *logger.Logger
	LocationRepo    domainRepo.LocationRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewLocationRateLimiter(rateLimiterConfig(deps.Cfg))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"service":      deps.Cfg.App.Name,
			"rate_limiter": rateLimiter.Stats(),
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		registerProtectedRoutes(protected, h, deps, rateLimiter)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps, rateLimiter *middleware.LocationRateLimiter) {
	protected.GET("/profile", h.Auth.Profile)

	// Suppliers
	registerSupplierRoutes(protected, h)

	protected.GET("/categories", middleware.RequirePermission(enum.PermissionReceiveGoods), h.Catalog.Categories)

	// Receipts by id, membership checked by the service
	protected.GET("/receipts/:id", middleware.RequirePermission(enum.PermissionViewReceipts), h.Receipt.Get)

	// Location-scoped desk, rate limited per location
	location := protected.Group("/locations/:" + middleware.LocationParam)
	location.Use(middleware.LocationMiddleware(deps.LocationRepo))
	location.Use(rateLimiter.Middleware())
	{
		location.GET("/catalog", middleware.RequirePermission(enum.PermissionReceiveGoods), h.Catalog.List)
		location.GET("/receipts", middleware.RequirePermission(enum.PermissionViewReceipts), h.Receipt.List)
		registerReceivingRoutes(location, h, deps)
	}
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers) {
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", middleware.RequirePermission(enum.PermissionReceiveGoods), h.Supplier.List)
		suppliers.POST("", middleware.RequirePermission(enum.PermissionManageSuppliers), h.Supplier.Create)
	}
}

func registerReceivingRoutes(location *gin.RouterGroup, h *Handlers, deps *Deps) {
	desk := location.Group("/receiving")
	desk.Use(middleware.RequirePermission(enum.PermissionReceiveGoods))
	{
		desk.GET("", h.Receiving.Get)
		desk.POST("/open", h.Receiving.Open)
		desk.POST("/recovery", h.Receiving.ResolveRecovery)
		desk.POST("/close", h.Receiving.Close)
		desk.DELETE("", middleware.RequirePermission(enum.PermissionManageDrafts), h.Receiving.Discard)

		desk.POST("/items", h.Receiving.AddItem)
		desk.POST("/items/new", middleware.RequirePermission(enum.PermissionManageProducts), h.Receiving.CreateItem)
		desk.POST("/items/import", h.Receiving.ImportSheet)
		desk.PATCH("/items/:item_id", h.Receiving.UpdateLine)
		desk.DELETE("/items/:item_id", h.Receiving.RemoveLine)

		desk.PUT("/supplier", h.Receiving.SetSupplier)
		desk.POST("/supplier", middleware.RequirePermission(enum.PermissionManageSuppliers), h.Receiving.CreateSupplier)
		desk.PUT("/discount", h.Receiving.SetDiscount)
		desk.PUT("/settlement", h.Receiving.SetSettlement)

		desk.POST("/commit",
			middleware.IdempotencyRequired(middleware.IdempotencyConfig{
				Repo:   deps.IdempotencyRepo,
				Logger: deps.Logger,
			}),
			h.Receiving.Commit,
		)
	}
}

func rateLimiterConfig(cfg *config.Config) middleware.RateLimiterConfig {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimit.Requests > 0 && cfg.RateLimit.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration)
		rl.BurstSize = cfg.RateLimit.Requests
	}
	rl.CleanupInterval = 5 * time.Minute
	rl.EntryTTL = 10 * time.Minute
	return rl
}
