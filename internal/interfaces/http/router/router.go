package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aurelia/backend/internal/infrastructure/auth"
	"github.com/aurelia/backend/internal/infrastructure/logger"
	"github.com/aurelia/backend/internal/interfaces/http/handler"
	"github.com/aurelia/backend/internal/interfaces/http/middleware"
)

// Config holds everything the router needs to wire the API surface
type Config struct {
	Logger     *zap.Logger
	JWTService *auth.JWTService

	// CORS defaults to the permissive development policy when nil
	CORS *middleware.CORSConfig

	// MaxBodyBytes caps request body size; 0 uses the default (1 MiB)
	MaxBodyBytes int64

	// RateLimit is requests per minute per client IP; 0 disables limiting
	RateLimit int

	Shopfront *handler.ShopfrontHandler
	Products  *handler.ProductHandler
	Orders    *handler.OrderHandler
	System    *handler.SystemHandler
}

const defaultMaxBodyBytes = 1 << 20

// New builds the gin engine with all middleware and routes attached
func New(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.Secure())

	if cfg.CORS != nil {
		engine.Use(middleware.CORSWithConfig(*cfg.CORS))
	} else {
		engine.Use(middleware.CORS())
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	engine.Use(middleware.BodyLimit(maxBody))

	if cfg.RateLimit > 0 {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, time.Minute)))
	}

	// Probes live outside the versioned API
	engine.GET("/healthz", cfg.System.Health)

	api := engine.Group("/api/v1")

	registerShopRoutes(api, cfg)
	registerOrderRoutes(api, cfg)
	registerAdminRoutes(api, cfg)

	api.GET("/system/info", cfg.System.Info)

	return engine
}

// registerShopRoutes wires the public storefront surface. Browsing is
// anonymous; a bearer token is honored when present.
func registerShopRoutes(api *gin.RouterGroup, cfg Config) {
	shop := api.Group("/shop")
	shop.Use(middleware.OptionalJWTAuth(cfg.JWTService))

	shop.GET("/products", cfg.Shopfront.Browse)
	shop.GET("/products/:slug", cfg.Shopfront.ProductBySlug)
	shop.GET("/collections/:handle/products", cfg.Shopfront.BrowseCollection)
	shop.GET("/featured", cfg.Shopfront.Featured)
	shop.GET("/price-buckets", cfg.Shopfront.PriceBuckets)
}

func registerOrderRoutes(api *gin.RouterGroup, cfg Config) {
	// Guest checkout is allowed; signed-in customers are recognized
	api.POST("/checkout", middleware.OptionalJWTAuth(cfg.JWTService), cfg.Orders.Checkout)
	api.GET("/orders/track/:number", cfg.Orders.Track)

	me := api.Group("/me")
	me.Use(middleware.JWTAuthWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: cfg.JWTService,
		Logger:     cfg.Logger,
	}))
	me.GET("/orders", cfg.Orders.MyOrders)
}

func registerAdminRoutes(api *gin.RouterGroup, cfg Config) {
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuthWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: cfg.JWTService,
		Logger:     cfg.Logger,
	}))
	admin.Use(middleware.AdminOnly())

	products := admin.Group("/products")
	products.GET("", cfg.Products.List)
	products.POST("", cfg.Products.Create)
	products.GET("/:id", cfg.Products.GetByID)
	products.PUT("/:id", cfg.Products.Update)
	products.PUT("/:id/pricing", cfg.Products.SetPricing)
	products.PUT("/:id/stock", cfg.Products.SetStock)
	products.PUT("/:id/flags", cfg.Products.SetFlags)
	products.PUT("/:id/media", cfg.Products.SetMedia)
	products.DELETE("/:id", cfg.Products.Delete)

	orders := admin.Group("/orders")
	orders.GET("", cfg.Orders.List)
	orders.GET("/:id", cfg.Orders.GetByID)
	orders.PUT("/:id/status", cfg.Orders.ChangeStatus)
	orders.PUT("/:id/payment", cfg.Orders.UpdatePayment)
}
