package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/aurelia/backend/internal/application/catalog"
	"github.com/aurelia/backend/internal/application/shopfront"
	tradeapp "github.com/aurelia/backend/internal/application/trade"
	"github.com/aurelia/backend/internal/infrastructure/auth"
	"github.com/aurelia/backend/internal/infrastructure/cache"
	"github.com/aurelia/backend/internal/infrastructure/config"
	"github.com/aurelia/backend/internal/infrastructure/event"
	"github.com/aurelia/backend/internal/infrastructure/logger"
	"github.com/aurelia/backend/internal/infrastructure/persistence"
	"github.com/aurelia/backend/internal/infrastructure/storefront"
	"github.com/aurelia/backend/internal/interfaces/http/handler"
	"github.com/aurelia/backend/internal/interfaces/http/middleware"
	"github.com/aurelia/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("starting aurelia backend",
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	// Event bus and cross-context subscriptions
	bus := event.NewInMemoryEventBus(log)
	if err := bus.Start(context.Background()); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}

	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	bus.Subscribe(catalogapp.NewOrderCreatedHandler(productRepo, log))
	bus.Subscribe(catalogapp.NewOrderCancelledHandler(productRepo, log))

	// Remote commerce platform
	var remote shopfront.RemoteLister
	if cfg.Storefront.Enabled {
		sfCfg := storefront.NewConfig(cfg.Storefront.APIURL, cfg.Storefront.AccessToken)
		sfCfg.TimeoutSeconds = cfg.Storefront.TimeoutSeconds

		client, err := storefront.NewClient(sfCfg, storefront.WithLogger(log))
		if err != nil {
			log.Fatal("failed to create storefront client", zap.Error(err))
		}
		remote = client
		log.Info("storefront integration enabled", zap.String("api_url", cfg.Storefront.APIURL))
	} else {
		log.Info("storefront integration disabled, serving local catalog only")
	}

	// Page cache: Redis when configured, in-memory otherwise
	cacheFactory := cache.NewPageCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	pageCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("failed to create page cache", zap.Error(err))
	}
	defer pageCache.Close() //nolint:errcheck

	// Application services
	productService := catalogapp.NewProductService(productRepo, bus, log)
	orderService := tradeapp.NewOrderService(orderRepo, productRepo, bus, log)
	shopService := shopfront.NewService(productRepo, remote, pageCache, cfg.Storefront.CacheTTL, log)

	// HTTP surface
	jwtService := auth.NewJWTService(cfg.JWT)

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	rateLimit := 0
	if cfg.HTTP.RateLimitEnabled {
		rateLimit = cfg.HTTP.RateLimitRequests
	}

	engine := router.New(router.Config{
		Logger:       log,
		JWTService:   jwtService,
		CORS:         &corsCfg,
		MaxBodyBytes: cfg.HTTP.MaxBodySize,
		RateLimit:    rateLimit,
		Shopfront:    handler.NewShopfrontHandler(shopService, productService),
		Products:     handler.NewProductHandler(productService),
		Orders:       handler.NewOrderHandler(orderService),
		System:       handler.NewSystemHandler(version),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	if err := bus.Stop(ctx); err != nil {
		log.Error("event bus stop failed", zap.Error(err))
	}

	log.Info("server stopped")
}
