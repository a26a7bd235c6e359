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

	shippingapp "github.com/storefront/backend/internal/application/shipping"
	"github.com/storefront/backend/internal/domain/shipping"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/carrier"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Storefront Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Serviceability cache: Redis when reachable, in-memory otherwise
	var serviceabilityCache shipping.ServiceabilityCache
	redisCache, err := cache.NewRedisServiceabilityCache(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Delhivery.ServiceCacheTTL, log)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory serviceability cache", zap.Error(err))
		memCache := cache.NewInMemoryServiceabilityCache(cfg.Delhivery.ServiceCacheTTL)
		defer memCache.Close()
		serviceabilityCache = memCache
	} else {
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		serviceabilityCache = redisCache
		log.Info("Redis serviceability cache connected")
	}

	// Carrier gateway
	carrierConfig := carrier.NewDelhiveryConfig(cfg.Delhivery.APIKey, cfg.Delhivery.ClientName)
	if cfg.Delhivery.BaseURL != "" {
		carrierConfig.BaseURL = cfg.Delhivery.BaseURL
	}
	if cfg.Delhivery.PickupLocation != "" {
		carrierConfig.PickupLocation = cfg.Delhivery.PickupLocation
	}
	if cfg.Delhivery.TimeoutSeconds > 0 {
		carrierConfig.TimeoutSeconds = cfg.Delhivery.TimeoutSeconds
	}
	if cfg.Delhivery.ReturnAddress != "" {
		carrierConfig.Return = carrier.ReturnAddress{
			Address: cfg.Delhivery.ReturnAddress,
			City:    cfg.Delhivery.ReturnCity,
			State:   cfg.Delhivery.ReturnState,
			Pin:     cfg.Delhivery.ReturnPin,
			Phone:   cfg.Delhivery.ReturnPhone,
			Country: "India",
		}
	}
	delhivery, err := carrier.NewDelhiveryAdapter(carrierConfig, log)
	if err != nil {
		log.Fatal("Failed to initialize Delhivery adapter", zap.Error(err))
	}

	// Repositories and application services
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	shippingService := shippingapp.NewShippingService(orderRepo, delhivery, serviceabilityCache, log)

	// HTTP handlers
	shippingHandler := handler.NewShippingHandler(shippingService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging,
	// security headers, CORS, body size limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Register API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(shippingHandler).
		Register(systemHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
