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

	appshipping "github.com/erp/shipping/internal/application/shipping"
	"github.com/erp/shipping/internal/infrastructure/auth"
	"github.com/erp/shipping/internal/infrastructure/cache"
	"github.com/erp/shipping/internal/infrastructure/config"
	"github.com/erp/shipping/internal/infrastructure/endicia"
	"github.com/erp/shipping/internal/infrastructure/logger"
	"github.com/erp/shipping/internal/infrastructure/persistence"
	"github.com/erp/shipping/internal/infrastructure/storage"
	"github.com/erp/shipping/internal/interfaces/http/handler"
	"github.com/erp/shipping/internal/interfaces/http/middleware"
	"github.com/erp/shipping/internal/interfaces/http/router"
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

	log.Info("Starting shipping backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	carrierRepo := persistence.NewGormCarrierRepository(db.DB)
	mailClassRepo := persistence.NewGormMailClassRepository(db.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(db.DB)

	// Initialize the Endicia label provider
	endiciaCfg := &endicia.EndiciaConfig{
		AccountID:      cfg.Endicia.AccountID,
		RequesterID:    cfg.Endicia.RequesterID,
		PassPhrase:     cfg.Endicia.PassPhrase,
		LabelServerURL: cfg.Endicia.LabelServerURL,
		ELSServerURL:   cfg.Endicia.ELSServerURL,
		IsTest:         cfg.Endicia.IsTest,
		TimeoutSeconds: cfg.Endicia.TimeoutSeconds,
	}
	labelProvider, err := endicia.NewEndiciaAdapter(endiciaCfg)
	if err != nil {
		log.Fatal("Failed to initialize Endicia adapter", zap.Error(err))
	}
	log.Info("Endicia adapter initialized", zap.Bool("test_mode", cfg.Endicia.IsTest))

	// Object storage for labels and manifests. Falls back to in-memory
	// storage in development when no bucket is configured.
	var objectStorage appshipping.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		if cfg.App.Env == "production" {
			log.Fatal("storage.bucket is required in production")
		}
		objectStorage = storage.NewMemoryObjectStorage()
		log.Warn("No storage bucket configured, using in-memory object storage")
	}

	// Postage quote cache
	var rateCache appshipping.RateCache
	if cfg.Rates.CacheEnabled {
		redisCache, err := cache.NewRedisRateCache(&cfg.Redis, cache.WithRateCacheLogger(log))
		if err != nil {
			log.Warn("Redis unavailable, postage quotes will not be cached", zap.Error(err))
		} else {
			rateCache = redisCache
			defer func() {
				if err := redisCache.Close(); err != nil {
					log.Error("Error closing rate cache", zap.Error(err))
				}
			}()
			log.Info("Rate cache initialized", zap.String("addr", cfg.Redis.Addr()))
		}
	}

	// Initialize application services
	shipmentService := appshipping.NewShipmentService(shipmentRepo, carrierRepo, mailClassRepo)
	labelService := appshipping.NewLabelService(shipmentRepo, attachmentRepo, labelProvider, objectStorage)
	rateService := appshipping.NewRateService(shipmentRepo, labelProvider, rateCache)
	rateService.SetCacheTTL(cfg.Rates.CacheTTL)
	refundService := appshipping.NewRefundService(shipmentRepo, labelProvider)
	scanFormService := appshipping.NewSCANFormService(shipmentRepo, attachmentRepo, labelProvider, objectStorage)
	postageService := appshipping.NewPostageService(labelProvider)
	attachmentService := appshipping.NewAttachmentService(shipmentRepo, attachmentRepo, objectStorage)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	shippingHandler := handler.NewShippingHandler(
		shipmentService,
		labelService,
		rateService,
		refundService,
		scanFormService,
		postageService,
		attachmentService,
	)
	systemHandler := handler.NewSystemHandler()

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

	// Middleware stack, in order: request ID, panic recovery, request
	// logging, security headers, CORS, body limit, rate limiting.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Shipping domain routes
	shippingRoutes := router.NewDomainGroup("shipping", "/shipping")
	shippingRoutes.GET("/shipments", shippingHandler.ListShipments)
	shippingRoutes.GET("/shipments/:id", shippingHandler.GetShipment)
	shippingRoutes.PATCH("/shipments/:id/shipping-options", shippingHandler.UpdateShippingOptions)
	shippingRoutes.POST("/shipments/:id/label", shippingHandler.GenerateLabel)
	shippingRoutes.GET("/shipments/:id/rate", shippingHandler.GetShippingCost)
	shippingRoutes.GET("/shipments/:id/attachments", shippingHandler.ListAttachments)
	shippingRoutes.POST("/shipments/refund", shippingHandler.RequestRefund)
	shippingRoutes.POST("/shipments/scan-form", shippingHandler.MakeSCANForm)
	shippingRoutes.POST("/postage/buy", shippingHandler.BuyPostage)
	shippingRoutes.GET("/carriers", shippingHandler.ListCarriers)
	shippingRoutes.GET("/mail-classes", shippingHandler.ListMailClasses)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(shippingRoutes).
		Register(systemRoutes)

	r.Setup()

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

// healthHandler returns a handler for health check endpoints. Health
// probes bypass the request logging middleware, so failures are
// reported on the base logger.
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
