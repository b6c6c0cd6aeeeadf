package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appactivity "github.com/erp/orderhub/internal/application/activity"
	identityapp "github.com/erp/orderhub/internal/application/identity"
	"github.com/erp/orderhub/internal/application/ingestion"
	"github.com/erp/orderhub/internal/application/ordering"
	partnerapp "github.com/erp/orderhub/internal/application/partner"
	"github.com/erp/orderhub/internal/infrastructure/auth"
	"github.com/erp/orderhub/internal/infrastructure/cache"
	"github.com/erp/orderhub/internal/infrastructure/config"
	"github.com/erp/orderhub/internal/infrastructure/logger"
	"github.com/erp/orderhub/internal/infrastructure/persistence"
	"github.com/erp/orderhub/internal/infrastructure/storage"
	"github.com/erp/orderhub/internal/infrastructure/telemetry"
	"github.com/erp/orderhub/internal/interfaces/http/handler"
	"github.com/erp/orderhub/internal/interfaces/http/middleware"
	"github.com/erp/orderhub/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/erp/orderhub/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Orderhub API
//	@version		1.0
//	@description	Order management backend fed by Shopify order webhooks.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	providers := setupTelemetry(ctx, cfg, bootLog)

	// Re-create the logger so records also flow to the OTLP logs pipeline
	log, err := logger.New(logCfg, providers.logs.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting orderhub",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
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

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
		log.Info("Schema auto-migrated")
	}

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	writeScope := persistence.NewGormOrderWriteScope(db.DB, cfg.Ingestion.AtomicWrites)

	// Ingestion pipeline
	recorder := appactivity.NewRecorder(activityRepo, log)
	resolver := ingestion.NewResolver(customerRepo, productRepo, stockRepo,
		ingestion.ResolverConfig{Concurrency: cfg.Ingestion.ResolveConcurrency}, log)
	builder := ingestion.NewBuilder(resolver, orderRepo, productRepo, itemRepo, log)
	sequencer := ingestion.NewSequencer(writeScope, log)

	dedupeTTL := time.Duration(0)
	if cfg.Webhook.DedupeEnabled {
		dedupeTTL = cfg.Webhook.DedupeTTL
	}
	dedupe, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cfg.Webhook, cache.WithLogger(log)).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create webhook dedupe store", zap.Error(err))
	}
	defer func() {
		if err := dedupe.Close(); err != nil {
			log.Warn("Error closing webhook dedupe store", zap.Error(err))
		}
	}()

	ingestionMetrics, err := telemetry.NewIngestionMetrics(providers.metrics.Meter("orderhub/ingestion"))
	if err != nil {
		log.Fatal("Failed to create ingestion metrics", zap.Error(err))
	}
	gateway := ingestion.NewGateway(builder, sequencer, orderRepo, dedupe, ingestionMetrics,
		ingestion.GatewayConfig{DedupeTTL: dedupeTTL}, log)

	// Application services
	var blobs ordering.BlobStore
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3BlobStore(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to create invoice blob store", zap.Error(err))
		}
		blobs = s3Store
	}
	orderService := ordering.NewOrderService(orderRepo, builder, sequencer, recorder, log)
	dummyGenerator := ordering.NewDummyGenerator(customerRepo, productRepo, itemRepo, orgRepo, orderRepo, sequencer, recorder, log)
	shipmentService := ordering.NewShipmentService(orderRepo, log)
	invoiceService := ordering.NewInvoiceService(orderRepo, blobs, log)
	customerService := partnerapp.NewCustomerService(customerRepo, recorder, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	hasher := identityapp.NewPasswordHasher(0)
	authService := identityapp.NewAuthService(userRepo, hasher, jwtService, log)
	userService := identityapp.NewUserService(userRepo, roleRepo, orgRepo, hasher, recorder, log)

	// Handlers
	orderHandler := handler.NewOrderHandler(orderService, dummyGenerator)
	customerHandler := handler.NewCustomerHandler(customerService)
	userHandler := handler.NewUserHandler(userService, authService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	webhookHandler := handler.NewWebhookHandler(gateway, handler.WebhookConfig{
		Secret:       cfg.Webhook.ShopifySecret,
		MaxBodyBytes: cfg.Webhook.MaxBodyBytes,
	})
	systemHandler := handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	serverCtx, stopServer := context.WithCancel(ctx)
	defer stopServer()

	// Request ID and recovery run first; spans cover everything after them
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if providers.traces.IsEnabled() {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
		engine.Use(middleware.SpanErrorMarker())
		engine.Use(middleware.SpanAttributes())
	}
	engine.Use(middleware.Secure())
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, cfg.HTTP.CORSAllowHeaders...)
	engine.Use(middleware.CORSWithConfig(corsConfig))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	jwtConfig.Required = cfg.JWT.Required
	r := mountRoutes(engine,
		apiMiddleware(serverCtx, cfg.HTTP, middleware.JWTAuthMiddlewareWithConfig(jwtConfig), log),
		[]router.RouteRegistrar{
			orderHandler.Routes(),
			customerHandler.Routes(),
			userHandler.Routes(),
			shipmentHandler.Routes(),
			invoiceHandler.Routes(),
		},
		webhookHandler.Routes(),
	)

	systemHandler.SetEndpoints(r.Endpoints())
	engine.GET("/health", systemHandler.Health)
	engine.GET("/api", systemHandler.Index)

	swagger := engine.Group("/swagger", middleware.SwaggerProtection(middleware.SwaggerConfig{
		Enabled:    cfg.Swagger.Enabled,
		AllowedIPs: cfg.Swagger.AllowedIPs,
	}))
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	stopServer()
	providers.shutdown(shutdownCtx, log)

	log.Info("Server exited gracefully")
}

type telemetryProviders struct {
	traces  *telemetry.TracerProvider
	metrics *telemetry.MeterProvider
	logs    *telemetry.LoggerProvider
}

// setupTelemetry starts the three OTLP pipelines. A pipeline that fails to
// start is logged and replaced by its no-op form.
func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) telemetryProviders {
	base := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}
	disabled := base
	disabled.Enabled = false

	traces, err := telemetry.NewTracerProvider(ctx, base, log)
	if err != nil {
		log.Error("Failed to start trace pipeline", zap.Error(err))
		traces, _ = telemetry.NewTracerProvider(ctx, disabled, log)
	}

	metricsCfg := base
	metricsCfg.Enabled = base.Enabled && cfg.Telemetry.MetricsEnabled
	metrics, err := telemetry.NewMeterProvider(ctx, metricsCfg, 0, log)
	if err != nil {
		log.Error("Failed to start metrics pipeline", zap.Error(err))
		metrics, _ = telemetry.NewMeterProvider(ctx, disabled, 0, log)
	}

	logsCfg := base
	logsCfg.Enabled = base.Enabled && cfg.Telemetry.LogsEnabled
	logs, err := telemetry.NewLoggerProvider(ctx, logsCfg, log)
	if err != nil {
		log.Error("Failed to start logs pipeline", zap.Error(err))
		logs, _ = telemetry.NewLoggerProvider(ctx, disabled, log)
	}

	return telemetryProviders{traces: traces, metrics: metrics, logs: logs}
}

// shutdown flushes traces and metrics before logs so their failures are still exported
func (p telemetryProviders) shutdown(ctx context.Context, log *zap.Logger) {
	if err := p.traces.Shutdown(ctx); err != nil {
		log.Warn("Error shutting down tracer provider", zap.Error(err))
	}
	if err := p.metrics.Shutdown(ctx); err != nil {
		log.Warn("Error shutting down meter provider", zap.Error(err))
	}
	if err := p.logs.Shutdown(ctx); err != nil {
		log.Warn("Error shutting down logger provider", zap.Error(err))
	}
}
