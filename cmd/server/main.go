package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/21501a05b6/Magnova/internal/application/identity"
	inventoryapp "github.com/21501a05b6/Magnova/internal/application/inventory"
	logisticsapp "github.com/21501a05b6/Magnova/internal/application/logistics"
	paymentapp "github.com/21501a05b6/Magnova/internal/application/payment"
	procurementapp "github.com/21501a05b6/Magnova/internal/application/procurement"
	reportapp "github.com/21501a05b6/Magnova/internal/application/report"
	"github.com/21501a05b6/Magnova/internal/domain/logistics"
	"github.com/21501a05b6/Magnova/internal/infrastructure/auth"
	"github.com/21501a05b6/Magnova/internal/infrastructure/cache"
	"github.com/21501a05b6/Magnova/internal/infrastructure/config"
	"github.com/21501a05b6/Magnova/internal/infrastructure/event"
	"github.com/21501a05b6/Magnova/internal/infrastructure/export"
	"github.com/21501a05b6/Magnova/internal/infrastructure/locking"
	"github.com/21501a05b6/Magnova/internal/infrastructure/logger"
	"github.com/21501a05b6/Magnova/internal/infrastructure/persistence"
	"github.com/21501a05b6/Magnova/internal/interfaces/http/handler"
	"github.com/21501a05b6/Magnova/internal/interfaces/http/middleware"
	"github.com/21501a05b6/Magnova/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting Magnova ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	unitRepo := persistence.NewGormInventoryUnitRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Per-key locks serialize writes that race on the same IMEI, PO or shipment
	locks := locking.NewKeyedMutex(cfg.Locking.AcquireTimeout)

	defaultStatus, ok := logistics.ParseShipmentStatus(cfg.Logistics.DefaultShipmentStatus)
	if !ok {
		log.Fatal("Unrecognized default shipment status",
			zap.String("status", cfg.Logistics.DefaultShipmentStatus))
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	identityService := identityapp.NewIdentityService(userRepo, jwtService)
	procurementService := procurementapp.NewProcurementService(orderRepo, unitRepo, locks)
	inventoryService := inventoryapp.NewInventoryService(unitRepo, locks)
	logisticsService := logisticsapp.NewLogisticsService(shipmentRepo, orderRepo, unitRepo, locks, defaultStatus)
	paymentService := paymentapp.NewPaymentService(paymentRepo, orderRepo, locks)

	dashboardCache := cache.New(cfg, log)
	exporter := export.NewExcelExporter()
	cacheTTL := time.Duration(0)
	if cfg.Dashboard.CacheEnabled {
		cacheTTL = cfg.Dashboard.CacheTTL
	}
	reportService := reportapp.NewReportService(
		orderRepo, unitRepo, shipmentRepo, paymentRepo,
		exporter, dashboardCache, cacheTTL, log,
	)

	// Event bus: every aggregate mutation invalidates the dashboard counters
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(reportapp.NewDashboardCacheInvalidator(dashboardCache, log))

	procurementService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)
	logisticsService.SetEventPublisher(eventBus)
	paymentService.SetEventPublisher(eventBus)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(identityService)
	purchaseOrderHandler := handler.NewPurchaseOrderHandler(procurementService)
	procurementHandler := handler.NewProcurementHandler(procurementService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	logisticsHandler := handler.NewLogisticsHandler(logisticsService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reportHandler := handler.NewReportHandler(reportService)
	healthHandler := handler.NewHealthHandler(db.DB)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSFromConfig(cfg.HTTP))

	healthHandler.RegisterRoutes(engine)

	router.NewRouter(engine, middleware.JWTAuth(jwtService, log)).
		Public(authHandler).
		Protected(
			router.RegistrarFunc(authHandler.RegisterProtectedRoutes),
			purchaseOrderHandler,
			procurementHandler,
			inventoryHandler,
			logisticsHandler,
			paymentHandler,
			reportHandler,
		).
		Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
