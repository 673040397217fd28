package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/landlord/backend/internal/application/billing"
	rentapp "github.com/landlord/backend/internal/application/rent"
	reportapp "github.com/landlord/backend/internal/application/report"
	tenancyapp "github.com/landlord/backend/internal/application/tenancy"
	"github.com/landlord/backend/internal/domain/billing"
	"github.com/landlord/backend/internal/infrastructure/cache"
	"github.com/landlord/backend/internal/infrastructure/config"
	"github.com/landlord/backend/internal/infrastructure/logger"
	"github.com/landlord/backend/internal/infrastructure/persistence"
	"github.com/landlord/backend/internal/interfaces/http/handler"
	"github.com/landlord/backend/internal/interfaces/http/middleware"
	"github.com/landlord/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ledger backend",
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
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	paymentRepo := persistence.NewGormRentPaymentRepository(db.DB)

	// Dashboard summary cache, shared across instances when Redis is enabled
	var summaryCache reportapp.SummaryCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisSummaryCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Billing.DashboardCacheTTL)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		summaryCache = redisCache
		log.Info("Redis summary cache enabled")
	} else {
		summaryCache = cache.NewInMemorySummaryCache(cfg.Billing.DashboardCacheTTL)
		log.Info("In-memory summary cache enabled")
	}

	periodPolicy, err := billing.ParsePeriodPolicy(cfg.Billing.PeriodPolicy)
	if err != nil {
		log.Fatal("Invalid billing period policy", zap.Error(err))
	}

	// Application services
	tenantService := tenancyapp.NewTenantService(tenantRepo, billRepo, paymentRepo, summaryCache)
	billService := billingapp.NewBillService(billRepo, tenantRepo, periodPolicy, summaryCache)
	paymentService := rentapp.NewPaymentService(paymentRepo, tenantRepo, summaryCache)
	dashboardService := reportapp.NewDashboardService(tenantRepo, billRepo, paymentRepo, summaryCache, periodPolicy, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	// Routes
	r := router.NewRouter(engine)
	r.Register(handler.NewTenantHandler(tenantService)).
		Register(handler.NewBillHandler(billService)).
		Register(handler.NewRentHandler(paymentService)).
		Register(handler.NewDashboardHandler(dashboardService)).
		Register(handler.NewSystemHandler(db))
	r.Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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
