package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"disease-intake-service/internal/adapters/primary/http/handlers"
	"disease-intake-service/internal/adapters/primary/http/middleware"
	"disease-intake-service/internal/adapters/secondary/filestore"
	"disease-intake-service/internal/adapters/secondary/onnx"
	"disease-intake-service/internal/adapters/secondary/postgres"
	"disease-intake-service/internal/config"
	"disease-intake-service/internal/core/domain"
	output "disease-intake-service/internal/core/ports/output"
	"disease-intake-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// ============================================================================
	// Model Startup
	// ============================================================================

	loader, err := onnx.NewLoader(cfg.Model.RuntimeLibPath)
	if err != nil {
		log.WithField("error_kind", domain.KindStartupFatal).Fatalf("init onnxruntime: %v", err)
	}
	defer loader.Close()

	detector, err := services.NewModelLoaderService(loader).Start(cfg.Model.Primary(), cfg.Model.Fallback())
	if err != nil {
		log.WithField("error_kind", domain.KindOf(err)).Fatalf("load model: %v", err)
	}
	defer detector.Close()

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters
	store, err := filestore.New(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("prepare upload dir: %v", err)
	}

	// Capture ledger (Optional - based on config)
	var captures output.CaptureRepository
	if cfg.Database.Enabled {
		pool, err := openPool(cfg)
		if err != nil {
			log.Fatalf("open capture ledger: %v", err)
		}
		defer pool.Close()
		captures = postgres.NewCaptureRepository(pool)
		log.Info("capture ledger enabled")
	} else {
		log.Info("capture ledger disabled")
	}

	// Core Services
	intakeSvc := services.NewIntakeService(detector, store, captures, cfg.Upload.Limits())

	// Primary Adapter
	h := handlers.New(intakeSvc)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), middleware.CORS(), gin.Recovery())
	h.RegisterRoutes(router.Group("/"))

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.WithField("upload_dir", cfg.Upload.Dir).Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func openPool(cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	}

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
