package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"skincare-storefront/internal/catalogapi"
	"skincare-storefront/internal/config"
	"skincare-storefront/internal/logging"
	"skincare-storefront/internal/media"
	"skincare-storefront/internal/store"
	"skincare-storefront/internal/telemetry"
)

const serviceName = "skincare-catalog-api"

func main() {
	cfg, err := config.LoadCatalogAPI()
	if err != nil {
		zap.NewExample().Fatal("error loading configuration", zap.Error(err))
	}

	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("error building logger", zap.Error(err))
	}
	defer logging.Sync(logger)
	logger.Info("starting service", zap.String("app_env", cfg.AppEnv))

	shutdownTracer, err := telemetry.InitTracer(context.Background(), serviceName, cfg.Tracing.Endpoint)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Postgres.DSN())
	if err != nil {
		logger.Fatal("failed to initialize database connection", zap.Error(err))
	}
	if err := db.PingContext(context.Background()); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}
	logger.Info("database connection established")
	dbStore := store.NewPostgresStore(db, logger)

	images, err := media.NewLocalStorage(cfg.Media.Dir, cfg.Media.PublicBaseURL, cfg.Media.MaxUploadBytes, logger)
	if err != nil {
		logger.Fatal("failed to prepare media storage", zap.Error(err))
	}

	httpAPIHandler := catalogapi.NewHTTPHandler(dbStore, images, logger, cfg.Media.MaxUploadBytes)

	httpRouter := chi.NewRouter()
	httpRouter.Use(middleware.RequestID)
	httpRouter.Use(middleware.RealIP)
	httpRouter.Use(logging.RequestLogger(logger))
	httpRouter.Use(middleware.Recoverer)
	httpRouter.Use(telemetry.HTTPMetrics)
	httpRouter.Use(middleware.Timeout(60 * time.Second))

	registerHealthCheck(httpRouter, logger, db)
	httpRouter.Handle("/metrics", promhttp.Handler())
	httpRouter.Handle(media.URLPrefix+"*", images.Handler())
	httpAPIHandler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.HttpServer.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server ListenAndServe error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-sigChan
	logger.Info("starting graceful shutdown", zap.String("signal", receivedSignal.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server graceful shutdown failed", zap.Error(err))
	}
	if err := dbStore.Close(); err != nil {
		logger.Warn("error closing database connection", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown failed", zap.Error(err))
	}
	logger.Info("graceful shutdown sequence completed")
}

func registerHealthCheck(router *chi.Mux, logger *zap.Logger, db *sql.DB) {
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		dbStatus := "healthy"
		if err := db.PingContext(ctx); err != nil {
			dbStatus = "unhealthy"
			logger.Warn("health check DB ping failed", zap.Error(err))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK) // Always 200, the payload carries the detail
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "healthy",
			"serviceName": serviceName,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"database":    dbStatus,
		})
	})
}
