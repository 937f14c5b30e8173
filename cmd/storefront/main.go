package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"skincare-storefront/internal/api"
	"skincare-storefront/internal/apiclient"
	"skincare-storefront/internal/catalog"
	"skincare-storefront/internal/config"
	"skincare-storefront/internal/logging"
	"skincare-storefront/internal/orders"
	"skincare-storefront/internal/telemetry"
)

const serviceName = "skincare-storefront"

func main() {
	cfg, err := config.LoadStorefront()
	if err != nil {
		zap.NewExample().Fatal("error loading configuration", zap.Error(err))
	}

	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("error building logger", zap.Error(err))
	}
	defer logging.Sync(logger)
	logger.Info("starting service", zap.String("app_env", cfg.AppEnv), zap.String("remote_api", cfg.RemoteAPI.BaseURL))

	shutdownTracer, err := telemetry.InitTracer(context.Background(), serviceName, cfg.Tracing.Endpoint)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// Every call goes to one host, so keep more idle connections to it.
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 32
	client, err := apiclient.New(cfg.RemoteAPI.BaseURL,
		apiclient.WithHTTPClient(&http.Client{Transport: transport}),
		apiclient.WithTimeout(cfg.RemoteAPI.Timeout),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("failed to create catalog api client", zap.Error(err))
	}

	store, err := catalog.New(client, catalog.WithLogger(logger))
	if err != nil {
		logger.Fatal("failed to create catalog store", zap.Error(err))
	}
	orderService := orders.NewService(client, logger, cfg.Catalog.ApprovalConcurrency)

	healthServer := health.NewServer()
	reportHealth := func() { api.ReportCatalogHealth(healthServer, store.Status()) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// An unreachable API at startup is not fatal; listings retry lazily.
	if err := store.EnsureProducts(ctx); err != nil {
		logger.Warn("initial catalog load incomplete", zap.Error(err))
	}
	reportHealth()
	go store.Run(ctx, cfg.Catalog.RefreshInterval, func(error) { reportHealth() })

	httpAPIHandler := api.NewHTTPHandler(store, orderService,
		api.WithLogger(logger),
		api.WithRefreshObserver(func(st catalog.Status) { api.ReportCatalogHealth(healthServer, st) }),
	)

	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter, logger)
	httpRouter.Handle("/metrics", promhttp.Handler())
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
		logger.Info("HTTP server has stopped")
	}()

	grpcServer := setupGRPCServer(logger, healthServer)
	grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcServer.Port)
	if err != nil {
		logger.Fatal("failed to listen for gRPC", zap.String("port", cfg.GrpcServer.Port), zap.Error(err))
	}

	go func() {
		logger.Info("gRPC server listening", zap.String("port", cfg.GrpcServer.Port))
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			logger.Fatal("gRPC server Serve error", zap.Error(err))
		}
		logger.Info("gRPC server has stopped")
	}()

	shutdownComplete := make(chan struct{})
	go waitForShutdown(logger, httpServer, grpcServer, healthServer, func(shutdownCtx context.Context) {
		cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}, shutdownComplete)

	<-shutdownComplete
	logger.Info("service shutdown sequence finished")
}

func setupBaseMiddleware(router *chi.Mux, logger *zap.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(telemetry.HTTPMetrics)
	router.Use(middleware.Timeout(60 * time.Second))
}

func setupGRPCServer(logger *zap.Logger, healthServer *health.Server) *grpc.Server {
	s := grpc.NewServer()

	grpc_health_v1.RegisterHealthServer(s, healthServer)
	logger.Info("gRPC health check service registered")

	// Enable gRPC server reflection (useful for tools like grpcurl).
	reflection.Register(s)
	return s
}

func waitForShutdown(
	logger *zap.Logger,
	httpServer *http.Server,
	grpcServer *grpc.Server,
	healthServer *health.Server,
	cleanup func(context.Context),
	shutdownComplete chan struct{},
) {
	defer close(shutdownComplete)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-sigChan
	logger.Info("starting graceful shutdown", zap.String("signal", receivedSignal.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	healthServer.Shutdown()

	stoppedGrpc := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stoppedGrpc)
	}()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("HTTP server gracefully shut down")
	}

	select {
	case <-stoppedGrpc:
		logger.Info("gRPC server gracefully shut down")
	case <-shutdownCtx.Done():
		logger.Warn("gRPC server graceful shutdown timed out, forcing stop", zap.Error(shutdownCtx.Err()))
		grpcServer.Stop()
	}

	cleanup(shutdownCtx)
	logger.Info("graceful shutdown sequence completed")
}
