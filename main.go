// File: nataliestudio/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"nataliestudio/config"
	"nataliestudio/cron"
	"nataliestudio/handlers"
	"nataliestudio/metrics"
	"nataliestudio/middleware"
	"nataliestudio/routes"
	"nataliestudio/services/appointments"
	"nataliestudio/services/backend"
	"nataliestudio/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := config.AppConfig
	if cfg.APIURL == "" {
		logger.Warn("main: API_URL is empty; backend requests will fail")
	}

	policy, err := appointments.ParseErrorPolicy(cfg.ErrorPolicy)
	if err != nil {
		logger.Sugar().Warnf("main: %v, falling back to %q", err, policy)
	}

	// Backend client.
	backendMetrics := metrics.NewBackendMetrics(prometheus.DefaultRegisterer)
	client := backend.NewRESTClient(cfg.APIURL, logger.Named("backend"),
		backend.WithTimeout(cfg.RequestTimeout),
		backend.WithMetrics(backendMetrics),
	)

	// View-model.
	vm := appointments.NewViewModel(client, appointments.Options{
		Services:        cfg.ServiceOptions(),
		WindowDays:      cfg.WindowDays,
		ConfirmationTTL: cfg.ConfirmationTTL,
		Policy:          policy,
		Location:        cfg.Location(),
		Store:           newSnapshotStore(cfg, logger),
		Logger:          logger.Named("appointments"),
	})

	activateCtx, cancelActivate := context.WithTimeout(context.Background(), cfg.RequestTimeout+5*time.Second)
	if err := vm.Activate(activateCtx); err != nil {
		logger.Sugar().Errorf("main: initial appointment fetch failed: %v", err)
	}
	cancelActivate()

	keepAlive := cron.NewKeepAlive(client, cfg.KeepAliveInterval, logger.Named("keepalive"))
	if err := keepAlive.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start keep-alive: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxyList()); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger, handlers.LoggerKey))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	router.SetHTMLTemplate(handlers.LoadTemplates())

	appointmentHandler := handlers.NewAppointmentHandler(vm)
	handlerBundle := handlers.NewHandlerBundle(appointmentHandler, gin.WrapH(promhttp.Handler()))
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	keepAlive.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// newSnapshotStore picks the snapshot backend. A Redis outage falls back to
// the in-memory store so the console still starts.
func newSnapshotStore(cfg config.Config, logger *zap.Logger) appointments.Store {
	if cfg.SnapshotStore != "redis" {
		return appointments.NewMemoryStore()
	}
	client, err := utils.GetSnapshotClient()
	if err != nil {
		logger.Warn("main: Redis snapshot store unavailable, using memory", zap.Error(err))
		return appointments.NewMemoryStore()
	}
	return appointments.NewRedisStore(client, appointments.DefaultSnapshotKey)
}
