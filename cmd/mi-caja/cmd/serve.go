package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/donaldgifford/mi-caja/internal/api/handlers"
	mw "github.com/donaldgifford/mi-caja/internal/api/middleware"
	"github.com/donaldgifford/mi-caja/internal/auth"
	"github.com/donaldgifford/mi-caja/internal/config"
	"github.com/donaldgifford/mi-caja/internal/engine"
	"github.com/donaldgifford/mi-caja/internal/notify"
	"github.com/donaldgifford/mi-caja/internal/session"
	"github.com/donaldgifford/mi-caja/pkg/logger"
	"github.com/donaldgifford/mi-caja/pkg/tracing"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and session reaper",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracingConfig(&cfg.Tracing))
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("flushing traces", "error", err)
		}
	}()

	db, err := openStore(ctx, &cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	gwOpts := []engine.GatewayOption{engine.WithGatewayLogger(log)}
	alertCache, err := openCache(ctx, &cfg.Cache, log)
	if err != nil {
		return err
	}
	if alertCache != nil {
		defer func() {
			if err := alertCache.Close(); err != nil {
				log.Warn("closing alert cache", "error", err)
			}
		}()
		gwOpts = append(gwOpts, engine.WithCache(alertCache, cfg.Cache.Prefix, cfg.Cache.TTL))
	}

	gateway := engine.NewGateway(db, gwOpts...)
	service := engine.NewService(gateway, engine.WithServiceLogger(log))
	chime := notify.NewChime(db, newNotifier(&cfg.Notifications.Discord, log), log)

	timings := engine.Timings{
		InitialDelay: cfg.Alerts.InitialDelay,
		Interval:     cfg.Alerts.CheckInterval,
		Debounce:     cfg.Alerts.Debounce,
		CheckTimeout: cfg.Alerts.CheckTimeout,
	}
	sessions := session.NewManager(func(sessionID, userID string) *engine.Coordinator {
		return engine.NewCoordinator(userID, db, service, gateway,
			engine.WithSessionID(sessionID),
			engine.WithCoordinatorLogger(log.With("session_id", sessionID)),
			engine.WithSoundPlayer(chime),
			engine.WithTimings(timings),
		)
	}, cfg.Alerts.SessionTTL, session.WithLogger(log))
	defer sessions.CloseAll()

	reaper, err := session.NewScheduler(sessions, cfg.Alerts.ReapInterval, log)
	if err != nil {
		return fmt.Errorf("creating session scheduler: %w", err)
	}
	reaper.Start()
	defer func() { <-reaper.Stop().Done() }()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	if cfg.Tracing.Enabled {
		e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware("mi-caja")))
	}
	e.Use(mw.Recovery(log))
	e.Use(mw.RequestLog(log))
	e.Use(mw.Metrics())
	if len(cfg.Server.AllowedOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: cfg.Server.AllowedOrigins,
			AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
		}))
	}

	health := handlers.NewHealthHandler(db)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, apiConfig())
	api.UseMiddleware(auth.Middleware(api, auth.NewVerifier(cfg.Auth.JWTSecret, auth.WithIssuer(cfg.Auth.Issuer))))

	handlers.RegisterSessionRoutes(api, handlers.NewSessionsHandler(sessions))
	handlers.RegisterAlertRoutes(api, handlers.NewAlertsHandler(gateway, db, log))
	handlers.RegisterStockRoutes(api, handlers.NewStockHandler(db, sessions, log))
	handlers.RegisterPreferenceRoutes(api, handlers.NewPreferencesHandler(db, log))

	addr := cfg.Server.Addr()
	log.Info("starting server", "addr", addr, "version", Version)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func apiConfig() huma.Config {
	c := huma.DefaultConfig("Mi Caja Stock Alerts API", Version)
	c.Info.Description = "Per-tab stock-alert sessions, alert snoozing and inventory intake."
	c.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
	c.Security = []map[string][]string{{"bearer": {}}}
	return c
}

func tracingConfig(c *config.TracingConfig) tracing.Config {
	return tracing.Config{
		Enabled:     c.Enabled,
		Endpoint:    c.Endpoint,
		Insecure:    c.Insecure,
		SampleRatio: c.SampleRatio,
		ServiceName: "mi-caja",
		Version:     Version,
	}
}

// oneShotContext bounds commands that talk to the store once and exit.
func oneShotContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 60*time.Second)
}
