package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/angelmondragon/windowquote-backend/api/routes"
	"github.com/angelmondragon/windowquote-backend/internal/auth"
	"github.com/angelmondragon/windowquote-backend/internal/configurator"
	"github.com/angelmondragon/windowquote-backend/internal/customers"
	"github.com/angelmondragon/windowquote-backend/internal/quotes"
	"github.com/angelmondragon/windowquote-backend/internal/reference"
	"github.com/angelmondragon/windowquote-backend/internal/representatives"
	"github.com/angelmondragon/windowquote-backend/internal/windows"
	pkgauth "github.com/angelmondragon/windowquote-backend/pkg/auth"
	"github.com/angelmondragon/windowquote-backend/pkg/auth/session"
	"github.com/angelmondragon/windowquote-backend/pkg/config"
	"github.com/angelmondragon/windowquote-backend/pkg/db"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
	"github.com/angelmondragon/windowquote-backend/pkg/metrics"
	"github.com/angelmondragon/windowquote-backend/pkg/migrate"
	"github.com/angelmondragon/windowquote-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = db.DriverSQLite
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
		Fields:      map[string]string{"env": cfg.App.Env},
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	signer, err := pkgauth.NewSigner(cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "invalid jwt configuration", err)
		os.Exit(1)
	}

	sqlDB, err := dbClient.SQL()
	if err != nil {
		logg.Error(context.Background(), "failed to read database pool", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, "windowquote"),
		redisClient.Collector(),
	)

	services, err := buildServices(cfg, logg, dbClient, redisClient, sessionManager, signer, metrics.NewQuoteMetrics(registry))
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithField(context.Background(), "addr", addr)
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Infra{
			DB:       dbClient,
			Redis:    redisClient,
			Sessions: sessionManager,
			Tokens:   signer,
			Gatherer: registry,
			HTTP:     metrics.NewHTTPMetrics(registry),
		}, services),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func buildServices(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	sessionManager *session.Manager,
	signer *pkgauth.Signer,
	quoteMetrics *metrics.QuoteMetrics,
) (routes.Services, error) {
	var svc routes.Services
	conn := dbClient.DB()

	authService, err := auth.NewService(auth.ServiceParams{
		RepresentativeRepo: representatives.NewRepository(conn),
		SessionManager:     sessionManager,
		Tokens:             signer,
		PasswordConfig:     cfg.Password,
		Logger:             logg,
	})
	if err != nil {
		return svc, err
	}

	referenceRepo := reference.NewRepository(conn)
	referenceService, err := reference.NewService(reference.ServiceParams{
		Repo:     referenceRepo,
		Cache:    redisClient,
		CacheTTL: cfg.Wizard.CatalogCacheTTL,
		Logger:   logg,
	})
	if err != nil {
		return svc, err
	}

	customerService, err := customers.NewService(customers.ServiceParams{
		Repo:        customers.NewRepository(conn),
		Disclaimers: referenceRepo,
		Tx:          dbClient,
	})
	if err != nil {
		return svc, err
	}

	windowService, err := windows.NewService(windows.NewRepository(conn), customerService)
	if err != nil {
		return svc, err
	}

	configuratorService, err := configurator.NewService(configurator.ServiceParams{
		Store:      redisClient,
		Catalog:    referenceService,
		Customers:  customerService,
		Windows:    windowService,
		SessionTTL: cfg.Wizard.SessionTTL,
		Metrics:    quoteMetrics,
		Logger:     logg,
	})
	if err != nil {
		return svc, err
	}

	quoteService, err := quotes.NewService(customerService)
	if err != nil {
		return svc, err
	}

	return routes.Services{
		Auth:         authService,
		Reference:    referenceService,
		Customers:    customerService,
		Windows:      windowService,
		Configurator: configuratorService,
		Quotes:       quoteService,
	}, nil
}
