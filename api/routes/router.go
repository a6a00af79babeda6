package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/windowquote-backend/api/controllers"
	authcontrollers "github.com/angelmondragon/windowquote-backend/api/controllers/auth"
	catalogcontrollers "github.com/angelmondragon/windowquote-backend/api/controllers/catalog"
	configuratorcontrollers "github.com/angelmondragon/windowquote-backend/api/controllers/configurator"
	customercontrollers "github.com/angelmondragon/windowquote-backend/api/controllers/customers"
	quotecontrollers "github.com/angelmondragon/windowquote-backend/api/controllers/quotes"
	referencecontrollers "github.com/angelmondragon/windowquote-backend/api/controllers/reference"
	windowcontrollers "github.com/angelmondragon/windowquote-backend/api/controllers/windows"
	"github.com/angelmondragon/windowquote-backend/api/middleware"
	"github.com/angelmondragon/windowquote-backend/internal/auth"
	"github.com/angelmondragon/windowquote-backend/internal/configurator"
	"github.com/angelmondragon/windowquote-backend/internal/customers"
	"github.com/angelmondragon/windowquote-backend/internal/quotes"
	"github.com/angelmondragon/windowquote-backend/internal/reference"
	"github.com/angelmondragon/windowquote-backend/internal/windows"
	"github.com/angelmondragon/windowquote-backend/pkg/auth/session"
	"github.com/angelmondragon/windowquote-backend/pkg/config"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
	"github.com/angelmondragon/windowquote-backend/pkg/metrics"
	"github.com/angelmondragon/windowquote-backend/pkg/redis"
)

type pinger interface {
	Ping(context.Context) error
}

// Services bundles the domain services mounted on the router.
type Services struct {
	Auth         auth.Service
	Reference    reference.Service
	Customers    customers.Service
	Windows      windows.Service
	Configurator configurator.Service
	Quotes       quotes.Service
}

// Infra bundles the backing clients the router needs for middleware and health checks.
type Infra struct {
	DB       pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Tokens   middleware.TokenVerifier
	Gatherer prometheus.Gatherer
	HTTP     *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, infra Infra, svc Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(logg),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
		middleware.Logging(logg),
		middleware.Metrics(infra.HTTP),
	)

	loginPolicy := middleware.AuthRateLimitPolicy{
		Name:          "login",
		Window:        cfg.AuthRateLimit.LoginWindow,
		IPLimit:       cfg.AuthRateLimit.LoginIPLimit,
		UsernameLimit: cfg.AuthRateLimit.LoginUsernameLimit,
	}
	refreshPolicy := middleware.AuthRateLimitPolicy{
		Name:    "refresh",
		Window:  cfg.AuthRateLimit.RefreshWindow,
		IPLimit: cfg.AuthRateLimit.RefreshIPLimit,
	}

	checks := map[string]controllers.ReadinessCheck{}
	if infra.DB != nil {
		checks["postgres"] = infra.DB.Ping
	}
	if infra.Redis != nil {
		checks["redis"] = infra.Redis.Ping
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, checks, logg))
	})

	if infra.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(infra.Gatherer, promhttp.HandlerOpts{}))
	}

	rateStore := rateLimitStore(infra.Redis)
	idempotencyStore := idempotencyBackend(infra.Redis)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", authcontrollers.AuthLogin(svc.Auth, logg))
		r.With(middleware.AuthRateLimit(refreshPolicy, rateStore, logg)).Post("/refresh", authcontrollers.AuthRefresh(svc.Auth, logg))
		r.Post("/logout", authcontrollers.AuthLogout(svc.Auth, logg))
		r.With(middleware.Auth(infra.Tokens, infra.Sessions, logg)).Get("/me", authcontrollers.AuthMe(logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(infra.Tokens, infra.Sessions, logg))

		r.Get("/catalog", catalogcontrollers.Get(svc.Reference, logg))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", customercontrollers.List(svc.Customers, logg))
			r.With(middleware.Idempotency(idempotencyStore, middleware.CustomerCreateTTL, logg)).
				Post("/", customercontrollers.Create(svc.Customers, logg))

			r.Route("/{customerID}", func(r chi.Router) {
				r.Get("/", customercontrollers.Detail(svc.Customers, logg))
				r.Patch("/", customercontrollers.UpdateTerms(svc.Customers, logg))
				r.Delete("/", customercontrollers.Delete(svc.Customers, logg))
				r.Put("/disclaimers", customercontrollers.ReplaceDisclaimers(svc.Customers, logg))

				r.Get("/windows", windowcontrollers.List(svc.Windows, logg))
				r.Post("/windows/reorder", windowcontrollers.Reorder(svc.Windows, logg))

				r.Route("/configurator", func(r chi.Router) {
					r.Get("/", configuratorcontrollers.State(svc.Configurator, logg))
					r.Delete("/", configuratorcontrollers.Discard(svc.Configurator, logg))
					r.Post("/start", configuratorcontrollers.Start(svc.Configurator, logg))
					r.Post("/actions", configuratorcontrollers.Apply(svc.Configurator, logg))
					r.With(middleware.Idempotency(idempotencyStore, middleware.CartSaveTTL, logg)).
						Post("/save", configuratorcontrollers.Save(svc.Configurator, logg))
				})

				r.Get("/estimate", quotecontrollers.Estimate(svc.Quotes, logg))
				r.Get("/contract", quotecontrollers.Contract(svc.Quotes, logg))
			})
		})

		r.Route("/windows/{windowID}", func(r chi.Router) {
			r.Patch("/", windowcontrollers.Update(svc.Windows, logg))
			r.Delete("/", windowcontrollers.Delete(svc.Windows, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(infra.Tokens, infra.Sessions, logg))
		r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
		r.Route("/reference/{kind}", func(r chi.Router) {
			r.Get("/", referencecontrollers.List(svc.Reference, logg))
			r.Post("/", referencecontrollers.Create(svc.Reference, logg))
			r.Patch("/{id}", referencecontrollers.Update(svc.Reference, logg))
			r.Delete("/{id}", referencecontrollers.Delete(svc.Reference, logg))
		})
	})

	return r
}

// rateLimitStore keeps a nil client from reaching the middleware as a non-nil interface.
func rateLimitStore(client *redis.Client) middleware.RateLimitStore {
	if client == nil {
		return nil
	}
	return client
}

func idempotencyBackend(client *redis.Client) middleware.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}
