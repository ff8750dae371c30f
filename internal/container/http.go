package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/samber/do"
	"github.com/serroba/scoreboard/internal/handlers"
	"github.com/serroba/scoreboard/internal/health"
	"github.com/serroba/scoreboard/internal/leaderboard"
	"github.com/serroba/scoreboard/internal/live"
	"github.com/serroba/scoreboard/internal/middleware"
	"github.com/serroba/scoreboard/internal/ratelimit"
	"go.uber.org/zap"
)

// HTTPPackage provides the router and the huma API with every route registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		router := chi.NewMux()
		router.Use(chimiddleware.Recoverer)

		return router, nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		api := humachi.New(router, huma.DefaultConfig("Scoreboard", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))

		if opts.RateLimit {
			api.UseMiddleware(middleware.PolicyRateLimiter(
				api,
				do.MustInvoke[*ratelimit.PolicyLimiter](i),
				ratelimit.NewOperationScopeResolver(),
				logger,
			))
		}

		scores := handlers.NewScoreHandler(
			do.MustInvoke[*leaderboard.Service](i),
			do.MustInvoke[handlers.EventPublisher](i),
			logger,
		)
		handlers.RegisterRoutes(api, scores)

		health.RegisterRoutes(api, health.NewHandler(
			do.MustInvoke[Snapshots](i),
			do.MustInvoke[*eventsChecker](i).Checker,
		))

		router.Handle(live.Path, live.Handler(do.MustInvoke[*live.Hub](i), logger.Named("live")))
		router.NotFound(handlers.NotFound(api))

		return api, nil
	})
}
