package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/scoreboard/internal/ratelimit"
	"go.uber.org/zap"
)

var errNoOperation = errors.New("missing operation in context")

// PolicyRateLimiter returns a huma middleware that enforces a rate limit policy per client.
//
// Operations may carry a ratelimit.EndpointConfig under ratelimit.MetadataKey to opt out,
// pick a scope, or replace the policy with their own limits.
func PolicyRateLimiter(
	api huma.API,
	limiter *ratelimit.PolicyLimiter,
	resolver ratelimit.ScopeResolver,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cfg := ratelimit.GetEndpointConfig(ctx)

		switch {
		case cfg != nil && cfg.Disabled:
			next(ctx)

			return
		case cfg != nil && len(cfg.Limits) > 0:
			if checkEndpointLimits(api, ctx, limiter.Store(), cfg.Limits, logger) {
				next(ctx)
			}

			return
		}

		allowed, exceeded, err := limiter.Allow(ctx.Context(), clientKey(ctx), resolver.Resolve(ctx))
		if err != nil {
			logger.Error("rate limit check failed", zap.String("path", operationPath(ctx)), zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !allowed {
			rejectPolicy(api, ctx, exceeded, logger)

			return
		}

		next(ctx)
	}
}

func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}

func rejectPolicy(api huma.API, ctx huma.Context, exceeded *ratelimit.LimitExceeded, logger *zap.Logger) {
	msg := "rate limit exceeded"

	if exceeded != nil {
		msg = fmt.Sprintf("rate limit exceeded: %s scope, %d/%d requests in %s",
			exceeded.Scope, exceeded.Count, exceeded.Config.Max, exceeded.Config.Window)

		logger.Warn("rate limit exceeded",
			zap.String("path", operationPath(ctx)),
			zap.String("method", ctx.Method()),
			zap.String("scope", string(exceeded.Scope)),
			zap.Int64("count", exceeded.Count),
			zap.Int64("max", exceeded.Config.Max),
			zap.Duration("window", exceeded.Config.Window),
			zap.String("client_ip", ClientIP(ctx)),
		)
	}

	_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, msg)
}

// checkEndpointLimits applies the operation's own limits and reports whether the request may proceed.
// Counters are keyed by route template, so every player name under /player/{name} shares one counter.
func checkEndpointLimits(
	api huma.API,
	ctx huma.Context,
	store ratelimit.Store,
	limits []ratelimit.LimitConfig,
	logger *zap.Logger,
) bool {
	op := ctx.Operation()
	if op == nil {
		logger.Error("rate limit check without operation")
		_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", errNoOperation)

		return false
	}

	client := clientKey(ctx)

	for _, limit := range limits {
		key := fmt.Sprintf("%s:%s %s:%d", client, op.Method, op.Path, limit.Window.Milliseconds())

		count, err := store.Record(ctx.Context(), key, limit.Window)
		if err != nil {
			logger.Error("endpoint rate limit check failed", zap.String("path", op.Path), zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return false
		}

		if count > limit.Max {
			logger.Warn("endpoint rate limit exceeded",
				zap.String("path", op.Path),
				zap.String("method", op.Method),
				zap.Int64("count", count),
				zap.Int64("max", limit.Max),
				zap.Duration("window", limit.Window),
				zap.String("client_ip", ClientIP(ctx)),
			)
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests,
				fmt.Sprintf("rate limit exceeded: %d/%d requests in %s", count, limit.Max, limit.Window))

			return false
		}
	}

	return true
}
