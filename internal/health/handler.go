package health

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/scoreboard/internal/ratelimit"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"

	Healthy   = "healthy"
	Unhealthy = "unhealthy"
)

const pingTimeout = 2 * time.Second

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker pings a Redis server.
type RedisChecker struct {
	client redis.UniversalClient
}

// NewRedisChecker creates a checker for client.
func NewRedisChecker(client redis.UniversalClient) *RedisChecker {
	return &RedisChecker{client: client}
}

func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler serves the health endpoint.
type Handler struct {
	storage Checker
	events  Checker
}

// NewHandler creates a handler probing the snapshot storage. events may be nil when
// score events are not sent to an external broker.
func NewHandler(storage, events Checker) *Handler {
	return &Handler{storage: storage, events: events}
}

// Response is the health report. Any unhealthy dependency makes the service degraded,
// but the endpoint itself still answers 200.
type Response struct {
	Body struct {
		Status  string `doc:"ok or degraded"                json:"status"`
		Storage string `doc:"Snapshot storage reachability" json:"storage"`
		Events  string `doc:"Event broker reachability"     json:"events,omitempty"`
	}
}

func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = StatusOK
	resp.Body.Storage = probe(ctx, h.storage)

	if h.events != nil {
		resp.Body.Events = probe(ctx, h.events)
	}

	if resp.Body.Storage == Unhealthy || resp.Body.Events == Unhealthy {
		resp.Body.Status = StatusDegraded
	}

	return resp, nil
}

func probe(ctx context.Context, c Checker) string {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		return Unhealthy
	}

	return Healthy
}

// RegisterRoutes mounts GET /health. It is exempt from rate limiting so probes never see 429.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service health",
		Tags:        []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, h.Check)
}
