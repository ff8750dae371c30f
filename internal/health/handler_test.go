package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/scoreboard/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnreachable = errors.New("connection refused")

type stubChecker struct {
	err error
}

func (s stubChecker) Ping(_ context.Context) error {
	return s.err
}

func TestHandler_Check(t *testing.T) {
	t.Parallel()

	t.Run("healthy storage", func(t *testing.T) {
		t.Parallel()

		resp, err := health.NewHandler(stubChecker{}, nil).Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, health.StatusOK, resp.Body.Status)
		assert.Equal(t, health.Healthy, resp.Body.Storage)
		assert.Empty(t, resp.Body.Events)
	})

	t.Run("unreachable storage", func(t *testing.T) {
		t.Parallel()

		resp, err := health.NewHandler(stubChecker{err: errUnreachable}, nil).Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, health.StatusDegraded, resp.Body.Status)
		assert.Equal(t, health.Unhealthy, resp.Body.Storage)
	})

	t.Run("unreachable events broker", func(t *testing.T) {
		t.Parallel()

		resp, err := health.NewHandler(stubChecker{}, stubChecker{err: errUnreachable}).Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, health.StatusDegraded, resp.Body.Status)
		assert.Equal(t, health.Healthy, resp.Body.Storage)
		assert.Equal(t, health.Unhealthy, resp.Body.Events)
	})
}

func TestRedisChecker(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	checker := health.NewRedisChecker(client)
	require.NoError(t, checker.Ping(context.Background()))

	mr.Close()
	require.Error(t, checker.Ping(context.Background()))
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	health.RegisterRoutes(api, health.NewHandler(stubChecker{}, nil))

	resp := api.Get("/health")

	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "healthy", body["storage"])
	assert.NotContains(t, body, "events")
}
