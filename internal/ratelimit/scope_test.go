package ratelimit_test

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"mime/multipart"
	"net/url"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/scoreboard/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoMultipart = errors.New("no multipart in stub context")

// stubContext is the part of huma.Context scope resolution looks at.
type stubContext struct {
	method    string
	operation *huma.Operation
}

func (s *stubContext) Operation() *huma.Operation                 { return s.operation }
func (s *stubContext) Context() context.Context                   { return context.Background() }
func (s *stubContext) TLS() *tls.ConnectionState                  { return nil }
func (s *stubContext) Version() huma.ProtoVersion                 { return huma.ProtoVersion{} }
func (s *stubContext) Method() string                             { return s.method }
func (s *stubContext) Host() string                               { return "" }
func (s *stubContext) RemoteAddr() string                         { return "" }
func (s *stubContext) URL() url.URL                               { return url.URL{} }
func (s *stubContext) Param(_ string) string                      { return "" }
func (s *stubContext) Query(_ string) string                      { return "" }
func (s *stubContext) Header(_ string) string                     { return "" }
func (s *stubContext) EachHeader(_ func(string, string))          {}
func (s *stubContext) BodyReader() io.Reader                      { return nil }
func (s *stubContext) GetMultipartForm() (*multipart.Form, error) { return nil, errNoMultipart }
func (s *stubContext) SetReadDeadline(_ time.Time) error          { return nil }
func (s *stubContext) SetStatus(_ int)                            {}
func (s *stubContext) Status() int                                { return 0 }
func (s *stubContext) AppendHeader(_, _ string)                   {}
func (s *stubContext) SetHeader(_, _ string)                      {}
func (s *stubContext) BodyWriter() io.Writer                      { return nil }

func withConfig(method string, cfg ratelimit.EndpointConfig) *stubContext {
	return &stubContext{
		method:    method,
		operation: &huma.Operation{Metadata: map[string]any{ratelimit.MetadataKey: cfg}},
	}
}

func TestMethodScopeResolver(t *testing.T) {
	t.Parallel()

	resolver := ratelimit.NewMethodScopeResolver()
	read := []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead}
	write := []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite}

	for _, method := range []string{"GET", "HEAD", "OPTIONS"} {
		assert.Equal(t, read, resolver.Resolve(&stubContext{method: method}), method)
	}

	for _, method := range []string{"POST", "PUT", "PATCH", "DELETE"} {
		assert.Equal(t, write, resolver.Resolve(&stubContext{method: method}), method)
	}
}

func TestOperationScopeResolver(t *testing.T) {
	t.Parallel()

	resolver := ratelimit.NewOperationScopeResolver()

	t.Run("metadata scope wins over method", func(t *testing.T) {
		t.Parallel()

		ctx := withConfig("GET", ratelimit.EndpointConfig{Scope: ratelimit.ScopeWrite})

		assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite}, resolver.Resolve(ctx))
	})

	t.Run("no operation uses method", func(t *testing.T) {
		t.Parallel()

		ctx := &stubContext{method: "DELETE"}

		assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite}, resolver.Resolve(ctx))
	})

	t.Run("config without scope uses method", func(t *testing.T) {
		t.Parallel()

		ctx := withConfig("GET", ratelimit.EndpointConfig{
			Limits: []ratelimit.LimitConfig{{Window: time.Minute, Max: 5}},
		})

		assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead}, resolver.Resolve(ctx))
	})
}

func TestGetEndpointConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, ratelimit.GetEndpointConfig(&stubContext{}))
		assert.Nil(t, ratelimit.GetEndpointConfig(&stubContext{operation: &huma.Operation{}}))
	})

	t.Run("wrong type", func(t *testing.T) {
		t.Parallel()

		ctx := &stubContext{operation: &huma.Operation{Metadata: map[string]any{ratelimit.MetadataKey: 42}}}

		assert.Nil(t, ratelimit.GetEndpointConfig(ctx))
	})

	t.Run("present", func(t *testing.T) {
		t.Parallel()

		cfg := ratelimit.GetEndpointConfig(withConfig("POST", ratelimit.EndpointConfig{Disabled: true}))

		require.NotNil(t, cfg)
		assert.True(t, cfg.Disabled)
	})
}
