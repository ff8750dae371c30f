package ratelimit

import "github.com/danielgtaylor/huma/v2"

// Scope groups requests that share rate limits.
type Scope string

const (
	// ScopeGlobal applies to every request.
	ScopeGlobal Scope = "global"
	// ScopeRead applies to leaderboard queries.
	ScopeRead Scope = "read"
	// ScopeWrite applies to score submissions and resets.
	ScopeWrite Scope = "write"
)

// MetadataKey is the huma operation metadata key holding an EndpointConfig.
const MetadataKey = "rateLimit"

// EndpointConfig overrides rate limiting for one operation.
//
// Disabled skips limiting. Non-empty Limits replace the policy for the operation.
// Otherwise Scope, when set, replaces method-based scope detection.
type EndpointConfig struct {
	Scope    Scope
	Limits   []LimitConfig
	Disabled bool
}

// ScopeResolver picks the scopes that apply to a request.
type ScopeResolver interface {
	Resolve(ctx huma.Context) []Scope
}

// MethodScopeResolver treats GET, HEAD and OPTIONS as reads and everything else as writes.
type MethodScopeResolver struct{}

// NewMethodScopeResolver creates a method-based resolver.
func NewMethodScopeResolver() *MethodScopeResolver {
	return &MethodScopeResolver{}
}

func (r *MethodScopeResolver) Resolve(ctx huma.Context) []Scope {
	switch ctx.Method() {
	case "GET", "HEAD", "OPTIONS":
		return []Scope{ScopeGlobal, ScopeRead}
	default:
		return []Scope{ScopeGlobal, ScopeWrite}
	}
}

// OperationScopeResolver prefers the scope set in operation metadata and falls back
// to the request method.
type OperationScopeResolver struct {
	fallback *MethodScopeResolver
}

// NewOperationScopeResolver creates an operation-aware resolver.
func NewOperationScopeResolver() *OperationScopeResolver {
	return &OperationScopeResolver{fallback: NewMethodScopeResolver()}
}

func (r *OperationScopeResolver) Resolve(ctx huma.Context) []Scope {
	if cfg := GetEndpointConfig(ctx); cfg != nil && cfg.Scope != "" {
		return []Scope{ScopeGlobal, cfg.Scope}
	}

	return r.fallback.Resolve(ctx)
}

// GetEndpointConfig returns the operation's EndpointConfig, or nil when there is none.
func GetEndpointConfig(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}
