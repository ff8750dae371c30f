package handlers

import "context"

type requestMetaKey struct{}

// RequestMeta describes the caller of a request. It is attached to score events.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
}

func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext returns the metadata stored by ContextWithRequestMeta, or the zero value.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)

	return meta
}
