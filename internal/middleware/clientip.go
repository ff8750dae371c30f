package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// ClientIP returns the originating client address, honoring X-Forwarded-For and X-Real-IP
// set by a reverse proxy.
func ClientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := strings.TrimSpace(ctx.Header("X-Real-IP")); xri != "" {
		return xri
	}

	addr := ctx.RemoteAddr()

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return host
}

// clientKey identifies a client by IP and User-Agent without storing either in clear.
func clientKey(ctx huma.Context) string {
	sum := sha256.Sum256([]byte(ClientIP(ctx) + "|" + ctx.Header("User-Agent")))

	return hex.EncodeToString(sum[:])
}
