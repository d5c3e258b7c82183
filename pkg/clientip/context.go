package clientip

import "context"

type ipContextKey struct{}

// SetIPToContext stores the resolved client IP for downstream consumers such
// as the principal enrichment in the gate middleware.
func SetIPToContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipContextKey{}, ip)
}

// GetIPFromContext returns the IP stored by Middleware, or "" when the
// request never passed through it.
func GetIPFromContext(ctx context.Context) string {
	ip, ok := ctx.Value(ipContextKey{}).(string)
	if !ok {
		return ""
	}
	return ip
}
