package gatekit

import (
	"context"

	"github.com/google/uuid"
)

// Principal identifies the already-authenticated caller of a gated
// route. Identity resolution happens upstream; the gate only consumes
// the result. A nil *Principal represents an anonymous request.
type Principal struct {
	UserID    uuid.UUID
	SessionID string
	IP        string // client IP for anonymous rate limiting
}

// identifier returns the most specific stable rate-limit identifier
// available: user ID for signed-in principals, then session, then IP.
func (p *Principal) identifier() string {
	if p == nil {
		return ""
	}
	if p.UserID != uuid.Nil {
		return p.UserID.String()
	}
	if p.SessionID != "" {
		return p.SessionID
	}
	return p.IP
}

type principalCtxKey struct{}

// WithPrincipal stores the principal in the context for downstream access.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext retrieves the principal from the context, if present.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(*Principal)
	return p, ok && p != nil
}
