package gatekit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/gatekit/pkg/clientip"
	"github.com/dmitrymomot/gatekit/pkg/plan"
)

// Require wraps a handler with a full gate check for one feature. The
// principal is taken from the request context (see WithPrincipal);
// requests without one are still rate limited by client IP before the
// unauthenticated rejection is written.
//
// Denials are rendered as JSON with the decision code so API clients
// can branch on the reason without parsing prose.
func Require(gate *Gate, class RouteClass, feature plan.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				p = &Principal{IP: clientip.GetIP(r)}
			} else if p.IP == "" {
				// The context principal may be shared across middlewares;
				// fill in the IP on a copy instead of writing through it.
				pc := *p
				pc.IP = clientip.GetIP(r)
				p = &pc
			}

			d := gate.Authorize(r.Context(), p, class, feature)
			if d.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			writeDecision(w, d)
		})
	}
}

func writeDecision(w http.ResponseWriter, d Decision) {
	if d.Code == CodeRateLimited && !d.ResetAt.IsZero() {
		retryAfter := time.Until(d.ResetAt)
		if retryAfter < 0 {
			retryAfter = 0
		}
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
	}
	if d.Code == CodeLimitExceeded {
		w.Header().Set("X-Quota-Limit", strconv.FormatInt(d.Limit, 10))
		w.Header().Set("X-Quota-Used", strconv.FormatInt(d.CurrentUsage, 10))
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(d.HTTPStatus())
	_ = json.NewEncoder(w).Encode(d)
}
