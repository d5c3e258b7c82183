package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders are checked in order. CDN-set headers come first because they
// are written by infrastructure we control; X-Forwarded-For and X-Real-IP are
// client-forgeable and only trusted as a fallback.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP extracts the client IP from the request. The result feeds rate limit
// keys for anonymous traffic, so it prefers proxy headers over RemoteAddr and
// discards anything that does not parse as an IP.
func GetIP(r *http.Request) string {
	for _, h := range proxyHeaders {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		// X-Forwarded-For may carry a proxy chain; the client is leftmost.
		for part := range strings.SplitSeq(v, ",") {
			if ip := parseIP(strings.TrimSpace(part)); ip != "" {
				return ip
			}
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		if ip := parseIP(host); ip != "" {
			return ip
		}
	}
	return parseIP(r.RemoteAddr)
}

// parseIP validates and normalizes an IP string. Returns "" when the input is
// not an IP, so spoofed garbage in a header falls through to the next source.
func parseIP(s string) string {
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
