// Package clientip resolves the originating client address of an
// *http.Request behind one or more reverse proxies. The gate uses it as
// the rate limit identifier of last resort for anonymous traffic.
//
// Headers are examined in descending priority until the first valid
// address is found:
//
//  1. CF-Connecting-IP — Cloudflare
//  2. DO-Connecting-IP — DigitalOcean App Platform
//  3. X-Forwarded-For — comma-separated list, first valid entry wins
//  4. X-Real-IP — reverse proxies such as Nginx
//  5. RemoteAddr — TCP peer address as a fallback
//
// GetIP never returns an error; an empty string means no valid address
// was found. Middleware resolves the address once per request and
// stores it in the context for downstream handlers.
package clientip
