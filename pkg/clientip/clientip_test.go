package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/pkg/clientip"
)

func newRequest(remoteAddr string, headers map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = remoteAddr
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr fallback",
			remoteAddr: "203.0.113.9:4567",
			want:       "203.0.113.9",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "203.0.113.9",
			want:       "203.0.113.9",
		},
		{
			name:       "cloudflare header wins",
			remoteAddr: "10.0.0.1:80",
			headers: map[string]string{
				"CF-Connecting-IP": "198.51.100.7",
				"X-Forwarded-For":  "192.0.2.44",
			},
			want: "198.51.100.7",
		},
		{
			name:       "digitalocean header before forwarded",
			remoteAddr: "10.0.0.1:80",
			headers: map[string]string{
				"DO-Connecting-IP": "198.51.100.8",
				"X-Forwarded-For":  "192.0.2.44",
			},
			want: "198.51.100.8",
		},
		{
			name:       "forwarded list takes first valid entry",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "invalid, 192.0.2.44, 10.0.0.2"},
			want:       "192.0.2.44",
		},
		{
			name:       "real ip header",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "192.0.2.99"},
			want:       "192.0.2.99",
		},
		{
			name:       "spoofed garbage header falls through",
			remoteAddr: "203.0.113.9:4567",
			headers:    map[string]string{"CF-Connecting-IP": "not-an-ip; DROP TABLE"},
			want:       "203.0.113.9",
		},
		{
			name:       "ipv6 is normalized",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "2001:0db8:0000:0000:0000:0000:0000:0001"},
			want:       "2001:db8::1",
		},
		{
			name:       "ipv6 remote addr with port",
			remoteAddr: "[2001:db8::2]:443",
			want:       "2001:db8::2",
		},
		{
			name:       "nothing valid anywhere",
			remoteAddr: "garbage",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, clientip.GetIP(newRequest(tt.remoteAddr, tt.headers)))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	handler := clientip.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.GetIPFromContext(r.Context())
	}))

	req := newRequest("10.0.0.1:80", map[string]string{"X-Forwarded-For": "192.0.2.44"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "192.0.2.44", got)
}

func TestGetIPFromContext_Empty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, clientip.GetIPFromContext(req.Context()))
}
