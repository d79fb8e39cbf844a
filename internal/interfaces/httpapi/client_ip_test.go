package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "vercel header wins",
			headers: map[string]string{"X-Vercel-Forwarded-For": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"},
			remote:  "10.0.0.1:4312",
			want:    "203.0.113.7",
		},
		{
			name:    "left-most forwarded address",
			headers: map[string]string{"X-Forwarded-For": " 198.51.100.9 , 10.0.0.2"},
			remote:  "10.0.0.1:4312",
			want:    "198.51.100.9",
		},
		{
			name:    "garbage header falls through to remote addr",
			headers: map[string]string{"X-Forwarded-For": "unknown"},
			remote:  "192.0.2.4:51000",
			want:    "192.0.2.4",
		},
		{
			name:   "ipv6 remote with port",
			remote: "[2001:db8::1]:443",
			want:   "2001:db8::1",
		},
		{
			name:   "unparseable remote",
			remote: "pipe",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/week", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := clientIP(r); got != tt.want {
				t.Fatalf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
