package httpapi

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// proxyIPHeaders are checked in order. The league site sits behind a single
// edge proxy, so the left-most forwarded address is the player.
var proxyIPHeaders = []string{"X-Vercel-Forwarded-For", "X-Forwarded-For", "X-Real-IP"}

// clientIP is only used for request logs; it is not trusted for auth.
func clientIP(r *http.Request) string {
	for _, header := range proxyIPHeaders {
		first, _, _ := strings.Cut(r.Header.Get(header), ",")
		if ip, ok := parseIP(first); ok {
			return ip
		}
	}
	if ip, ok := parseIP(r.RemoteAddr); ok {
		return ip
	}
	return ""
}

func parseIP(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}
	addr, err := netip.ParseAddr(strings.Trim(raw, "[]"))
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}
