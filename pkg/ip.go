package pkg

import (
	"net"
	"net/http"
	"strings"
)

// ReadCallerIP extracts the client address of a request, preferring the
// proxy headers set by the ingress over the raw socket address. Returns
// an empty string when nothing usable is found.
func ReadCallerIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return strings.TrimSpace(ip)
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// first hop is the original client
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
