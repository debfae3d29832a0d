// Package requestmeta provides normalized request metadata helpers.
package requestmeta

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// HasSameOriginProof reports whether Origin or Referer proves the request
// came from this site. Mutating form handlers require this proof so a
// cross-site form post cannot ride an editor's session cookie.
func HasSameOriginProof(r *http.Request) bool {
	if r == nil {
		return false
	}
	scheme, host, port := requestOriginParts(r)
	if host == "" {
		return false
	}
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		return sameOrigin(origin, scheme, host, port)
	}
	if referer := strings.TrimSpace(r.Header.Get("Referer")); referer != "" {
		return sameOrigin(referer, scheme, host, port)
	}
	return false
}

func sameOrigin(raw string, scheme string, host string, port string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	otherScheme := strings.ToLower(parsed.Scheme)
	if otherScheme == "" || otherScheme != scheme {
		return false
	}
	otherHost := strings.ToLower(parsed.Hostname())
	if otherHost == "" || otherHost != host {
		return false
	}
	otherPort := parsed.Port()
	if otherPort == "" {
		otherPort = defaultPort(otherScheme)
	}
	return otherPort == port
}

func requestOriginParts(r *http.Request) (scheme string, host string, port string) {
	scheme = "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host = strings.ToLower(r.Host)
	if h, p, err := net.SplitHostPort(r.Host); err == nil {
		host = strings.ToLower(h)
		port = p
	}
	if port == "" {
		port = defaultPort(scheme)
	}
	return scheme, host, port
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	default:
		return ""
	}
}
