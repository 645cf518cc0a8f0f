// Package endpoint derives the content API base URL from explicit
// configuration or host-environment heuristics. Resolution is pure string
// logic: no network calls, and a value is always returned.
package endpoint

import (
	"net/url"
	"strings"
)

const (
	// LocalURL is the fixed development backend used when the host page is
	// served from localhost.
	LocalURL = "http://localhost:3001/api"
	// ProductionURL is the fallback when no origin is available at all.
	ProductionURL = "https://api.quillfeed.com/api"
)

// platformPaths maps hosting-platform host suffixes to the conventional API
// sub-path mounted alongside the site on that platform.
var platformPaths = []struct {
	suffix string
	path   string
}{
	{".vercel.app", "/api"},
	{".netlify.app", "/.netlify/functions/api"},
	{".fly.dev", "/api"},
	{".railway.app", "/api"},
	{".herokuapp.com", "/api"},
}

// Resolve normalizes the backend base URL. Order, first match wins: explicit
// URL, known hosting platform, custom domain, localhost, production fallback.
// The result never carries a trailing slash.
func Resolve(explicitURL, origin string) string {
	if trimmed := strings.TrimSpace(explicitURL); trimmed != "" {
		return strings.TrimSuffix(trimmed, "/")
	}

	origin = strings.TrimSuffix(strings.TrimSpace(origin), "/")
	if origin == "" {
		return ProductionURL
	}

	host := originHost(origin)
	for _, platform := range platformPaths {
		if strings.HasSuffix(host, platform.suffix) {
			return origin + platform.path
		}
	}
	if host == "localhost" || strings.HasPrefix(host, "localhost:") {
		return LocalURL
	}
	if strings.Contains(host, ".") {
		return origin + "/api"
	}
	return ProductionURL
}

func originHost(origin string) string {
	parsed, err := url.Parse(origin)
	if err == nil && parsed.Host != "" {
		return strings.ToLower(parsed.Host)
	}
	// Origins without a scheme still resolve by their host portion.
	rest := origin
	if idx := strings.Index(rest, "://"); idx >= 0 {
		rest = rest[idx+3:]
	}
	if idx := strings.IndexAny(rest, "/?#"); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.ToLower(rest)
}
