package ratelimit

import (
	"strings"
)

// MatchEndpoint resolves the endpoint configuration for a request. Exact
// path+method matches win; configs whose path ends in "/" act as prefixes,
// so "/bookings/" covers "/bookings/{id}/status". The health check is never
// limited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{} // zero Limit means unlimited
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
