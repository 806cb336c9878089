package ratelimit

import (
	"strings"
)

// unlimited lists operational endpoints that are never rate limited.
var unlimited = map[string]bool{
	"GET /health":  true,
	"GET /metrics": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/recommendations/" matches
// "/recommendations/candidates/{id}"); exact matches win over prefixes.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Longest prefix wins.
	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method || !strings.HasSuffix(config.Path, "/") || !strings.HasPrefix(path, config.Path) {
			continue
		}
		if best == nil || len(config.Path) > len(best.Path) {
			best = config
		}
	}
	return best
}
