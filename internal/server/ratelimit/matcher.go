package ratelimit

import (
	"strings"
)

// unlimitedEndpoints are never rate limited.
var unlimitedEndpoints = map[string]bool{
	"GET /":       true,
	"GET /health": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Configured paths ending with "/" match by prefix.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimitedEndpoints[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
