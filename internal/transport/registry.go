package transport

import (
	"fmt"
	"net/url"
)

// Constructor builds a Dialer for the given endpoint URL.
type Constructor func(endpoint *url.URL) Dialer

var registry = map[string]Constructor{}

// Register adds a dialer constructor under the given URL scheme.
func Register(scheme string, ctor Constructor) {
	registry[scheme] = ctor
}

// Resolve parses the endpoint and returns a Dialer for its scheme.
func Resolve(endpoint string) (Dialer, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("transport: empty endpoint")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("transport: invalid endpoint %q: %w", endpoint, err)
	}
	ctor, ok := registry[u.Scheme]
	if !ok {
		return nil, fmt.Errorf("transport: unknown scheme %q (registered: %v)", u.Scheme, Schemes())
	}
	return ctor(u), nil
}

// Schemes returns all registered URL schemes.
func Schemes() []string {
	schemes := make([]string, 0, len(registry))
	for s := range registry {
		schemes = append(schemes, s)
	}
	return schemes
}
