package llm

import (
	"fmt"
	"sort"
)

// ProviderFactory builds a configured Provider from process environment.
type ProviderFactory func() (Provider, error)

var registry = make(map[string]ProviderFactory)

// Register makes a provider constructible by name. Provider packages call
// this from init, so importing one is enough to make it available.
func Register(name string, factory ProviderFactory) {
	registry[name] = factory
}

// Registered lists the known provider names, sorted.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewProvider builds the named provider. The factory decides whether missing
// credentials are an error or a degraded no-provider start.
func NewProvider(name string) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q, registered providers: %v", name, Registered())
	}
	return factory()
}
