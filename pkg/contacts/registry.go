package contacts

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory creates a Source from a backend specific configuration.
// The factory must type-assert config to its expected type.
type Factory func(config interface{}) (Source, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// Register makes a source backend available under name, case-insensitive.
// Typically called from a backend's init(). Registering an existing name
// overwrites it.
func Register(name string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[strings.ToLower(name)] = factory
}

// Open creates a source with the backend registered under name.
func Open(name string, config interface{}) (Source, error) {
	factoriesMu.RLock()
	factory, ok := factories[strings.ToLower(name)]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, name)
	}
	return factory(config)
}

// Registered lists the registered backend names in order.
func Registered() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

//nolint:gochecknoinits // the built-in backends register like any other
func init() {
	Register("memory", NewMemoryFactory)
	Register("file", NewFileFactory)
}
