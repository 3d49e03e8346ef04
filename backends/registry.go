package backends

import (
	"slices"
	"sync"
)

// BackendFactory creates a backend instance with optional configuration
type BackendFactory func(config any) (Backend, error)

var (
	registryMu         sync.RWMutex
	registeredBackends = make(map[string]BackendFactory)
)

// Register registers a backend factory function under name
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registeredBackends[name] = factory
}

// Create creates a backend instance with optional configuration
func Create(name string, config any) (Backend, error) {
	registryMu.RLock()
	factory, ok := registeredBackends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, NewBackendNotFoundError(name)
	}
	return factory(config)
}

// Names returns the registered backend names in sorted order
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registeredBackends))
	for name := range registeredBackends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
