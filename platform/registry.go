package platform

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Factory creates a driver. Drivers register themselves from init.
type Factory func() Driver

var (
	registryMu sync.Mutex
	registry   = map[string]Factory{}
)

// Register makes a driver available by name. Panics on duplicates.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		panic("platform: duplicate driver " + name)
	}
	registry[name] = f
}

// New returns a fresh instance of the named driver.
func New(name string) (Driver, error) {
	registryMu.Lock()
	f, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownDriver, name, Drivers())
	}
	return f(), nil
}

// Drivers lists the registered driver names, sorted.
func Drivers() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	return slices.Sorted(maps.Keys(registry))
}
