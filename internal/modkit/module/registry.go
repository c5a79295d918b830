package module

import "sync"

// Process-global port registry, filled once during bootstrap in main.
// The lock only matters for tests that exercise it concurrently.
var (
	regMu sync.RWMutex
	reg   = map[string]any{}
)

// Register stores the port bundle published under a module name. A
// later Register for the same name replaces the earlier bundle.
func Register(name string, ports any) {
	regMu.Lock()
	defer regMu.Unlock()
	reg[name] = ports
}

// PortsAs looks up name and asserts the bundle to T.
func PortsAs[T any](name string) (T, bool) {
	regMu.RLock()
	v, found := reg[name]
	regMu.RUnlock()

	var zero T
	if !found {
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset empties the registry between tests.
func Reset() {
	regMu.Lock()
	defer regMu.Unlock()
	reg = map[string]any{}
}
