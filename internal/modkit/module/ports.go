package module

import "reflect"

// PortsOf extracts an implementation of T from a module's Ports()
// bundle. The bundle may implement T itself or carry it in an exported
// struct field. ok is false when neither holds.
func PortsOf[T any](m Module) (T, bool) {
	var zero T

	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}

	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf panics when the port is missing, naming the module so
// the wiring bug is obvious at boot.
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module: requested port not found on module " + m.Name())
	}
	return v
}
