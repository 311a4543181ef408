package helper

import "fmt"

// Module is a runtime module object: named slots holding helper
// implementations. It is not safe for concurrent Install; install at
// bootstrap and only call afterwards.
type Module struct {
	slots map[string]Func
}

func NewModule() *Module {
	return &Module{slots: make(map[string]Func)}
}

// Lookup returns the implementation in the named slot.
func (m *Module) Lookup(name string) (Func, bool) {
	if m == nil {
		return nil, false
	}
	fn, ok := m.slots[name]
	return fn, ok && fn != nil
}

// Call invokes the named slot with v.
func (m *Module) Call(name string, v Value) (string, error) {
	fn, ok := m.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrNotInstalled)
	}
	return fn(v)
}

// Install puts impl into the target's helper slot, or the default
// implementation when impl is nil. The last call wins; impl is not validated.
// A nil target is a no-op.
func Install(target *Module, impl Func) {
	if target == nil {
		return
	}
	if impl == nil {
		impl = CheckAndJoinStyleName
	}
	if target.slots == nil {
		target.slots = make(map[string]Func)
	}
	target.slots[Name] = impl
}

// Registry is the configuration handed to whatever needs to call the
// helper, instead of a process-wide slot.
type Registry struct {
	impl Func
}

// NewRegistry returns a registry using the default implementation.
func NewRegistry() *Registry {
	return &Registry{impl: CheckAndJoinStyleName}
}

// NewRegistryWith overrides the implementation; nil means the default.
func NewRegistryWith(fn Func) *Registry {
	if fn == nil {
		return NewRegistry()
	}
	return &Registry{impl: fn}
}

func (r *Registry) Func() Func { return r.impl }

// Join calls the configured implementation.
func (r *Registry) Join(v Value) (string, error) {
	return r.impl(v)
}

// Install installs the configured implementation into m.
func (r *Registry) Install(m *Module) {
	Install(m, r.impl)
}
