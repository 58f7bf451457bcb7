package registry

import "sort"

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the registered handlers for a single application instance.
type Registry struct {
	HandlerRegistry map[string]*RegisteredHandler
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		HandlerRegistry: make(map[string]*RegisteredHandler),
	}
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (*RegisteredHandler, bool) {
	h, ok := r.HandlerRegistry[name]
	return h, ok
}

// Names returns the registered handler names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.HandlerRegistry))
	for name := range r.HandlerRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
