package resource

import "sync"

// entry is the interned payload behind an ID. Its address is the identity.
type entry struct {
	name string
}

// registry interns category names so Key returns equal IDs for equal names.
var registry sync.Map // name -> *entry

// ID is an opaque, process-wide key for a resource category. IDs are
// immutable and compared with ==. The zero ID is invalid.
type ID struct {
	e *entry
}

// Key returns the ID for the named category, creating it on first reference.
// It panics on an empty name, which is always a programming error.
func Key(name string) ID {
	if name == "" {
		panic("resource: category name must not be empty")
	}
	if e, ok := registry.Load(name); ok {
		return ID{e: e.(*entry)}
	}
	e, _ := registry.LoadOrStore(name, &entry{name: name})
	return ID{e: e.(*entry)}
}

// Name returns the category name, or "" for the zero ID.
func (id ID) Name() string {
	if id.e == nil {
		return ""
	}
	return id.e.name
}

// Valid reports whether the ID was obtained from Key.
func (id ID) Valid() bool {
	return id.e != nil
}

func (id ID) String() string {
	if id.e == nil {
		return "<invalid>"
	}
	return id.e.name
}
