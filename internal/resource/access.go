package resource

import "sort"

// Set is an unordered collection of resource IDs.
type Set map[ID]struct{}

// NewSet builds a Set from ids, ignoring duplicates and invalid IDs.
func NewSet(ids ...ID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id.Valid() {
			s[id] = struct{}{}
		}
	}
	return s
}

// Has reports whether id is a member of the set.
func (s Set) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Intersects reports whether s and other share at least one ID.
func (s Set) Intersects(other Set) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for id := range small {
		if _, ok := large[id]; ok {
			return true
		}
	}
	return false
}

// Names returns the member names in sorted order, for logs and plans.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for id := range s {
		names = append(names, id.Name())
	}
	sort.Strings(names)
	return names
}

// Access is a task's declaration of the resource categories it reads and
// writes. A category listed in both sets is treated as written.
type Access struct {
	Reads  Set
	Writes Set
}

// NewAccess builds an Access from read and write ID lists.
func NewAccess(reads, writes []ID) Access {
	return Access{Reads: NewSet(reads...), Writes: NewSet(writes...)}
}

// IsEmpty reports whether the declaration touches no resources.
func (a Access) IsEmpty() bool {
	return len(a.Reads) == 0 && len(a.Writes) == 0
}

// Merge returns a new Access holding the union of a and other.
func (a Access) Merge(other Access) Access {
	out := Access{
		Reads:  make(Set, len(a.Reads)+len(other.Reads)),
		Writes: make(Set, len(a.Writes)+len(other.Writes)),
	}
	for _, src := range []Set{a.Reads, other.Reads} {
		for id := range src {
			out.Reads[id] = struct{}{}
		}
	}
	for _, src := range []Set{a.Writes, other.Writes} {
		for id := range src {
			out.Writes[id] = struct{}{}
		}
	}
	return out
}

// Conflicts reports whether two declarations forbid concurrent execution:
// a write on one side overlapping a read or write on the other. Shared reads
// never conflict. The relation is symmetric and total.
func Conflicts(a, b Access) bool {
	return a.Writes.Intersects(b.Reads) ||
		a.Writes.Intersects(b.Writes) ||
		a.Reads.Intersects(b.Writes)
}
