package gpu

import "github.com/vk/gridsched/internal/resource"

// Access lists the GPU resources a task reads and writes, in declaration
// order.
type Access struct {
	Reads  []*Meta
	Writes []*Meta
}

func (a Access) IsEmpty() bool { return len(a.Reads) == 0 && len(a.Writes) == 0 }

// Resources projects a onto resource categories so GPU resources take part
// in ordinary conflict detection.
func (a Access) Resources() resource.Access {
	return resource.NewAccess(ids(a.Reads), ids(a.Writes))
}

// Reading returns the declaration through which a reads id, or nil.
func (a Access) Reading(id resource.ID) *Meta { return find(a.Reads, id) }

// Writing returns the declaration through which a writes id, or nil.
func (a Access) Writing(id resource.ID) *Meta { return find(a.Writes, id) }

func ids(metas []*Meta) []resource.ID {
	out := make([]resource.ID, 0, len(metas))
	for _, m := range metas {
		if m != nil {
			out = append(out, m.ID)
		}
	}
	return out
}

func find(metas []*Meta, id resource.ID) *Meta {
	for _, m := range metas {
		if m != nil && m.ID == id {
			return m
		}
	}
	return nil
}
