// If you are AI: This file implements the append-only value graph (object store).
// Slots are reserved before a value's body is decoded and filled afterwards,
// which keeps ids in pre-order even when composites recurse.

package amf

import "errors"

var (
	// ErrUnknownID is returned when a lookup targets an id that was never reserved.
	ErrUnknownID = errors.New("unknown value id")
	// ErrAlreadyFilled is returned when a slot is filled twice.
	ErrAlreadyFilled = errors.New("value slot already filled")
)

// Graph stores decoded descriptors indexed by ValueID.
type Graph struct {
	slots    []Descriptor
	filled   []bool
	sentinel *Descriptor
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Reserve allocates the next id and returns it.
// The id equals the number of slots reserved before the call.
func (g *Graph) Reserve() ValueID {
	id := ValueID(len(g.slots))
	g.slots = append(g.slots, Descriptor{ID: id})
	g.filled = append(g.filled, false)
	return id
}

// Fill stores d under d.ID, which must be reserved or SentinelID.
func (g *Graph) Fill(d Descriptor) error {
	if d.ID == SentinelID {
		if g.sentinel != nil {
			return ErrAlreadyFilled
		}
		g.sentinel = &d
		return nil
	}
	if d.ID < 0 || int(d.ID) >= len(g.slots) {
		return ErrUnknownID
	}
	if g.filled[d.ID] {
		return ErrAlreadyFilled
	}
	g.slots[d.ID] = d
	g.filled[d.ID] = true
	return nil
}

// Get returns the descriptor stored under id.
// Reserved but unfilled slots are reported as missing.
func (g *Graph) Get(id ValueID) (Descriptor, bool) {
	if id == SentinelID {
		if g.sentinel == nil {
			return Descriptor{}, false
		}
		return *g.sentinel, true
	}
	if id < 0 || int(id) >= len(g.slots) || !g.filled[id] {
		return Descriptor{}, false
	}
	return g.slots[id], true
}

// Next returns the id the next Reserve call will hand out.
func (g *Graph) Next() ValueID {
	return ValueID(len(g.slots))
}

// Len returns the number of filled entries, including the sentinel.
func (g *Graph) Len() int {
	n := 0
	for _, ok := range g.filled {
		if ok {
			n++
		}
	}
	if g.sentinel != nil {
		n++
	}
	return n
}

// IDs returns the filled ids in ascending order with the sentinel last.
func (g *Graph) IDs() []ValueID {
	ids := make([]ValueID, 0, len(g.slots)+1)
	for i, ok := range g.filled {
		if ok {
			ids = append(ids, ValueID(i))
		}
	}
	if g.sentinel != nil {
		ids = append(ids, SentinelID)
	}
	return ids
}

// Descriptors returns the filled descriptors in the order of IDs.
func (g *Graph) Descriptors() []Descriptor {
	ids := g.IDs()
	out := make([]Descriptor, 0, len(ids))
	for _, id := range ids {
		d, _ := g.Get(id)
		out = append(out, d)
	}
	return out
}

// Pending returns reserved ids that were never filled.
func (g *Graph) Pending() []ValueID {
	var ids []ValueID
	for i, ok := range g.filled {
		if !ok {
			ids = append(ids, ValueID(i))
		}
	}
	return ids
}

// Roots returns the filled ids that no composite references.
// These are the top-level values of the pass, in input order.
func (g *Graph) Roots() []ValueID {
	referenced := make(map[ValueID]bool)
	for i, ok := range g.filled {
		if !ok {
			continue
		}
		for _, c := range g.slots[i].Children() {
			referenced[c] = true
		}
	}
	var roots []ValueID
	for i, ok := range g.filled {
		if ok && !referenced[ValueID(i)] {
			roots = append(roots, ValueID(i))
		}
	}
	return roots
}
