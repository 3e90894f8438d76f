package collatz

import (
	"fmt"
	"iter"
)

// contains reports membership, answering from the filled range first.
// Inside that range the answer is only meaningful for in-domain values.
func (g *Graph) contains(n uint64) bool {
	if n >= rootValue && n < g.filledEnd {
		return true
	}
	return g.nodes.contains(n)
}

// Contains reports whether n is a member of the graph. Values outside the
// variant's domain are never members.
func (g *Graph) Contains(n uint64) bool {
	return g.rule.inDomain(n) && g.contains(n)
}

// lookup resolves n to its node, distinguishing out-of-domain values from
// ones that simply have not been built.
func (g *Graph) lookup(n uint64) (nodeID, error) {
	if !g.rule.inDomain(n) {
		return noNode, fmt.Errorf("%w: %d under %s", ErrInvalidDomain, n, g.variant)
	}
	id, ok := g.nodes.get(n)
	if !ok {
		return noNode, fmt.Errorf("%w: %d", ErrNotGenerated, n)
	}
	return id, nil
}

// Lookup returns the record of n.
// Returns ErrNotGenerated if n has not been constructed.
func (g *Graph) Lookup(n uint64) (Record, error) {
	id, err := g.lookup(n)
	if err != nil {
		return Record{}, err
	}
	return g.nodes.at(id).record(), nil
}

// Depth returns the number of down-steps from n to the root.
// Returns ErrNotGenerated if n has not been constructed; Depth never
// constructs nodes itself.
func (g *Graph) Depth(n uint64) (int, error) {
	id, err := g.lookup(n)
	if err != nil {
		return 0, err
	}
	return g.nodes.at(id).depth, nil
}

// CommonAncestor returns the first value where the orbits of a and b meet.
// Returns a when a == b, and ErrNotGenerated if either is missing.
func (g *Graph) CommonAncestor(a, b uint64) (uint64, error) {
	ia, err := g.lookup(a)
	if err != nil {
		return 0, err
	}
	ib, err := g.lookup(b)
	if err != nil {
		return 0, err
	}

	na, nb := g.nodes.at(ia), g.nodes.at(ib)
	for na.depth < nb.depth {
		nb = g.nodes.at(nb.down)
	}
	for na.depth > nb.depth {
		na = g.nodes.at(na.down)
	}
	for na.value != nb.value {
		na = g.nodes.at(na.down)
		nb = g.nodes.at(nb.down)
	}
	return na.value, nil
}

// Orbit returns the records from n down to, but not including, the root.
// The sequence is lazy and may be ranged over any number of times.
// Returns ErrNotGenerated if n has not been constructed.
func (g *Graph) Orbit(n uint64) (iter.Seq[Record], error) {
	start, err := g.lookup(n)
	if err != nil {
		return nil, err
	}
	return func(yield func(Record) bool) {
		for id := start; id != g.root; {
			nd := g.nodes.at(id)
			if !yield(nd.record()) {
				return
			}
			id = nd.down
		}
	}, nil
}

// All returns every record in breadth-first order from the root, visiting
// up1 before up2. The order is stable while the graph is not modified.
func (g *Graph) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		queue := []nodeID{g.root}
		for len(queue) > 0 {
			nd := g.nodes.at(queue[0])
			queue = queue[1:]
			if nd.up1 != noNode {
				queue = append(queue, nd.up1)
			}
			if nd.up2 != noNode {
				queue = append(queue, nd.up2)
			}
			if !yield(nd.record()) {
				return
			}
		}
	}
}
