package collatz

import "fmt"

// nodeID addresses a node in the store arena. IDs are stable for the
// lifetime of the store; nodes are never removed.
type nodeID int32

// noNode marks an absent edge.
const noNode nodeID = -1

// node is one graph vertex. down points toward the root; up1 and up2 hold
// up to two predecessors one level further from it.
type node struct {
	value        uint64
	depth        int
	highestPoint uint64
	down         nodeID
	up1          nodeID
	up2          nodeID
}

func (n *node) record() Record {
	return Record{Value: n.value, Depth: n.depth, HighestPoint: n.highestPoint}
}

// freeSlot returns a pointer to the first empty predecessor slot, or nil
// when both are occupied.
func (n *node) freeSlot() *nodeID {
	switch {
	case n.up1 == noNode:
		return &n.up1
	case n.up2 == noNode:
		return &n.up2
	}
	return nil
}

// store owns every node of a graph, keyed by value.
type store struct {
	nodes []node
	index map[uint64]nodeID
}

func newStore() *store {
	return &store{index: make(map[uint64]nodeID)}
}

// create allocates a node with zeroed depth and highest point.
// Returns ErrDuplicateNode if value is already present.
func (s *store) create(value uint64) (nodeID, error) {
	if _, ok := s.index[value]; ok {
		return noNode, fmt.Errorf("%w: %d", ErrDuplicateNode, value)
	}
	id := nodeID(len(s.nodes))
	s.nodes = append(s.nodes, node{value: value, down: noNode, up1: noNode, up2: noNode})
	s.index[value] = id
	return id, nil
}

func (s *store) get(value uint64) (nodeID, bool) {
	id, ok := s.index[value]
	return id, ok
}

func (s *store) contains(value uint64) bool {
	_, ok := s.index[value]
	return ok
}

// at returns the node for id. The pointer is valid until the next create.
func (s *store) at(id nodeID) *node {
	return &s.nodes[id]
}

func (s *store) len() int {
	return len(s.nodes)
}
