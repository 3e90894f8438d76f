package collatz

import (
	"errors"
	"fmt"
	"log/slog"
)

// GenerateUp grows the graph away from the root by materializing
// predecessors no larger than bound. It walks depth-first from the root and
// stops after expanding the configured batch of nodes (see WithUpBatch).
// The walk resumes where the previous call stopped as long as bound is
// unchanged, so repeated calls push the frontier further; a finished walk or
// a new bound restarts it from the root. Values whose predecessors overflow
// 64 bits are not expanded.
func (g *Graph) GenerateUp(bound uint64) error {
	if len(g.upStack) == 0 || g.upBound != bound {
		g.upStack = append(g.upStack[:0], g.root)
		g.upBound = bound
	}
	expanded, created := 0, 0

	for len(g.upStack) > 0 && expanded < g.upBatch {
		id := g.upStack[len(g.upStack)-1]
		g.upStack = g.upStack[:len(g.upStack)-1]
		expanded++

		n := g.nodes.at(id)
		if n.up1 == noNode || n.up2 == noNode {
			added, err := g.attachPredecessors(id, bound)
			if err != nil {
				return err
			}
			created += added
			n = g.nodes.at(id)
		}

		if n.up1 != noNode {
			g.upStack = append(g.upStack, n.up1)
		}
		if n.up2 != noNode {
			g.upStack = append(g.upStack, n.up2)
		}
	}

	g.log.Debug("generated up",
		slog.String("variant", g.variant.String()),
		slog.Uint64("bound", bound),
		slog.Int("expanded", expanded),
		slog.Int("created", created),
		slog.Int("pending", len(g.upStack)))
	return nil
}

// attachPredecessors creates the missing predecessors of the node at id
// that lie within bound and links them into its free slots.
func (g *Graph) attachPredecessors(id nodeID, bound uint64) (int, error) {
	parent := g.nodes.at(id)
	pre, err := g.rule.up(parent.value)
	if errors.Is(err, ErrOverflow) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("generate up from %d: %w", parent.value, err)
	}

	created := 0
	for _, v := range pre.Values() {
		if v > bound || v == rootValue || g.nodes.contains(v) {
			continue
		}
		parent = g.nodes.at(id)
		if parent.freeSlot() == nil {
			break
		}
		depth, highest := parent.depth+1, max(parent.highestPoint, v)

		child := g.mustCreate(v)
		c := g.nodes.at(child)
		c.depth = depth
		c.highestPoint = highest
		c.down = id

		// create may have grown the arena; resolve the slot again.
		*g.nodes.at(id).freeSlot() = child
		created++
	}
	return created, nil
}
