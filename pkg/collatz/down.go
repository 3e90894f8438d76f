package collatz

import (
	"fmt"
	"log/slog"
	"math"
)

// GenerateDown adds n and every down-successor of n up to the first value
// already in the graph, linking the new chain into the tree and annotating
// depth and highest point. It is a no-op when n is already present.
//
// The chain is computed before any node is created, so an ErrOverflow part
// way down leaves the graph unchanged. Termination relies on the trajectory
// of n reaching the tree, which holds for every value the variants are
// known to converge on.
func (g *Graph) GenerateDown(n uint64) error {
	if !g.rule.inDomain(n) {
		return fmt.Errorf("%w: %d under %s", ErrInvalidDomain, n, g.variant)
	}
	if g.contains(n) {
		return nil
	}

	var chain []uint64
	v := n
	for !g.contains(v) {
		chain = append(chain, v)
		next, err := g.rule.down(v)
		if err != nil {
			return fmt.Errorf("generate down from %d: %w", n, err)
		}
		v = next
	}
	return g.spliceChain(chain, v)
}

// spliceChain materializes chain (ordered away from the root, chain[i+1] is
// the successor of chain[i]) and attaches its last element to the existing
// node holding merge.
func (g *Graph) spliceChain(chain []uint64, merge uint64) error {
	mergeID, ok := g.nodes.get(merge)
	if !ok {
		return fmt.Errorf("%w: merge point %d", ErrNotGenerated, merge)
	}

	ids := make([]nodeID, len(chain))
	for i, v := range chain {
		ids[i] = g.mustCreate(v)
		if i > 0 {
			g.nodes.at(ids[i-1]).down = ids[i]
			g.nodes.at(ids[i]).up1 = ids[i-1]
		}
	}

	last := ids[len(ids)-1]
	g.nodes.at(last).down = mergeID
	if slot := g.nodes.at(mergeID).freeSlot(); slot != nil {
		*slot = last
	} else {
		g.log.Debug("merge point has no free predecessor slot",
			slog.Uint64("merge", merge), slog.Uint64("from", chain[len(chain)-1]))
	}

	m := g.nodes.at(mergeID)
	depth, highest := m.depth, m.highestPoint
	for i := len(ids) - 1; i >= 0; i-- {
		nd := g.nodes.at(ids[i])
		depth++
		highest = max(highest, nd.value)
		nd.depth = depth
		nd.highestPoint = highest
	}
	return nil
}

// GenerateFillDown runs GenerateDown for every in-domain value from bound
// down to the current filled boundary, then records that every in-domain
// value up to bound is present. Values already below the boundary are
// skipped.
func (g *Graph) GenerateFillDown(bound uint64) error {
	if bound < g.filledEnd {
		return nil
	}
	if bound == math.MaxUint64 {
		return fmt.Errorf("fill down to %d: %w", bound, ErrOverflow)
	}
	before := g.nodes.len()
	for n := bound; n >= g.filledEnd; n-- {
		if !g.rule.inDomain(n) {
			continue
		}
		if err := g.GenerateDown(n); err != nil {
			return fmt.Errorf("fill down to %d: %w", bound, err)
		}
	}
	g.filledEnd = bound + 1
	g.log.Debug("filled down",
		slog.String("variant", g.variant.String()),
		slog.Uint64("bound", bound),
		slog.Int("created", g.nodes.len()-before),
		slog.Int("nodes", g.nodes.len()))
	return nil
}
