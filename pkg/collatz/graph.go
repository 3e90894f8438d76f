package collatz

import (
	"log/slog"
)

// DefaultUpBatch is the number of nodes GenerateUp expands per call unless
// WithUpBatch says otherwise.
const DefaultUpBatch = 10

// rootValue is the value every trajectory converges to.
const rootValue = 1

// Record is the read-only view of a node.
type Record struct {
	Value        uint64 `json:"value"`
	Depth        int    `json:"depth"`
	HighestPoint uint64 `json:"highest_point"`
}

// Graph is the merged trajectory tree of one variant, rooted at 1.
type Graph struct {
	variant Variant
	rule    rule
	nodes   *store
	root    nodeID

	// Every in-domain value in [1, filledEnd) is present.
	filledEnd uint64

	upBatch int
	// Pending depth-first walk of GenerateUp and the bound it was started with.
	upStack []nodeID
	upBound uint64

	log *slog.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithUpBatch sets how many nodes a single GenerateUp call expands.
// Values below 1 are ignored.
func WithUpBatch(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.upBatch = n
		}
	}
}

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates a graph for v that holds only the root.
// Returns ErrUnknownVariant if v is not supported.
func New(v Variant, opts ...Option) (*Graph, error) {
	r, err := v.rule()
	if err != nil {
		return nil, err
	}
	g := &Graph{
		variant:   v,
		rule:      r,
		nodes:     newStore(),
		filledEnd: rootValue + 1,
		upBatch:   DefaultUpBatch,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.root = g.mustCreate(rootValue)
	g.nodes.at(g.root).highestPoint = rootValue
	return g, nil
}

// Variant returns the variant the graph was created with.
func (g *Graph) Variant() Variant {
	return g.variant
}

// Len returns the number of materialized nodes, the root included.
func (g *Graph) Len() int {
	return g.nodes.len()
}

// Root returns the root record: value 1, depth 0, highest point 1.
func (g *Graph) Root() Record {
	return g.nodes.at(g.root).record()
}

// FilledUpTo returns the largest value below which every in-domain value
// is known to be present.
func (g *Graph) FilledUpTo() uint64 {
	return g.filledEnd - 1
}

// mustCreate allocates a node for value. A duplicate means the construction
// algorithms lost track of membership, which is unrecoverable.
func (g *Graph) mustCreate(value uint64) nodeID {
	id, err := g.nodes.create(value)
	if err != nil {
		panic("collatz: " + err.Error())
	}
	return id
}
