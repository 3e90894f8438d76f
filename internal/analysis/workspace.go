package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

// slot owns the graph of one variant. The mutex serializes every use of
// the graph, which is not safe for concurrent access on its own.
type slot struct {
	mu    sync.Mutex
	graph *collatz.Graph
}

// Workspace keeps one graph per variant, created on first use and grown by
// every later computation on that variant.
type Workspace struct {
	slots [4]slot
	opts  []collatz.Option
	log   *slog.Logger
}

// NewWorkspace creates an empty workspace. opts are applied to every graph
// it creates.
func NewWorkspace(log *slog.Logger, opts ...collatz.Option) *Workspace {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Workspace{opts: opts, log: log}
}

// With runs fn with exclusive access to the graph of v, creating the graph
// if needed.
func (w *Workspace) With(v collatz.Variant, fn func(g *collatz.Graph) error) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %d", collatz.ErrUnknownVariant, int(v))
	}
	s := &w.slots[v]
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph == nil {
		g, err := collatz.New(v, w.opts...)
		if err != nil {
			return err
		}
		s.graph = g
		w.log.Debug("created graph", slog.String("variant", v.String()))
	}
	return fn(s.graph)
}

// Compute builds one series on the graph of v.
func (w *Workspace) Compute(kind Kind, v collatz.Variant, limit uint64) (*Series, error) {
	var series *Series
	err := w.With(v, func(g *collatz.Graph) error {
		var err error
		series, err = Compute(g, kind, limit)
		return err
	})
	return series, err
}

// ComputeAll builds the series of kind for each variant concurrently, one
// goroutine per variant. Results are returned in the order of variants.
func (w *Workspace) ComputeAll(ctx context.Context, kind Kind, limit uint64, variants ...collatz.Variant) ([]*Series, error) {
	if len(variants) == 0 {
		variants = collatz.Variants()
	}
	out := make([]*Series, len(variants))

	g, ctx := errgroup.WithContext(ctx)
	for i, v := range variants {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := w.Compute(kind, v, limit)
			if err != nil {
				return fmt.Errorf("%s: %w", v, err)
			}
			out[i] = s
			w.log.Info("computed series",
				slog.String("kind", string(kind)),
				slog.String("variant", v.String()),
				slog.Uint64("max", limit),
				slog.Int("points", len(s.Points)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Sizes returns the node count of each variant's graph, zero for graphs
// not created yet.
func (w *Workspace) Sizes() map[collatz.Variant]int {
	sizes := make(map[collatz.Variant]int, len(w.slots))
	for _, v := range collatz.Variants() {
		s := &w.slots[v]
		s.mu.Lock()
		if s.graph != nil {
			sizes[v] = s.graph.Len()
		} else {
			sizes[v] = 0
		}
		s.mu.Unlock()
	}
	return sizes
}
