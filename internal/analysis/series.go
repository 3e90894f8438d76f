// Package analysis computes the plot series drawn from a trajectory graph:
// orbit length, the fraction of an orbit spent above its start, and the
// distance to the common ancestor of consecutive values. Rendering is left
// to the caller; this package only produces coordinates.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

// Kind names a series.
type Kind string

// Supported series kinds.
const (
	KindOrbitLength   Kind = "orbit-length"
	KindFractionAbove Kind = "fraction-above"
	KindAncestorDist  Kind = "ancestor-dist"
)

// Kinds lists every supported series kind.
var Kinds = []Kind{KindOrbitLength, KindFractionAbove, KindAncestorDist}

// ErrUnknownKind is returned for an unrecognized series kind.
var ErrUnknownKind = errors.New("unknown series kind")

// ParseKind validates a series kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Point is one plotted coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is the bounding box of a series.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// Series is a computed set of points for one variant and bound.
type Series struct {
	Kind    Kind            `json:"kind"`
	Variant collatz.Variant `json:"variant"`
	Max     uint64          `json:"max"`
	Points  []Point         `json:"points"`
}

// Bounds returns the bounding box of the points, or the zero box when
// there are none.
func (s *Series) Bounds() Bounds {
	if len(s.Points) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, p := range s.Points {
		b.MinX = min(b.MinX, p.X)
		b.MaxX = max(b.MaxX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b
}

// Compute fills g down to limit and builds the series of the given kind
// over every in-domain value in [2, limit].
func Compute(g *collatz.Graph, kind Kind, limit uint64) (*Series, error) {
	if err := g.GenerateFillDown(limit); err != nil {
		return nil, err
	}

	var (
		points []Point
		err    error
	)
	switch kind {
	case KindOrbitLength:
		points, err = orbitLength(g, limit)
	case KindFractionAbove:
		points, err = fractionAbove(g, limit)
	case KindAncestorDist:
		points, err = ancestorDist(g, limit)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("compute %s: %w", kind, err)
	}
	return &Series{Kind: kind, Variant: g.Variant(), Max: limit, Points: points}, nil
}

// members yields the in-domain values of g's variant in [2, limit].
func members(g *collatz.Graph, limit uint64, fn func(n uint64) error) error {
	v := g.Variant()
	for n := uint64(2); n <= limit; n++ {
		if !v.InDomain(n) {
			continue
		}
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}

func orbitLength(g *collatz.Graph, limit uint64) ([]Point, error) {
	var points []Point
	err := members(g, limit, func(n uint64) error {
		depth, err := g.Depth(n)
		if err != nil {
			return err
		}
		points = append(points, Point{X: float64(n), Y: float64(depth)})
		return nil
	})
	return points, err
}

func fractionAbove(g *collatz.Graph, limit uint64) ([]Point, error) {
	var points []Point
	err := members(g, limit, func(n uint64) error {
		depth, err := g.Depth(n)
		if err != nil {
			return err
		}
		orbit, err := g.Orbit(n)
		if err != nil {
			return err
		}
		above := 0
		for rec := range orbit {
			if rec.Value > n {
				above++
			}
		}
		points = append(points, Point{X: float64(n), Y: float64(above) / float64(depth)})
		return nil
	})
	return points, err
}

// ancestorDist measures how far consecutive members travel before their
// orbits merge: x is the distance from the previous member to the common
// ancestor, y the distance from the current one.
func ancestorDist(g *collatz.Graph, limit uint64) ([]Point, error) {
	var points []Point
	prev, prevDepth := g.Root().Value, 0
	err := members(g, limit, func(n uint64) error {
		ca, err := g.CommonAncestor(n, prev)
		if err != nil {
			return err
		}
		depth, err := g.Depth(n)
		if err != nil {
			return err
		}
		caDepth, err := g.Depth(ca)
		if err != nil {
			return err
		}
		points = append(points, Point{
			X: float64(prevDepth - caDepth),
			Y: float64(depth - caDepth),
		})
		prev, prevDepth = n, depth
		return nil
	})
	return points, err
}
