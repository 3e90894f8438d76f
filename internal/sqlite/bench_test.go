package sqlite

import (
	"testing"

	"github.com/mesh-intelligence/collatz/internal/analysis"
	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

func BenchmarkSaveSeries(b *testing.B) {
	store := NewBackend(nil)
	if err := store.Attach(b.TempDir()); err != nil {
		b.Fatalf("attach: %v", err)
	}
	defer store.Detach()

	g, err := collatz.New(collatz.Full)
	if err != nil {
		b.Fatal(err)
	}
	s, err := analysis.Compute(g, analysis.KindOrbitLength, 1000)
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		if _, err := store.SaveSeries(s); err != nil {
			b.Fatalf("save: %v", err)
		}
	}
}
