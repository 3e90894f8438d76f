package collatz

import (
	"fmt"
	"testing"
)

func BenchmarkGenerateFillDown(b *testing.B) {
	for _, v := range Variants() {
		for _, limit := range []uint64{1_000, 100_000} {
			b.Run(fmt.Sprintf("%s/%d", v, limit), func(b *testing.B) {
				for b.Loop() {
					g, err := New(v)
					if err != nil {
						b.Fatal(err)
					}
					if err := g.GenerateFillDown(limit); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkGenerateUp(b *testing.B) {
	for _, v := range Variants() {
		b.Run(v.String(), func(b *testing.B) {
			for b.Loop() {
				g, err := New(v, WithUpBatch(10_000))
				if err != nil {
					b.Fatal(err)
				}
				if err := g.GenerateUp(1 << 40); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCommonAncestor(b *testing.B) {
	g, err := New(Full)
	if err != nil {
		b.Fatal(err)
	}
	if err := g.GenerateFillDown(100_000); err != nil {
		b.Fatal(err)
	}
	n := uint64(2)
	for b.Loop() {
		if _, err := g.CommonAncestor(n, n+1); err != nil {
			b.Fatal(err)
		}
		n++
		if n >= 100_000 {
			n = 2
		}
	}
}
