package wfc_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/katalvlaran/wavemap/atlas"
	"github.com/katalvlaran/wavemap/grid"
	"github.com/katalvlaran/wavemap/tile"
	"github.com/katalvlaran/wavemap/wfc"
)

// benchAtlas learns a richer atlas from a striped-noise image so the
// benchmark exercises multi-tile domains rather than the trivial pair.
func benchAtlas(b *testing.B) *atlas.Atlas {
	b.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			v := uint8((y*31 + x*17) % 4 * 60)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	bl, err := atlas.NewBuilder(1, 1)
	if err != nil {
		b.Fatalf("NewBuilder failed: %v", err)
	}
	if err := bl.Ingest(img, 2, tile.IdentityOnly); err != nil {
		b.Fatalf("Ingest failed: %v", err)
	}
	a, err := bl.Build()
	if err != nil {
		b.Fatalf("Build failed: %v", err)
	}

	return a
}

// BenchmarkCollapse_Fast measures a 32×32 solve over the learned atlas.
func BenchmarkCollapse_Fast(b *testing.B) {
	a := benchAtlas(b)
	m, err := grid.NewMap(32, 32)
	if err != nil {
		b.Fatalf("NewMap failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		opts := wfc.DefaultOptions()
		opts.Seed = int64(i + 1)
		if _, err := wfc.Collapse(m, a, opts); err != nil {
			b.Fatalf("Collapse failed: %v", err)
		}
	}
}

// BenchmarkCollapse_Backtracking measures the recovering solver on the
// same workload.
func BenchmarkCollapse_Backtracking(b *testing.B) {
	a := benchAtlas(b)
	m, err := grid.NewMap(32, 32)
	if err != nil {
		b.Fatalf("NewMap failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		opts := wfc.DefaultOptions()
		opts.Algorithm = wfc.Backtracking
		opts.Seed = int64(i + 1)
		if _, err := wfc.Collapse(m, a, opts); err != nil {
			b.Fatalf("Collapse failed: %v", err)
		}
	}
}
