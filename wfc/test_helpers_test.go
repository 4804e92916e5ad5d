package wfc_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wavemap/atlas"
	"github.com/katalvlaran/wavemap/grid"
	"github.com/katalvlaran/wavemap/tile"
	"github.com/katalvlaran/wavemap/wfc"
)

// greyImage builds an RGBA image whose pixel (x,y) is the opaque grey
// level grid[y][x].
func greyImage(cells [][]uint8) *image.RGBA {
	h, w := len(cells), len(cells[0])
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := cells[y][x]
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	return img
}

// uniformAtlas learns the single-tile atlas of a flat image: one patch
// that neighbours itself in every direction.
func uniformAtlas(t *testing.T) *atlas.Atlas {
	t.Helper()
	cells := make([][]uint8, 5)
	for y := range cells {
		cells[y] = make([]uint8, 5)
		for x := range cells[y] {
			cells[y][x] = 42
		}
	}

	return learn(t, greyImage(cells))
}

// checkerAtlas learns the two-phase checkerboard atlas: tile 0 carries
// the dark-centred phase, tile 1 the light-centred one, and only unlike
// phases may neighbour in any direction.
func checkerAtlas(t *testing.T) *atlas.Atlas {
	t.Helper()
	cells := make([][]uint8, 5)
	for y := range cells {
		cells[y] = make([]uint8, 5)
		for x := range cells[y] {
			if (y+x)%2 == 1 {
				cells[y][x] = 255
			}
		}
	}

	return learn(t, greyImage(cells))
}

// learn ingests img with interior 1, border 1, overlap 2, identity only.
func learn(t *testing.T, img image.Image) *atlas.Atlas {
	t.Helper()
	b, err := atlas.NewBuilder(1, 1)
	require.NoError(t, err)
	require.NoError(t, b.Ingest(img, 2, tile.IdentityOnly))
	a, err := b.Build()
	require.NoError(t, err)

	return a
}

// verifyCollapsed asserts the solver contract on an emitted map: every
// non-Ignore cell is Fixed and every orthogonally adjacent participating
// pair satisfies the adjacency relation.
func verifyCollapsed(t *testing.T, m *grid.Map, a *atlas.Atlas) {
	t.Helper()
	r := a.Rules()
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c := m.At(y, x)
			if c.Kind == grid.Ignore {
				continue
			}
			require.Equal(t, grid.Fixed, c.Kind, "cell (%d,%d) not collapsed", y, x)
			for _, d := range tile.Directions {
				dy, dx := d.Delta()
				ny, nx := y+dy, x+dx
				if !m.InBounds(ny, nx) {
					continue
				}
				nc := m.At(ny, nx)
				if nc.Kind == grid.Ignore {
					continue
				}
				require.True(t, r.Allowed(c.Tile, nc.Tile, d),
					"adjacency violated: (%d,%d)=%d %s of (%d,%d)=%d",
					ny, nx, nc.Tile, d, y, x, c.Tile)
			}
		}
	}
}

// countingRng wraps an Rng and tallies draws, letting tests assert how
// often the solver consulted randomness.
type countingRng struct {
	inner wfc.Rng
	calls int
}

func (c *countingRng) IntN(n int) int {
	c.calls++

	return c.inner.IntN(n)
}

func (c *countingRng) WeightedIndex(weights []int) int {
	c.calls++

	return c.inner.WeightedIndex(weights)
}
