package atlas_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wavemap/atlas"
	"github.com/katalvlaran/wavemap/tile"
)

// greyImage builds an RGBA image whose pixel (x,y) is the opaque grey
// level grid[y][x].
func greyImage(grid [][]uint8) *image.RGBA {
	h, w := len(grid), len(grid[0])
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := grid[y][x]
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	return img
}

// uniformImage builds a size×size image of a single grey level.
func uniformImage(size int, level uint8) *image.RGBA {
	grid := make([][]uint8, size)
	for y := range grid {
		grid[y] = make([]uint8, size)
		for x := range grid[y] {
			grid[y][x] = level
		}
	}

	return greyImage(grid)
}

// checkerImage builds a size×size two-level checkerboard.
func checkerImage(size int) *image.RGBA {
	grid := make([][]uint8, size)
	for y := range grid {
		grid[y] = make([]uint8, size)
		for x := range grid[y] {
			if (y+x)%2 == 0 {
				grid[y][x] = 0
			} else {
				grid[y][x] = 255
			}
		}
	}

	return greyImage(grid)
}

// buildAtlas ingests one image with the given geometry and builds.
func buildAtlas(t *testing.T, img image.Image, interior, border, overlap int, transforms []tile.Transform) *atlas.Atlas {
	t.Helper()
	b, err := atlas.NewBuilder(interior, border)
	require.NoError(t, err)
	require.NoError(t, b.Ingest(img, overlap, transforms))
	a, err := b.Build()
	require.NoError(t, err)

	return a
}

// checkerAtlas learns the two-phase checkerboard atlas: two 3×3 patches
// where only unlike phases may neighbour in every direction.
func checkerAtlas(t *testing.T) *atlas.Atlas {
	t.Helper()

	return buildAtlas(t, checkerImage(5), 1, 1, 2, tile.IdentityOnly)
}
