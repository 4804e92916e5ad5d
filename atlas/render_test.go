package atlas_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wavemap/atlas"
	"github.com/katalvlaran/wavemap/grid"
	"github.com/katalvlaran/wavemap/tile"
)

// TestRender_CellKinds verifies the three pixel substitutions: patch
// interior for Fixed, opaque magenta for Wildcard, transparent for
// Ignore.
func TestRender_CellKinds(t *testing.T) {
	// Single-tile atlas from a uniform grey-42 image; interior is 1×1.
	a := buildAtlas(t, uniformImage(5, 42), 1, 1, 2, tile.IdentityOnly)

	m, err := grid.Parse("0 *\n! 0\n")
	require.NoError(t, err)

	img, err := a.Render(m)
	require.NoError(t, err)
	require.Equal(t, 2, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())

	assert.Equal(t, color.RGBA{42, 42, 42, 255}, img.RGBAAt(0, 0), "Fixed cell")
	assert.Equal(t, color.RGBA{255, 0, 255, 255}, img.RGBAAt(1, 0), "Wildcard cell")
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 1), "Ignore cell")
	assert.Equal(t, color.RGBA{42, 42, 42, 255}, img.RGBAAt(1, 1), "Fixed cell")
}

// TestRender_TileIndexOutOfRange rejects maps referencing unknown tiles.
func TestRender_TileIndexOutOfRange(t *testing.T) {
	a := buildAtlas(t, uniformImage(5, 7), 1, 1, 2, tile.IdentityOnly)
	m, err := grid.Parse("0 5\n")
	require.NoError(t, err)

	_, err = a.Render(m)
	assert.ErrorIs(t, err, atlas.ErrTileIndex)
}

// TestRender_ReExtract closes the loop of §learning: rendering a
// collapsed checkerboard map and re-ingesting the result with overlap 2
// reproduces the checkerboard phases.
func TestRender_ReExtract(t *testing.T) {
	a := checkerAtlas(t)

	// A 5×5 explicit checkerboard map over the two phases.
	m, err := grid.NewMap(5, 5)
	require.NoError(t, err)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			require.NoError(t, m.Set(y, x, grid.FixedCell((y+x)%2)))
		}
	}

	img, err := a.Render(m)
	require.NoError(t, err)
	require.Equal(t, 5, img.Bounds().Dx())

	b, err := atlas.NewBuilder(1, 1)
	require.NoError(t, err)
	require.NoError(t, b.Ingest(img, 2, tile.IdentityOnly))
	re, err := b.Build()
	require.NoError(t, err)

	// Same two phases, same window tally as the original 5×5 board;
	// provided phase 0 of the map matches phase 0 of the atlas; the
	// learner's scan order guarantees it does.
	require.Equal(t, a.Len(), re.Len())
	assert.ElementsMatch(t, a.Frequencies(), re.Frequencies())
}
