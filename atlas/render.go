package atlas

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/katalvlaran/wavemap/grid"
)

// Placeholder colours for non-Fixed cells in rendered output.
var (
	// wildcardColor marks uncollapsed cells: opaque magenta.
	wildcardColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	// ignoreColor marks excluded cells: fully transparent.
	ignoreColor = color.RGBA{}
)

// Render produces an RGBA image of the map: each Fixed cell contributes
// its patch interior, a Wildcard cell an opaque magenta block, an Ignore
// cell a fully transparent block. The output measures
// (H·interior) × (W·interior) pixels.
// Returns ErrTileIndex when the map references a tile outside the atlas.
// Complexity: O(H·W·interior²).
func (a *Atlas) Render(m *grid.Map) (*image.RGBA, error) {
	in := a.interior
	out := image.NewRGBA(image.Rect(0, 0, m.Width()*in, m.Height()*in))

	interiors := make([]*image.RGBA, a.Len())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			rect := image.Rect(x*in, y*in, (x+1)*in, (y+1)*in)
			switch c := m.At(y, x); c.Kind {
			case grid.Fixed:
				if c.Tile < 0 || c.Tile >= a.Len() {
					return nil, fmt.Errorf("%w: cell (%d,%d) references tile %d of %d",
						ErrTileIndex, y, x, c.Tile, a.Len())
				}
				if interiors[c.Tile] == nil {
					img, err := a.patches[c.Tile].Interior(a.border)
					if err != nil {
						return nil, fmt.Errorf("%w: tile %d: %v", ErrInvalidAtlas, c.Tile, err)
					}
					interiors[c.Tile] = img
				}
				draw.Draw(out, rect, interiors[c.Tile], image.Point{}, draw.Src)
			case grid.Wildcard:
				draw.Draw(out, rect, image.NewUniform(wildcardColor), image.Point{}, draw.Src)
			case grid.Ignore:
				draw.Draw(out, rect, image.NewUniform(ignoreColor), image.Point{}, draw.Src)
			}
		}
	}

	return out, nil
}
