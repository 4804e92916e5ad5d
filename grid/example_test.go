package grid_test

import (
	"fmt"

	"github.com/katalvlaran/wavemap/grid"
	"github.com/katalvlaran/wavemap/tile"
)

// ExampleParse demonstrates the map text format: indices for Fixed
// cells, `*` for Wildcard, `!` for Ignore, comments and blank lines
// ignored, and aligned printing.
func ExampleParse() {
	m, _ := grid.Parse(`
	# template with a hole in the middle
	0 1 2 3
	4 * * 5
	6 * * 7
	! ! ! !
	`)
	fmt.Print(m.String())

	// Output:
	// 0 1 2 3
	// 4 * * 5
	// 6 * * 7
	// ! ! ! !
}

// ExampleMap_SetSharedBorder shows how a chunk template inherits the
// seam cells of an already-solved western neighbour.
func ExampleMap_SetSharedBorder() {
	west, _ := grid.Parse(`
	0 1 0
	1 0 1
	`)

	template, _ := grid.NewMap(2, 3)
	_ = template.SetSharedBorder(west, tile.West, 1)
	fmt.Print(template.String())

	// Output:
	// 0 * *
	// 1 * *
}
