package atlas

import (
	"fmt"

	"github.com/katalvlaran/wavemap/tile"
)

// Atlas is the immutable learned bundle: the deduplicated patches, their
// frequencies, and the derived adjacency Rules, together with the
// interior and border geometry every patch obeys.
//
// Invariants: N ≥ 1; no two patches share pixel data; every frequency is
// strictly positive; len(patches) == len(frequencies) == Rules.Len().
type Atlas struct {
	interior int
	border   int
	patches  []*tile.Patch
	rules    *Rules
}

// newAtlas wires a validated bundle. Internal; reached through
// Builder.Build and Load, which establish the invariants.
func newAtlas(interior, border int, patches []*tile.Patch, rules *Rules) (*Atlas, error) {
	if interior <= 0 || border <= 0 {
		return nil, fmt.Errorf("%w: interior=%d border=%d", ErrInvalidArgs, interior, border)
	}
	if len(patches) == 0 {
		return nil, fmt.Errorf("%w: no patches", ErrInvalidAtlas)
	}
	if len(patches) != rules.Len() {
		return nil, fmt.Errorf("%w: %d patches but %d rules", ErrInvalidAtlas, len(patches), rules.Len())
	}
	side := interior + 2*border
	for i, p := range patches {
		if p.Side() != side {
			return nil, fmt.Errorf("%w: patch %d has side %d, want %d", ErrInvalidAtlas, i, p.Side(), side)
		}
		for j := 0; j < i; j++ {
			if patches[j].Equal(p) {
				return nil, fmt.Errorf("%w: patches %d and %d have identical pixels", ErrInvalidAtlas, j, i)
			}
		}
	}

	return &Atlas{interior: interior, border: border, patches: patches, rules: rules}, nil
}

// Len returns the number of tiles N.
func (a *Atlas) Len() int {
	return len(a.patches)
}

// InteriorSize returns the interior side length in pixels.
func (a *Atlas) InteriorSize() int {
	return a.interior
}

// BorderSize returns the border ring width in pixels.
func (a *Atlas) BorderSize() int {
	return a.border
}

// Patch returns the patch for tile index i.
// Returns ErrTileIndex when i is outside [0, N).
func (a *Atlas) Patch(i int) (*tile.Patch, error) {
	if i < 0 || i >= len(a.patches) {
		return nil, fmt.Errorf("%w: %d of %d", ErrTileIndex, i, len(a.patches))
	}

	return a.patches[i], nil
}

// Rules returns the adjacency relation.
func (a *Atlas) Rules() *Rules {
	return a.rules
}

// Frequencies returns the tile frequency vector. Callers must not
// mutate it.
func (a *Atlas) Frequencies() []int {
	return a.rules.Frequencies()
}
