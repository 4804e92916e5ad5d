package atlas

import (
	"bytes"
	"fmt"
	"image"

	"github.com/katalvlaran/wavemap/tile"
)

// Builder accumulates patches and frequencies from example images.
// Zero value is unusable; construct with NewBuilder. Ingest may be
// called multiple times before Build; the patch list order, and with
// it the tile indexing, is fully determined by the ingestion order,
// the scan order, and the transform list, so identical inputs always
// produce identical atlases.
type Builder struct {
	interior int
	border   int
	patches  []*tile.Patch
	freqs    []int
}

// NewBuilder returns an empty Builder for patches of side
// interior + 2·border.
// Returns ErrInvalidArgs unless both sizes are positive.
func NewBuilder(interior, border int) (*Builder, error) {
	if interior <= 0 || border <= 0 {
		return nil, fmt.Errorf("%w: interior=%d border=%d", ErrInvalidArgs, interior, border)
	}

	return &Builder{interior: interior, border: border}, nil
}

// CutSize returns the extracted patch side: interior + 2·border.
func (b *Builder) CutSize() int {
	return b.interior + 2*b.border
}

// Len returns the number of distinct patches collected so far.
func (b *Builder) Len() int {
	return len(b.patches)
}

// checkIngest validates the extraction geometry and transform list.
func (b *Builder) checkIngest(bounds image.Rectangle, overlap int, transforms []tile.Transform) error {
	s := b.CutSize()
	if overlap < 0 || overlap >= s {
		return fmt.Errorf("%w: overlap %d must lie in [0,%d)", ErrInvalidArgs, overlap, s)
	}
	if bounds.Dx() < s || bounds.Dy() < s {
		return fmt.Errorf("%w: example image %dx%d smaller than cut size %d",
			ErrInvalidArgs, bounds.Dx(), bounds.Dy(), s)
	}
	if len(transforms) == 0 {
		return fmt.Errorf("%w: transform list must not be empty", ErrInvalidArgs)
	}
	hasIdentity := false
	for _, tr := range transforms {
		if tr == tile.Identity {
			hasIdentity = true

			break
		}
	}
	if !hasIdentity {
		return fmt.Errorf("%w: transform list must include the identity", ErrInvalidArgs)
	}

	return nil
}

// Ingest extracts every cut-size window of img at stride
// step = cutSize − overlap, anchored at the image origin, applies each
// transform, and merges the results into the growing patch set:
// a pixel-identical patch increments its frequency, a new one is
// appended with frequency 1.
// Returns ErrInvalidArgs on geometry violations.
// Complexity: O(windows · |transforms| · N · side²) in the worst case.
func (b *Builder) Ingest(img image.Image, overlap int, transforms []tile.Transform) error {
	bounds := img.Bounds()
	if err := b.checkIngest(bounds, overlap, transforms); err != nil {
		return err
	}

	s := b.CutSize()
	step := s - overlap
	for y := bounds.Min.Y; y+s <= bounds.Max.Y; y += step {
		for x := bounds.Min.X; x+s <= bounds.Max.X; x += step {
			window, err := tile.FromImage(img, image.Rect(x, y, x+s, y+s))
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
			}
			for _, tr := range transforms {
				b.merge(tr.Apply(window))
			}
		}
	}

	return nil
}

// merge adds p to the set, deduping by pixel equality.
func (b *Builder) merge(p *tile.Patch) {
	for i, existing := range b.patches {
		if existing.Equal(p) {
			b.freqs[i]++

			return
		}
	}
	b.patches = append(b.patches, p)
	b.freqs = append(b.freqs, 1)
}

// deriveAdjacency computes the east and north halves of the pairwise
// relation from pixel-exact border comparison: u may sit east of t iff
// t's east strip equals u's west strip, and likewise for north/south.
// Complexity: O(N² · side · border).
func deriveAdjacency(patches []*tile.Patch, border int) (east, north [][]bool, err error) {
	n := len(patches)
	east = make([][]bool, n)
	north = make([][]bool, n)

	type views struct{ n, e, s, w []byte }
	strips := make([]views, n)
	for i, p := range patches {
		var v views
		if v.n, err = p.BorderView(tile.North, border); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidAtlas, err)
		}
		if v.e, err = p.BorderView(tile.East, border); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidAtlas, err)
		}
		if v.s, err = p.BorderView(tile.South, border); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidAtlas, err)
		}
		if v.w, err = p.BorderView(tile.West, border); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidAtlas, err)
		}
		strips[i] = v
	}

	for t := 0; t < n; t++ {
		east[t] = make([]bool, n)
		north[t] = make([]bool, n)
		for u := 0; u < n; u++ {
			east[t][u] = bytes.Equal(strips[t].e, strips[u].w)
			north[t][u] = bytes.Equal(strips[t].n, strips[u].s)
		}
	}

	return east, north, nil
}

// Build derives the Rules from the collected patches and freezes the
// Atlas. The Builder remains usable afterwards; the Atlas owns copies
// of the frequency data.
// Returns ErrInvalidAtlas when no patch was ingested.
func (b *Builder) Build() (*Atlas, error) {
	if len(b.patches) == 0 {
		return nil, fmt.Errorf("%w: no patches ingested", ErrInvalidAtlas)
	}

	return FromPatches(b.interior, b.border, b.patches, b.freqs)
}

// FromPatches assembles an Atlas from an explicit patch list, deriving
// the adjacency relation from their borders. The patch order fixes the
// tile indexing; freqs must be parallel and strictly positive. Both
// slices are copied.
// Returns ErrInvalidAtlas on duplicate patches or frequency violations.
func FromPatches(interior, border int, patches []*tile.Patch, freqs []int) (*Atlas, error) {
	east, north, err := deriveAdjacency(patches, border)
	if err != nil {
		return nil, err
	}
	rules, err := NewRules(east, north, freqs)
	if err != nil {
		return nil, err
	}

	return newAtlas(interior, border, append([]*tile.Patch(nil), patches...), rules)
}
