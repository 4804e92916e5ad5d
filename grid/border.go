package grid

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/wavemap/tile"
)

// Sentinel errors for border stitching.
var (
	// ErrDimensionMismatch indicates the dimension perpendicular to the
	// shared border differs between the two maps.
	ErrDimensionMismatch = errors.New("grid: border dimensions do not match")
	// ErrBorderSize indicates a border wider than the map itself.
	ErrBorderSize = errors.New("grid: border size exceeds map dimensions")
)

// strip bounds the border-wide band of m on side d: rows [y0,y1) and
// columns [x0,x1).
func (m *Map) strip(d tile.Direction, border int) (y0, y1, x0, x1 int) {
	switch d {
	case tile.North:
		return 0, border, 0, m.w
	case tile.South:
		return m.h - border, m.h, 0, m.w
	case tile.West:
		return 0, m.h, 0, border
	default: // East
		return 0, m.h, m.w - border, m.w
	}
}

// checkBorder validates border against the depth of side d.
func (m *Map) checkBorder(d tile.Direction, border int) error {
	depth := m.h
	if d == tile.East || d == tile.West {
		depth = m.w
	}
	if border <= 0 || border > depth {
		return fmt.Errorf("%w: border=%d %s depth=%d", ErrBorderSize, border, d, depth)
	}

	return nil
}

// BorderingChunk returns a stand-in for the neighbouring map in
// direction d: a same-sized all-Wildcard map whose border-wide strip on
// the opposite side carries this map's strip on side d, i.e. the
// content the neighbour must expose along the shared seam.
// Complexity: O(h·w).
func (m *Map) BorderingChunk(d tile.Direction, border int) (*Map, error) {
	if err := m.checkBorder(d, border); err != nil {
		return nil, err
	}

	out := &Map{h: m.h, w: m.w, cells: make([]Cell, m.h*m.w)}
	sy0, _, sx0, _ := m.strip(d, border)
	dy0, dy1, dx0, dx1 := out.strip(d.Opposite(), border)
	for y := dy0; y < dy1; y++ {
		for x := dx0; x < dx1; x++ {
			out.cells[y*out.w+x] = m.At(sy0+(y-dy0), sx0+(x-dx0))
		}
	}

	return out, nil
}

// SetSharedBorder overwrites this map's border-wide strip on side d with
// other's strip on the opposite side, where other is the neighbouring
// map lying in direction d. The dimension perpendicular to the border
// must match; the border must fit inside both maps.
// Complexity: O(border·perpendicular).
func (m *Map) SetSharedBorder(other *Map, d tile.Direction, border int) error {
	if d == tile.North || d == tile.South {
		if m.w != other.w {
			return fmt.Errorf("%w: widths %d and %d", ErrDimensionMismatch, m.w, other.w)
		}
	} else if m.h != other.h {
		return fmt.Errorf("%w: heights %d and %d", ErrDimensionMismatch, m.h, other.h)
	}
	if err := m.checkBorder(d, border); err != nil {
		return err
	}
	if err := other.checkBorder(d.Opposite(), border); err != nil {
		return err
	}

	dy0, dy1, dx0, dx1 := m.strip(d, border)
	sy0, _, sx0, _ := other.strip(d.Opposite(), border)
	for y := dy0; y < dy1; y++ {
		for x := dx0; x < dx1; x++ {
			m.cells[y*m.w+x] = other.At(sy0+(y-dy0), sx0+(x-dx0))
		}
	}

	return nil
}
