package grid

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for map construction and I/O.
var (
	// ErrEmptyMap indicates a map with no rows or no columns.
	ErrEmptyMap = errors.New("grid: map must have at least one row and one column")
	// ErrRaggedRows indicates rows of differing token counts.
	ErrRaggedRows = errors.New("grid: all rows must have the same length")
	// ErrOutOfBounds indicates a position outside the map.
	ErrOutOfBounds = errors.New("grid: position out of bounds")
)

// Map is an owned rectangular grid of Cells. The zero value is not
// usable; construct with NewMap, FromCells, or Parse.
type Map struct {
	h, w  int
	cells []Cell // row-major, h*w entries
}

// NewMap returns an h×w map of Wildcard cells.
// Returns ErrEmptyMap unless both dimensions are positive.
// Complexity: O(h·w).
func NewMap(h, w int) (*Map, error) {
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyMap, h, w)
	}

	return &Map{h: h, w: w, cells: make([]Cell, h*w)}, nil
}

// FromCells deep-copies a non-empty rectangular cell grid into a Map.
// Returns ErrEmptyMap or ErrRaggedRows on shape violations.
// Complexity: O(h·w).
func FromCells(rows [][]Cell) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}
	h, w := len(rows), len(rows[0])
	m := &Map{h: h, w: w, cells: make([]Cell, 0, h*w)}
	for _, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: want %d tokens, got %d", ErrRaggedRows, w, len(row))
		}
		m.cells = append(m.cells, row...)
	}

	return m, nil
}

// Height returns the number of rows.
func (m *Map) Height() int { return m.h }

// Width returns the number of columns.
func (m *Map) Width() int { return m.w }

// InBounds reports whether (y, x) lies within the map.
// Complexity: O(1).
func (m *Map) InBounds(y, x int) bool {
	return y >= 0 && y < m.h && x >= 0 && x < m.w
}

// Get returns the cell at (y, x).
// Returns ErrOutOfBounds for positions outside the map.
func (m *Map) Get(y, x int) (Cell, error) {
	if !m.InBounds(y, x) {
		return Cell{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, y, x, m.h, m.w)
	}

	return m.cells[y*m.w+x], nil
}

// Set overwrites the cell at (y, x).
// Returns ErrOutOfBounds for positions outside the map.
func (m *Map) Set(y, x int, c Cell) error {
	if !m.InBounds(y, x) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, y, x, m.h, m.w)
	}
	m.cells[y*m.w+x] = c

	return nil
}

// At returns the cell at (y, x) without a bounds check. Callers iterate
// within [0,h)×[0,w).
func (m *Map) At(y, x int) Cell {
	return m.cells[y*m.w+x]
}

// Clone returns a deep copy of the map.
// Complexity: O(h·w).
func (m *Map) Clone() *Map {
	cells := make([]Cell, len(m.cells))
	copy(cells, m.cells)

	return &Map{h: m.h, w: m.w, cells: cells}
}

// MaxIndex returns the largest Fixed tile index present, and whether any
// Fixed cell exists at all.
// Complexity: O(h·w).
func (m *Map) MaxIndex() (int, bool) {
	maxIdx, found := 0, false
	for _, c := range m.cells {
		if c.Kind == Fixed {
			found = true
			if c.Tile > maxIdx {
				maxIdx = c.Tile
			}
		}
	}

	return maxIdx, found
}

// Parse decodes the whitespace-separated text form: one row per line,
// blank lines and lines starting with `#` ignored.
// Returns ErrEmptyMap, ErrRaggedRows, or ErrBadCellToken.
// Complexity: O(h·w).
func Parse(s string) (*Map, error) {
	var rows [][]Cell
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		toks := strings.Fields(line)
		row := make([]Cell, 0, len(toks))
		for _, tok := range toks {
			c, err := ParseCell(tok)
			if err != nil {
				return nil, err
			}
			row = append(row, c)
		}
		rows = append(rows, row)
	}

	return FromCells(rows)
}

// String renders the map in its text form: tokens padded to a uniform
// width so columns align, one row per line, trailing newline.
// Complexity: O(h·w).
func (m *Map) String() string {
	width := 1
	if maxIdx, ok := m.MaxIndex(); ok {
		for n := maxIdx; n >= 10; n /= 10 {
			width++
		}
	}

	var sb strings.Builder
	sb.Grow(m.h * m.w * (width + 1))
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%*s", width, m.At(y, x).String())
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Load reads and parses a map file.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("grid: load %s: %w", path, err)
	}

	return Parse(string(data))
}

// Save writes the map's text form to path atomically: the content goes
// to a temporary file in the same directory which is renamed over the
// target only once fully written, so failures never leave partial output.
func (m *Map) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".wavemap-*")
	if err != nil {
		return fmt.Errorf("grid: save %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.WriteString(m.String()); err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}
	if err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("grid: save %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("grid: save %s: %w", path, err)
	}

	return nil
}
