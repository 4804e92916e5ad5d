package grid

import (
	"errors"
	"testing"

	"github.com/katalvlaran/wavemap/tile"
)

func mustParse(t *testing.T, s string) *Map {
	t.Helper()
	m, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	return m
}

// TestBorderingChunk verifies the stand-in map carries this map's strip
// on the opposite side and nothing else.
func TestBorderingChunk(t *testing.T) {
	m := mustParse(t, `
	0 1 2
	3 4 5
	6 7 8
	`)

	// Neighbour to the south must expose m's south strip on its north side.
	south, err := m.BorderingChunk(tile.South, 1)
	if err != nil {
		t.Fatalf("BorderingChunk failed: %v", err)
	}
	wantTop := []int{6, 7, 8}
	for x, w := range wantTop {
		if got := south.At(0, x); got != FixedCell(w) {
			t.Errorf("south stand-in (0,%d) = %v; want %d", x, got, w)
		}
	}
	for y := 1; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if south.At(y, x).Kind != Wildcard {
				t.Errorf("south stand-in (%d,%d) not Wildcard", y, x)
			}
		}
	}

	// Neighbour to the east exposes m's east strip on its west side.
	east, err := m.BorderingChunk(tile.East, 2)
	if err != nil {
		t.Fatalf("BorderingChunk failed: %v", err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			want := FixedCell(y*3 + 1 + x)
			if got := east.At(y, x); got != want {
				t.Errorf("east stand-in (%d,%d) = %v; want %v", y, x, got, want)
			}
		}
	}

	if _, err := m.BorderingChunk(tile.North, 4); !errors.Is(err, ErrBorderSize) {
		t.Errorf("oversized border: want ErrBorderSize, got %v", err)
	}
}

// TestSetSharedBorder verifies the seam copy: my strip on side d takes
// the neighbour's strip on the opposite side.
func TestSetSharedBorder(t *testing.T) {
	north := mustParse(t, `
	0 1
	2 3
	4 5
	`)
	m, _ := NewMap(3, 2)

	if err := m.SetSharedBorder(north, tile.North, 1); err != nil {
		t.Fatalf("SetSharedBorder failed: %v", err)
	}
	// My north strip == north neighbour's south strip.
	if m.At(0, 0) != FixedCell(4) || m.At(0, 1) != FixedCell(5) {
		t.Errorf("north strip = %v %v; want 4 5", m.At(0, 0), m.At(0, 1))
	}
	for y := 1; y < 3; y++ {
		for x := 0; x < 2; x++ {
			if m.At(y, x).Kind != Wildcard {
				t.Errorf("(%d,%d) overwritten outside the strip", y, x)
			}
		}
	}
}

// TestSetSharedBorder_ComposesWithBorderingChunk pins the protocol the
// chunked driver uses: stitching through a stand-in equals stitching
// from the real neighbour.
func TestSetSharedBorder_ComposesWithBorderingChunk(t *testing.T) {
	west := mustParse(t, `
	0 1 2
	3 4 5
	`)

	direct, _ := NewMap(2, 3)
	if err := direct.SetSharedBorder(west, tile.West, 1); err != nil {
		t.Fatalf("direct stitch failed: %v", err)
	}

	standIn, err := west.BorderingChunk(tile.East, 1)
	if err != nil {
		t.Fatalf("BorderingChunk failed: %v", err)
	}

	// The stand-in for west's eastern neighbour IS the seeded template.
	if standIn.String() != direct.String() {
		t.Errorf("stand-in template differs from direct stitch:\n%s\nvs\n%s",
			standIn.String(), direct.String())
	}
}

// TestSetSharedBorder_DimensionMismatch rejects perpendicular size skew.
func TestSetSharedBorder_DimensionMismatch(t *testing.T) {
	a, _ := NewMap(2, 3)
	b, _ := NewMap(2, 4)
	if err := a.SetSharedBorder(b, tile.North, 1); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("width skew on North: want ErrDimensionMismatch, got %v", err)
	}

	c, _ := NewMap(5, 3)
	if err := a.SetSharedBorder(c, tile.West, 1); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("height skew on West: want ErrDimensionMismatch, got %v", err)
	}
}
