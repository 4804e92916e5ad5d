package wfc

import (
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/wavemap/atlas"
	"github.com/katalvlaran/wavemap/grid"
	"github.com/katalvlaran/wavemap/tile"
)

// neighbour is one precomputed in-bounds, participating neighbour of a
// cell: its flattened index, the direction from the owning cell to it,
// and the direction back.
type neighbour struct {
	idx int
	dir tile.Direction
	opp tile.Direction
}

// arc is one queued revision: prune target against source along dir,
// where dir points from target to source.
type arc struct {
	target int
	source int
	dir    tile.Direction
}

// solver holds the complete working state of one solve invocation.
// Every buffer lives here and is allocated once at solve entry; the
// revise/propagate hot paths only reuse them.
type solver struct {
	h, w, n int
	rules   *atlas.Rules
	opts    Options

	domains []*bitset.BitSet // candidate tiles per cell; empty for Ignore
	sizes   []int            // cached popcounts, sizes[i] == domains[i].Count()
	active  []bool           // cell participates (not Ignore)
	nbs     [][]neighbour

	buckets bucketQueue

	queue    []arc // FIFO arc storage, reused across propagation runs
	affected []int
	mark     []int // generation stamps backing the affected set
	gen      int

	optBuf []int // candidate scratch for weighted picks
	wBuf   []int

	deadline time.Time // zero when Budget == 0
	total    int       // cells to decide after initial propagation
	done     int       // decisions committed so far
	base     int       // collapsed active cells after initial propagation
}

// newSolver initialises domains, sizes, the participation mask, and the
// neighbour lists from the template map.
// Returns ErrTileIndex when a Fixed cell references a tile outside the
// atlas.
// Complexity: O(H·W·N/64) for the domain initialisation.
func newSolver(m *grid.Map, a *atlas.Atlas, opts Options) (*solver, error) {
	h, w, n := m.Height(), m.Width(), a.Len()
	size := h * w
	s := &solver{
		h: h, w: w, n: n,
		rules:    a.Rules(),
		opts:     opts,
		domains:  make([]*bitset.BitSet, size),
		sizes:    make([]int, size),
		active:   make([]bool, size),
		nbs:      make([][]neighbour, size),
		affected: make([]int, 0, size),
		mark:     make([]int, size),
		optBuf:   make([]int, 0, n),
		wBuf:     make([]int, 0, n),
	}

	full := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		full.Set(uint(i))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			switch c := m.At(y, x); c.Kind {
			case grid.Ignore:
				s.domains[idx] = bitset.New(uint(n))
			case grid.Fixed:
				if c.Tile < 0 || c.Tile >= n {
					return nil, fmt.Errorf("%w: cell (%d,%d) pins tile %d of %d",
						ErrTileIndex, y, x, c.Tile, n)
				}
				d := bitset.New(uint(n))
				d.Set(uint(c.Tile))
				s.domains[idx] = d
				s.sizes[idx] = 1
				s.active[idx] = true
			default: // Wildcard
				s.domains[idx] = full.Clone()
				s.sizes[idx] = n
				s.active[idx] = true
			}
		}
	}

	// Neighbour lists skip Ignore cells entirely: no constraint crosses
	// a hole.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !s.active[idx] {
				continue
			}
			for _, d := range tile.Directions {
				dy, dx := d.Delta()
				ny, nx := y+dy, x+dx
				if ny < 0 || ny >= h || nx < 0 || nx >= w {
					continue
				}
				nidx := ny*w + nx
				if s.active[nidx] {
					s.nbs[idx] = append(s.nbs[idx], neighbour{idx: nidx, dir: d, opp: d.Opposite()})
				}
			}
		}
	}

	s.queue = make([]arc, 0, 4*size)
	s.buckets.init(size, n)

	return s, nil
}

// checkDeadline enforces the wall-clock budget.
func (s *solver) checkDeadline() error {
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return fmt.Errorf("%w: budget %s", ErrTimeout, s.opts.Budget)
	}

	return nil
}

// collapsedCount tallies decided active cells; used to recompute the
// progress counter after a restore.
func (s *solver) collapsedCount() int {
	c := 0
	for i := range s.sizes {
		if s.active[i] && s.sizes[i] == 1 {
			c++
		}
	}

	return c
}

// contradictionAt wraps ErrContradiction with grid coordinates.
func (s *solver) contradictionAt(idx int) error {
	return fmt.Errorf("%w at (%d,%d)", ErrContradiction, idx/s.w, idx%s.w)
}

// bucketQueue groups undecided cells by entropy level (domain size) and
// yields the first-inserted cell of the lowest non-empty level. Entries
// go stale when a cell's size changes; popLowest skips them lazily by
// checking the cell's current level. Extraction order is therefore a
// pure function of the insertion history, which keeps solves
// reproducible from a seeded Rng.
type bucketQueue struct {
	lists [][]int // level k → FIFO of cell indices (k in [2..n])
	heads []int
	level []int // cell → level it currently belongs to; 0 = none
}

func (b *bucketQueue) init(cells, n int) {
	b.lists = make([][]int, n+1)
	b.heads = make([]int, n+1)
	b.level = make([]int, cells)
}

// push files cell under level k.
func (b *bucketQueue) push(cell, k int) {
	b.level[cell] = k
	b.lists[k] = append(b.lists[k], cell)
}

// remove detaches cell from whatever level it is filed under. The stale
// list entry is skipped on a later pop.
func (b *bucketQueue) remove(cell int) {
	b.level[cell] = 0
}

// popLowest returns the first-inserted live cell of the smallest
// non-empty level ≥ 2, detaching it.
func (b *bucketQueue) popLowest() (cell, k int, ok bool) {
	for k = 2; k < len(b.lists); k++ {
		for b.heads[k] < len(b.lists[k]) {
			c := b.lists[k][b.heads[k]]
			b.heads[k]++
			if b.level[c] == k {
				b.level[c] = 0

				return c, k, true
			}
		}
		// Level fully drained; reclaim the backing storage.
		b.lists[k] = b.lists[k][:0]
		b.heads[k] = 0
	}

	return 0, 0, false
}

// rebuild refiles every undecided active cell from scratch, row-major.
// Used after a backtracking restore.
func (b *bucketQueue) rebuild(sizes []int, active []bool) {
	for k := range b.lists {
		b.lists[k] = b.lists[k][:0]
		b.heads[k] = 0
	}
	for i := range b.level {
		b.level[i] = 0
	}
	for i, sz := range sizes {
		if active[i] && sz > 1 {
			b.push(i, sz)
		}
	}
}
