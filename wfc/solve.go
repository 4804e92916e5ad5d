package wfc

import (
	"errors"
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/wavemap/atlas"
	"github.com/katalvlaran/wavemap/grid"
)

// Collapse solves the template map against the atlas: every Wildcard
// cell is decided to a Fixed tile consistent with the adjacency rules,
// Fixed cells act as pinned seeds, and Ignore cells are left untouched
// with no constraint crossing them.
//
// The input map is never mutated; the result is a fresh map. Identical
// inputs with an identical Rng stream produce identical results.
//
// Failure modes: ErrContradiction (fast), ErrBacktrackExhausted
// (backtracking), ErrIterationLimit, ErrTimeout, ErrTileIndex,
// ErrNilInput, ErrOptionViolation.
func Collapse(m *grid.Map, a *atlas.Atlas, opts Options) (*grid.Map, error) {
	if m == nil || a == nil {
		return nil, ErrNilInput
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s, err := newSolver(m, a, opts)
	if err != nil {
		return nil, err
	}
	if opts.Budget > 0 {
		s.deadline = time.Now().Add(opts.Budget)
	}

	if err = s.initialPropagate(); err != nil {
		if opts.Algorithm == Backtracking && errors.Is(err, ErrContradiction) {
			// A seeded contradiction has no decision frame to undo.
			return nil, fmt.Errorf("%w: %v", ErrBacktrackExhausted, err)
		}

		return nil, err
	}

	s.populateBuckets()

	if opts.Algorithm == Backtracking {
		err = s.runBacktracking()
	} else {
		err = s.runFast()
	}
	if err != nil {
		return nil, err
	}

	return s.emit(m)
}

// populateBuckets files every undecided cell and fixes the progress
// baseline.
func (s *solver) populateBuckets() {
	s.total = 0
	for idx, sz := range s.sizes {
		if s.active[idx] && sz > 1 {
			s.buckets.push(idx, sz)
			s.total++
		}
	}
	s.base = s.collapsedCount()
}

// selectCell pops the first-inserted cell of the lowest entropy bucket,
// re-verifying the cached size against the real popcount and refiling
// on mismatch, exactly once per dequeue.
func (s *solver) selectCell() (int, bool) {
	for {
		c, k, ok := s.buckets.popLowest()
		if !ok {
			return 0, false
		}
		actual := int(s.domains[c].Count())
		if actual != s.sizes[c] {
			s.sizes[c] = actual
		}
		if s.sizes[c] != k {
			if s.sizes[c] > 1 {
				s.buckets.push(c, s.sizes[c])
			}

			continue
		}

		return c, true
	}
}

// pick draws one candidate from cell c's domain, skipping tiles in the
// tried set (nil means none). Candidates are enumerated in ascending
// tile order and weighted by atlas frequency. A zero weight sum falls
// back to a uniform draw; a validated atlas cannot produce one.
// Returns -1 when no candidate remains.
func (s *solver) pick(c int, tried *bitset.BitSet) int {
	s.optBuf = s.optBuf[:0]
	s.wBuf = s.wBuf[:0]
	sum := 0
	freqs := s.rules.Frequencies()
	dom := s.domains[c]
	for u, ok := dom.NextSet(0); ok; u, ok = dom.NextSet(u + 1) {
		if tried != nil && tried.Test(u) {
			continue
		}
		s.optBuf = append(s.optBuf, int(u))
		s.wBuf = append(s.wBuf, freqs[u])
		sum += freqs[u]
	}
	if len(s.optBuf) == 0 {
		return -1
	}
	if sum == 0 {
		return s.optBuf[s.opts.Rng.IntN(len(s.optBuf))]
	}

	return s.optBuf[s.opts.Rng.WeightedIndex(s.wBuf)]
}

// commit collapses cell c to choice and advances the progress counter.
func (s *solver) commit(c, choice int) {
	s.domains[c].ClearAll()
	s.domains[c].Set(uint(choice))
	s.sizes[c] = 1
	s.buckets.remove(c)
	s.done++
	if s.opts.Progress != nil {
		s.opts.Progress(s.done, s.total)
	}
}

// rebucket refiles every cell whose size changed during a propagation
// run.
func (s *solver) rebucket(affected []int) {
	for _, idx := range affected {
		s.buckets.remove(idx)
		if s.sizes[idx] > 1 {
			s.buckets.push(idx, s.sizes[idx])
		}
	}
}

// runFast is the no-recovery driver: lowest-entropy selection, weighted
// collapse, propagation; the first contradiction fails the solve.
func (s *solver) runFast() error {
	for {
		if err := s.checkDeadline(); err != nil {
			return err
		}
		c, ok := s.selectCell()
		if !ok {
			return nil
		}

		choice := s.pick(c, nil)
		s.commit(c, choice)

		affected, err := s.propagate(c)
		if err != nil {
			return err
		}
		s.rebucket(affected)
	}
}

// emit converts the solved state back into a map: every participating
// cell becomes Fixed with the single tile left in its domain, Ignore
// cells pass through unchanged.
func (s *solver) emit(template *grid.Map) (*grid.Map, error) {
	out := template.Clone()
	for idx := range s.domains {
		if !s.active[idx] {
			continue
		}
		if s.sizes[idx] != 1 {
			return nil, fmt.Errorf("%w at (%d,%d): %d candidates at emission",
				ErrContradiction, idx/s.w, idx%s.w, s.sizes[idx])
		}
		bit, ok := s.domains[idx].NextSet(0)
		if !ok {
			return nil, s.contradictionAt(idx)
		}
		if err := out.Set(idx/s.w, idx%s.w, grid.FixedCell(int(bit))); err != nil {
			return nil, err
		}
	}

	return out, nil
}
