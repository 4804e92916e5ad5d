package wfc

import (
	"fmt"

	"github.com/katalvlaran/wavemap/tile"
)

// revise removes from cell a every tile u with no supporting tile left
// in cell b's domain along d (the direction from a to b). Reports
// whether anything was removed; the caller checks sizes[a] afterwards.
//
// Singleton cells are NOT skipped: a pinned seed facing an incompatible
// neighbour must empty and surface as a contradiction rather than
// survive unexamined. A singleton b takes the specialised path of one
// mask lookup per candidate, the common case right after a collapse.
// Complexity: O(|domain[a]| · N/64) in the general case.
func (s *solver) revise(a, b int, d tile.Direction) bool {
	if s.sizes[a] == 0 {
		return false
	}

	domA, domB := s.domains[a], s.domains[b]
	removed := 0
	if s.sizes[b] == 1 {
		v, _ := domB.NextSet(0)
		for u, ok := domA.NextSet(0); ok; u, ok = domA.NextSet(u + 1) {
			if !s.rules.Mask(int(u), d).Test(v) {
				domA.Clear(u)
				removed++
			}
		}
	} else {
		for u, ok := domA.NextSet(0); ok; u, ok = domA.NextSet(u + 1) {
			if s.rules.Mask(int(u), d).IntersectionCardinality(domB) == 0 {
				domA.Clear(u)
				removed++
			}
		}
	}
	if removed == 0 {
		return false
	}
	s.sizes[a] -= removed

	return true
}

// drain runs AC-3 over whatever arcs are queued, enqueueing follow-up
// arcs for every shrunk cell. Arcs are processed strictly FIFO. Returns
// the cells whose domain size changed, deduplicated via generation
// stamps so the hot loop never allocates.
// Fails with ErrContradiction when a domain empties and ErrIterationLimit
// when the revision budget runs out.
func (s *solver) drain() ([]int, error) {
	s.gen++
	s.affected = s.affected[:0]

	iter := 0
	for head := 0; head < len(s.queue); head++ {
		a := s.queue[head]
		iter++
		if iter > s.opts.MaxIterations {
			return nil, fmt.Errorf("%w: %d revisions", ErrIterationLimit, iter)
		}

		if !s.revise(a.target, a.source, a.dir) {
			continue
		}
		if s.sizes[a.target] == 0 {
			return nil, s.contradictionAt(a.target)
		}
		if s.mark[a.target] != s.gen {
			s.mark[a.target] = s.gen
			s.affected = append(s.affected, a.target)
		}
		for _, nb := range s.nbs[a.target] {
			if nb.idx != a.source {
				s.queue = append(s.queue, arc{target: nb.idx, source: a.target, dir: nb.opp})
			}
		}
	}

	return s.affected, nil
}

// propagate runs AC-3 seeded from one freshly collapsed (or pinned)
// cell: all arcs entering its neighbours from it.
func (s *solver) propagate(seed int) ([]int, error) {
	s.queue = s.queue[:0]
	for _, nb := range s.nbs[seed] {
		s.queue = append(s.queue, arc{target: nb.idx, source: seed, dir: nb.opp})
	}

	return s.drain()
}

// initialPropagate runs AC-3 seeded with every arc of the grid (each
// participating cell constrains every participating neighbour), pruning
// domains to full arc consistency before the first decision. Arcs are
// enqueued row-major by source cell, so the first cell a seeded
// conflict empties is the later of the two seeds in scan order.
func (s *solver) initialPropagate() error {
	s.queue = s.queue[:0]
	for idx := range s.domains {
		if !s.active[idx] {
			continue
		}
		for _, nb := range s.nbs[idx] {
			s.queue = append(s.queue, arc{target: nb.idx, source: idx, dir: nb.opp})
		}
	}

	_, err := s.drain()

	return err
}
