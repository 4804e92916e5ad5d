package wfc

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// frame is one decision point on the backtracking stack: the cell
// decided, the values already tried there, and a full pre-decision
// snapshot of the domains and their sizes. Restoring a frame and
// re-deriving the buckets reproduces the exact state the decision was
// taken in, so the only memory a retry needs is the tried set.
type frame struct {
	cell    int
	tried   *bitset.BitSet
	domains []*bitset.BitSet
	sizes   []int
}

// snapshot captures the current domains and sizes into a new frame for
// cell c.
// Complexity: O(H·W·N/64).
func (s *solver) snapshot(c int) *frame {
	f := &frame{
		cell:    c,
		tried:   bitset.New(uint(s.n)),
		domains: make([]*bitset.BitSet, len(s.domains)),
		sizes:   make([]int, len(s.sizes)),
	}
	for i, d := range s.domains {
		f.domains[i] = d.Clone()
	}
	copy(f.sizes, s.sizes)

	return f
}

// restore rewinds the working state to the frame's snapshot and
// re-derives the entropy buckets and the progress counter. The frame
// keeps its snapshot, so the same decision point can be retried until
// its options run dry.
func (s *solver) restore(f *frame) {
	for i, d := range f.domains {
		d.Copy(s.domains[i])
	}
	copy(s.sizes, f.sizes)
	s.buckets.rebuild(s.sizes, s.active)
	s.done = s.collapsedCount() - s.base
}

// runBacktracking is the recovering driver. Each decision with more
// than one live option pushes a frame; a contradiction pops back to the
// most recent frame, restores its snapshot, and retries an untried
// value there. The stack depth is capped (once full, the oldest frame
// is dropped and its decision becomes permanent), and the total number
// of contradictions is capped across the whole run.
func (s *solver) runBacktracking() error {
	stack := make([]*frame, 0, s.opts.MaxBacktrackDepth)
	attempts := 0

	for {
		if err := s.checkDeadline(); err != nil {
			return err
		}
		c, ok := s.selectCell()
		if !ok {
			return nil
		}

		options := s.sizes[c]
		choice := s.pick(c, nil)

		if options > 1 {
			f := s.snapshot(c)
			f.tried.Set(uint(choice))
			if len(stack) >= s.opts.MaxBacktrackDepth && s.opts.MaxBacktrackDepth > 0 {
				copy(stack, stack[1:])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, f)
		}

		s.commit(c, choice)

		affected, err := s.propagate(c)
		if err == nil {
			s.rebucket(affected)

			continue
		}
		if !errors.Is(err, ErrContradiction) {
			return err
		}

		stack, attempts, err = s.backtrack(stack, attempts, err)
		if err != nil {
			return err
		}
	}
}

// backtrack unwinds the stack after a contradiction: restore the top
// frame, retry an untried value there, and keep unwinding while retries
// keep contradicting or frames run dry. Returns the surviving stack and
// the updated attempt count.
func (s *solver) backtrack(stack []*frame, attempts int, cause error) ([]*frame, int, error) {
	for {
		attempts++
		if attempts > s.opts.MaxBacktrackAttempts {
			return stack, attempts, fmt.Errorf("%w: %d attempts", ErrBacktrackExhausted, attempts-1)
		}
		if err := s.checkDeadline(); err != nil {
			return stack, attempts, err
		}

		// Walk down to the nearest frame that still has untried values.
		var (
			f      *frame
			choice int
		)
		for len(stack) > 0 {
			f = stack[len(stack)-1]
			s.restore(f)
			choice = s.pick(f.cell, f.tried)
			if choice >= 0 {
				break
			}
			stack = stack[:len(stack)-1]
			f = nil
		}
		if f == nil {
			return stack, attempts, fmt.Errorf("%w: no decisions left to undo (%v)",
				ErrBacktrackExhausted, cause)
		}

		f.tried.Set(uint(choice))
		s.commit(f.cell, choice)

		affected, err := s.propagate(f.cell)
		if err == nil {
			s.rebucket(affected)

			return stack, attempts, nil
		}
		if !errors.Is(err, ErrContradiction) {
			return stack, attempts, err
		}
		cause = err
	}
}
