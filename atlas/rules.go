package atlas

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/wavemap/tile"
)

// Rules is the admissibility relation of an atlas: for each tile t and
// direction d, the bit-set of tiles allowed to appear in direction d
// from t, together with the tile frequency vector.
//
// Invariant (symmetry): u ∈ mask[t][d] ⇔ t ∈ mask[u][d.Opposite()].
// Rules are immutable after construction; the solver reads the masks
// concurrently with nothing else writing them.
type Rules struct {
	masks [][tile.NumDirections]*bitset.BitSet
	freqs []int
}

// checkFreqs rejects empty or non-positive frequency vectors.
func checkFreqs(n int, freqs []int) error {
	if n == 0 {
		return fmt.Errorf("%w: no tiles", ErrInvalidAtlas)
	}
	if len(freqs) != n {
		return fmt.Errorf("%w: %d tiles but %d frequencies", ErrInvalidAtlas, n, len(freqs))
	}
	for i, f := range freqs {
		if f <= 0 {
			return fmt.Errorf("%w: tile %d has frequency %d", ErrInvalidAtlas, i, f)
		}
	}

	return nil
}

// NewRules builds Rules from the east and north halves of the pairwise
// relation: east[t][u] means u may appear east of t, north[t][u] means
// u may appear north of t. West and south are derived by symmetry, so
// the symmetry invariant holds by construction.
// Returns ErrInvalidAtlas on shape or frequency violations.
// Complexity: O(N²).
func NewRules(east, north [][]bool, freqs []int) (*Rules, error) {
	n := len(freqs)
	if err := checkFreqs(n, freqs); err != nil {
		return nil, err
	}
	if len(east) != n || len(north) != n {
		return nil, fmt.Errorf("%w: adjacency rows do not match tile count %d", ErrInvalidAtlas, n)
	}

	r := &Rules{
		masks: make([][tile.NumDirections]*bitset.BitSet, n),
		freqs: append([]int(nil), freqs...),
	}
	for t := 0; t < n; t++ {
		if len(east[t]) != n || len(north[t]) != n {
			return nil, fmt.Errorf("%w: adjacency row %d has wrong length", ErrInvalidAtlas, t)
		}
		for d := range r.masks[t] {
			r.masks[t][d] = bitset.New(uint(n))
		}
	}
	for t := 0; t < n; t++ {
		for u := 0; u < n; u++ {
			if east[t][u] {
				r.masks[t][tile.East.Index()].Set(uint(u))
				r.masks[u][tile.West.Index()].Set(uint(t))
			}
			if north[t][u] {
				r.masks[t][tile.North.Index()].Set(uint(u))
				r.masks[u][tile.South.Index()].Set(uint(t))
			}
		}
	}

	return r, nil
}

// FromDirectional builds Rules from all four direction relations given
// explicitly and validates the symmetry invariant, rejecting any
// relation where u ∈ allowed[d][t] but t ∉ allowed[opposite(d)][u].
// Returns ErrInvalidAtlas on violations.
// Complexity: O(N²).
func FromDirectional(allowed [tile.NumDirections][][]bool, freqs []int) (*Rules, error) {
	n := len(freqs)
	if err := checkFreqs(n, freqs); err != nil {
		return nil, err
	}

	r := &Rules{
		masks: make([][tile.NumDirections]*bitset.BitSet, n),
		freqs: append([]int(nil), freqs...),
	}
	for t := 0; t < n; t++ {
		for _, d := range tile.Directions {
			if len(allowed[d.Index()]) != n || len(allowed[d.Index()][t]) != n {
				return nil, fmt.Errorf("%w: %s adjacency has wrong shape", ErrInvalidAtlas, d)
			}
		}
		for d := range r.masks[t] {
			r.masks[t][d] = bitset.New(uint(n))
		}
	}
	for t := 0; t < n; t++ {
		for _, d := range tile.Directions {
			for u := 0; u < n; u++ {
				if !allowed[d.Index()][t][u] {
					continue
				}
				if !allowed[d.Opposite().Index()][u][t] {
					return nil, fmt.Errorf(
						"%w: asymmetric adjacency: %d allows %d to the %s but not vice versa",
						ErrInvalidAtlas, t, u, d)
				}
				r.masks[t][d.Index()].Set(uint(u))
			}
		}
	}

	return r, nil
}

// Len returns the number of tiles N.
func (r *Rules) Len() int {
	return len(r.masks)
}

// Frequencies returns the tile frequency vector. Callers must not
// mutate it.
func (r *Rules) Frequencies() []int {
	return r.freqs
}

// Mask returns the bit-set of tiles allowed in direction d from t.
// Callers must not mutate it.
func (r *Rules) Mask(t int, d tile.Direction) *bitset.BitSet {
	return r.masks[t][d.Index()]
}

// Allowed reports whether u may appear in direction d from t.
// Complexity: O(1).
func (r *Rules) Allowed(t, u int, d tile.Direction) bool {
	return r.masks[t][d.Index()].Test(uint(u))
}

// Row materialises one direction row of the relation as booleans:
// out[u] = Allowed(t, u, d).
// Complexity: O(N).
func (r *Rules) Row(t int, d tile.Direction) []bool {
	n := r.Len()
	out := make([]bool, n)
	for u := 0; u < n; u++ {
		out[u] = r.Allowed(t, u, d)
	}

	return out
}

// Validate re-checks the symmetry invariant. Rules built through the
// package constructors always pass; this exists for invariant tests and
// post-load sanity checks.
// Complexity: O(N²).
func (r *Rules) Validate() error {
	n := r.Len()
	if n == 0 {
		return fmt.Errorf("%w: no tiles", ErrInvalidAtlas)
	}
	for t := 0; t < n; t++ {
		for _, d := range tile.Directions {
			for u, ok := r.masks[t][d.Index()].NextSet(0); ok; u, ok = r.masks[t][d.Index()].NextSet(u + 1) {
				if !r.masks[u][d.Opposite().Index()].Test(uint(t)) {
					return fmt.Errorf("%w: asymmetric adjacency between %d and %d along %s",
						ErrInvalidAtlas, t, u, d)
				}
			}
		}
	}

	return nil
}
