// Package chunk options and sentinel errors.
package chunk

import (
	"errors"

	"github.com/katalvlaran/wavemap/wfc"
)

// Sentinel errors for chunked generation.
var (
	// ErrOptionViolation is returned for an invalid Options field.
	ErrOptionViolation = errors.New("chunk: invalid option")

	// ErrChunkUnsat indicates a chunk failed to solve within its retry
	// budget; the wrapped cause carries the solver failure.
	ErrChunkUnsat = errors.New("chunk: chunk unsatisfiable")
)

// Options configures chunked generation.
type Options struct {
	// ChunkHeight and ChunkWidth are the per-chunk map dimensions in
	// cells; both must be positive.
	ChunkHeight int
	ChunkWidth  int

	// GridRows and GridCols give the chunk tiling; both must be
	// positive.
	GridRows int
	GridCols int

	// BorderSize is the width in cells of the strip shared between
	// neighbouring chunks; it must be positive and fit inside a chunk.
	BorderSize int

	// Retries is how many additional attempts a failed chunk gets, each
	// with a fresh random stream. 0 means a single attempt.
	Retries int

	// Seed is the base seed; every chunk attempt derives its own
	// independent stream from it.
	Seed int64

	// Solver carries the per-chunk solve configuration. Its Rng field
	// is ignored: streams are derived from Seed.
	Solver wfc.Options
}

// DefaultOptions returns chunked-generation defaults: 16×16 chunks in a
// 2×2 grid, border 1, two retries, fast solver defaults.
func DefaultOptions() Options {
	return Options{
		ChunkHeight: 16,
		ChunkWidth:  16,
		GridRows:    2,
		GridCols:    2,
		BorderSize:  1,
		Retries:     2,
		Solver:      wfc.DefaultOptions(),
	}
}

// Validate checks option ranges.
func (o *Options) Validate() error {
	if o.ChunkHeight <= 0 || o.ChunkWidth <= 0 {
		return ErrOptionViolation
	}
	if o.GridRows <= 0 || o.GridCols <= 0 {
		return ErrOptionViolation
	}
	if o.BorderSize <= 0 || o.BorderSize > o.ChunkHeight || o.BorderSize > o.ChunkWidth {
		return ErrOptionViolation
	}
	if o.Retries < 0 {
		return ErrOptionViolation
	}

	return o.Solver.Validate()
}
