// Package atlas error vocabulary. All failures are sentinel-wrapped
// values; callers discriminate with errors.Is.
package atlas

import "errors"

var (
	// ErrInvalidArgs indicates a geometric constraint violation: zero
	// sizes, overlap not smaller than the cut size, an example image
	// smaller than one patch, or an unusable transform list.
	ErrInvalidArgs = errors.New("atlas: invalid arguments")

	// ErrInvalidAtlas indicates an inconsistent atlas: empty, duplicate
	// patches, a non-positive frequency, an asymmetric adjacency
	// relation, or a malformed manifest.
	ErrInvalidAtlas = errors.New("atlas: invalid atlas")

	// ErrTileIndex indicates a tile index outside [0, N).
	ErrTileIndex = errors.New("atlas: tile index out of range")
)
