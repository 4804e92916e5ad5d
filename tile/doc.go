// Package tile provides the pixel-level vocabulary of wavemap:
// grid directions, square RGBA patches, and the dihedral symmetry
// transforms applied to them.
//
// A Patch is the unit both of learning and of placement. It is a square
// RGBA image of side interior+2·border; the central interior×interior
// region is what ends up on a rendered map, while the surrounding border
// ring exists only so that compatibility between neighbouring patches can
// be decided by pixel-exact strip comparison (see BorderView).
//
// All types in this package are immutable after construction; a Patch
// never aliases caller-owned pixel memory.
package tile
