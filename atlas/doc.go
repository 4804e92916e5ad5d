// Package atlas learns tile atlases from example images and carries the
// adjacency rules the solver consumes.
//
// A Builder slices an example image into overlapping square patches,
// canonicalises them under a supplied set of symmetries, dedupes them by
// pixel-exact equality and tallies how often each one occurs. Build then
// derives the Rules (for every tile and direction, the bit-set of tiles
// whose facing border strips match pixel for pixel) and freezes the
// result into an immutable Atlas.
//
// An Atlas persists as a directory of numbered patch PNGs plus a
// line-oriented tiles.txt manifest recording frequencies and the east
// and north adjacency rows; south and west follow by symmetry. It also
// renders collapsed maps to RGBA images by tiling patch interiors.
package atlas
