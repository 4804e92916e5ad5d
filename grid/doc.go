// Package grid provides the cell and map primitives of wavemap.
//
// A Map is an owned, rectangular 2D grid of Cells. Each Cell is one of
// three variants: Fixed (collapsed to a concrete tile index), Wildcard
// (any tile permitted), or Ignore (excluded from generation entirely).
//
// Maps round-trip through a whitespace-separated text format (one row
// per line, `*` for Wildcard, `!` for Ignore, a nonnegative integer for
// Fixed) with blank lines and `#` comments ignored. Border-stitching
// helpers (BorderingChunk, SetSharedBorder) support chunked generation,
// where neighbouring chunks pin a shared strip of equal cells.
package grid
