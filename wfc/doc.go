// Package wfc collapses maps against an atlas using constraint
// propagation and weighted random choice (Wave Function Collapse).
//
// The solver keeps one bit-set domain per cell, the tile indices still
// permitted there, and alternates two moves until every cell is
// decided: AC-3 arc revision prunes domains until each remaining value
// has support at every neighbour, then the cell with the lowest entropy
// (smallest domain popcount above one) collapses to a single tile drawn
// at random with frequency weights. Two variants share the machinery:
// the fast solver treats any contradiction as fatal, the backtracking
// solver snapshots each genuine decision and unwinds to the most recent
// one when propagation empties a domain, memoising values already tried.
//
// The solver is strictly single-threaded. All randomness flows through
// the caller-supplied Rng, drawn only at collapse points, so identical
// inputs and an identical random stream reproduce identical maps.
// Runtime is governed by explicit bounds: a propagation iteration limit,
// a backtrack attempt cap, and a wall-clock budget.
package wfc
