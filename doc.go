// Package wavemap generates 2D tile maps by example (Wave Function
// Collapse).
//
// 🌊 What is wavemap?
//
//	A deterministic, single-threaded library that learns from one small
//	reference image and fills maps of any size consistently with it:
//
//	  • Learner: slice the example into overlapping square patches,
//	    canonicalise under symmetries, tally frequencies, and derive
//	    pixel-exact adjacency rules
//	  • Solver: AC-3 constraint propagation over bit-set domains with
//	    entropy-ordered weighted collapse, fast or with chronological
//	    backtracking
//	  • Chunks: stitch arbitrarily large maps from independently solved
//	    chunks sharing pinned borders
//
// Everything is organised under five subpackages:
//
//	tile/   — directions, square RGBA patches, dihedral symmetries
//	grid/   — cells, maps, text round trip, border stitching
//	atlas/  — patch learning, adjacency rules, persistence, rendering
//	wfc/    — the constraint solver (fast and backtracking)
//	chunk/  — chunked generation of large maps
//
// The cmd/wavemap command wraps the pipeline in five verbs: cut, rules,
// collapse, chunks, print.
//
//	go get github.com/katalvlaran/wavemap
package wavemap
