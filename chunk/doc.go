// Package chunk generates large maps as a grid of independently solved
// chunks stitched along shared borders.
//
// Chunks are solved in row-major order. Before a chunk is solved, the
// border strips it shares with its already-solved north and west
// neighbours are pinned to the neighbours' cells, so the solver treats
// the seam as seeded constraints and the chunks agree wherever they
// meet. Each chunk render is trimmed and composed into one final image.
//
// A failed chunk may be retried with a fresh random stream derived from
// the base seed; persistent failure is reported with the chunk's
// coordinates.
package chunk
