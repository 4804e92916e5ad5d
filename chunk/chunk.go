package chunk

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/katalvlaran/wavemap/atlas"
	"github.com/katalvlaran/wavemap/grid"
	"github.com/katalvlaran/wavemap/tile"
	"github.com/katalvlaran/wavemap/wfc"
)

// Generate solves a GridRows×GridCols tiling of chunks in row-major
// order, pinning each chunk's shared border strips to the cells of its
// already-solved north and west neighbours before solving it. The
// returned slice is indexed chunks[row][col].
//
// Every chunk attempt runs on its own random stream derived from
// opts.Seed, so retries explore genuinely different collapses and the
// whole generation stays reproducible from one seed.
func Generate(a *atlas.Atlas, opts Options) ([][]*grid.Map, error) {
	if a == nil {
		return nil, wfc.ErrNilInput
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	chunks := make([][]*grid.Map, opts.GridRows)
	for cy := range chunks {
		chunks[cy] = make([]*grid.Map, opts.GridCols)
		for cx := range chunks[cy] {
			solved, err := solveChunk(a, opts, chunks, cy, cx)
			if err != nil {
				return nil, err
			}
			chunks[cy][cx] = solved
		}
	}

	return chunks, nil
}

// solveChunk builds the seeded template for chunk (cy,cx) and solves
// it, retrying with fresh streams up to the retry budget.
func solveChunk(a *atlas.Atlas, opts Options, chunks [][]*grid.Map, cy, cx int) (*grid.Map, error) {
	var lastErr error
	for attempt := 0; attempt <= opts.Retries; attempt++ {
		template, err := grid.NewMap(opts.ChunkHeight, opts.ChunkWidth)
		if err != nil {
			return nil, err
		}
		if cy > 0 {
			if err = template.SetSharedBorder(chunks[cy-1][cx], tile.North, opts.BorderSize); err != nil {
				return nil, err
			}
		}
		if cx > 0 {
			if err = template.SetSharedBorder(chunks[cy][cx-1], tile.West, opts.BorderSize); err != nil {
				return nil, err
			}
		}

		solverOpts := opts.Solver
		solverOpts.Rng = wfc.NewRand(wfc.DeriveSeed(opts.Seed, streamID(opts, cy, cx, attempt)))

		solved, err := wfc.Collapse(template, a, solverOpts)
		if err == nil {
			return solved, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: chunk (%d,%d) after %d attempts: %v",
		ErrChunkUnsat, cy, cx, opts.Retries+1, lastErr)
}

// streamID packs chunk coordinates and the attempt number into one
// stream identifier for seed derivation.
func streamID(opts Options, cy, cx, attempt int) uint64 {
	return uint64(cy*opts.GridCols+cx)<<16 | uint64(attempt)
}

// Compose renders every chunk, trims borderSize/2 pixels from each side
// of the rendered image, and lays the pieces out row-major into the
// final large image.
func Compose(a *atlas.Atlas, chunks [][]*grid.Map, borderSize int) (*image.RGBA, error) {
	if a == nil || len(chunks) == 0 || len(chunks[0]) == 0 {
		return nil, wfc.ErrNilInput
	}

	trim := borderSize / 2
	pieceH := chunks[0][0].Height()*a.InteriorSize() - 2*trim
	pieceW := chunks[0][0].Width()*a.InteriorSize() - 2*trim
	out := image.NewRGBA(image.Rect(0, 0, pieceW*len(chunks[0]), pieceH*len(chunks)))

	for cy, row := range chunks {
		for cx, m := range row {
			img, err := a.Render(m)
			if err != nil {
				return nil, err
			}
			src := image.Rect(trim, trim, img.Bounds().Max.X-trim, img.Bounds().Max.Y-trim)
			dst := image.Rect(cx*pieceW, cy*pieceH, (cx+1)*pieceW, (cy+1)*pieceH)
			draw.Draw(out, dst, img, src.Min, draw.Src)
		}
	}

	return out, nil
}

// GenerateImage is Generate followed by Compose.
func GenerateImage(a *atlas.Atlas, opts Options) (*image.RGBA, error) {
	chunks, err := Generate(a, opts)
	if err != nil {
		return nil, err
	}

	return Compose(a, chunks, opts.BorderSize)
}
