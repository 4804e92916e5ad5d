package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/wavemap/atlas"
	"github.com/katalvlaran/wavemap/chunk"
	"github.com/katalvlaran/wavemap/wfc"
)

// runChunks generates a large image as a stitched grid of chunks.
func runChunks(args []string) error {
	fs := flag.NewFlagSet("chunks", flag.ExitOnError)
	input := fs.String("i", "", "atlas directory")
	tileSize := fs.Int("tile-size", 1, "tile interior size in pixels")
	borderSize := fs.Int("border-size", 1, "tile border size in pixels, also the shared chunk border width in cells")
	var chunkSize, gridSize size
	fs.Var(&chunkSize, "chunk-size", "chunk dimensions as WxH in cells")
	fs.Var(&gridSize, "grid", "chunk grid as RxC")
	output := fs.String("o", "", "output image (PNG)")
	algorithm := fs.String("algorithm", "fast", "solver: fast|backtracking")
	seed := fs.Int64("seed", 0, "random seed (0 selects the fixed default)")
	retries := fs.Int("retries", 2, "extra attempts per failed chunk")
	v := fs.Bool("v", false, "verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	verbose(*v)
	if *input == "" || *output == "" {
		return fmt.Errorf("chunks: -i and -o are required")
	}
	if chunkSize.w == 0 || gridSize.w == 0 {
		return fmt.Errorf("chunks: -chunk-size and -grid are required")
	}

	a, err := atlas.Load(*input, *tileSize, *borderSize)
	if err != nil {
		return err
	}
	logAtlas(a)

	opts := chunk.DefaultOptions()
	opts.ChunkHeight = chunkSize.h
	opts.ChunkWidth = chunkSize.w
	// -grid takes RxC: rows first.
	opts.GridRows = gridSize.w
	opts.GridCols = gridSize.h
	opts.BorderSize = *borderSize
	opts.Retries = *retries
	opts.Seed = *seed
	opts.Solver = wfc.DefaultOptions()
	if opts.Solver.Algorithm, err = wfc.ParseAlgorithm(*algorithm); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"chunk": fmt.Sprintf("%dx%d", opts.ChunkWidth, opts.ChunkHeight),
		"grid":  fmt.Sprintf("%dx%d", opts.GridRows, opts.GridCols),
		"seed":  *seed,
	}).Debug("generating chunks")

	img, err := chunk.GenerateImage(a, opts)
	if err != nil {
		return err
	}
	if err = savePNG(*output, img); err != nil {
		return err
	}
	log.WithField("output", *output).Info("chunked map generated")

	return nil
}
