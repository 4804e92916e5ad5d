package main

import (
	"flag"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/wavemap/atlas"
	"github.com/katalvlaran/wavemap/grid"
	"github.com/katalvlaran/wavemap/wfc"
)

// runCollapse solves one map against an atlas and renders the result.
func runCollapse(args []string) error {
	fs := flag.NewFlagSet("collapse", flag.ExitOnError)
	input := fs.String("i", "", "atlas directory")
	tileSize := fs.Int("tile-size", 1, "tile interior size in pixels")
	borderSize := fs.Int("border-size", 1, "tile border size in pixels")
	mapIn := fs.String("map", "", "template map file (text)")
	var dims size
	fs.Var(&dims, "size", "empty template dimensions as WxH (alternative to -map)")
	output := fs.String("o", "", "output image (PNG)")
	mapOut := fs.String("map-out", "", "also write the collapsed map as text")
	algorithm := fs.String("algorithm", "fast", "solver: fast|backtracking")
	seed := fs.Int64("seed", 0, "random seed (0 selects the fixed default)")
	v := fs.Bool("v", false, "verbose output with progress")
	if err := fs.Parse(args); err != nil {
		return err
	}
	verbose(*v)
	if *input == "" || *output == "" {
		return fmt.Errorf("collapse: -i and -o are required")
	}

	a, err := atlas.Load(*input, *tileSize, *borderSize)
	if err != nil {
		return err
	}
	logAtlas(a)

	var m *grid.Map
	switch {
	case *mapIn != "":
		if m, err = grid.Load(*mapIn); err != nil {
			return err
		}
	case dims.w > 0:
		if m, err = grid.NewMap(dims.h, dims.w); err != nil {
			return err
		}
	default:
		return fmt.Errorf("collapse: one of -map or -size is required")
	}

	opts := wfc.DefaultOptions()
	opts.Seed = *seed
	if opts.Algorithm, err = wfc.ParseAlgorithm(*algorithm); err != nil {
		return err
	}
	if *v {
		opts.Progress = progressSink()
	}

	log.WithFields(logrus.Fields{
		"algorithm": opts.Algorithm,
		"seed":      *seed,
		"map":       fmt.Sprintf("%dx%d", m.Width(), m.Height()),
	}).Debug("collapsing")

	out, err := wfc.Collapse(m, a, opts)
	if err != nil {
		return err
	}

	img, err := a.Render(out)
	if err != nil {
		return err
	}
	if err = savePNG(*output, img); err != nil {
		return err
	}
	if *mapOut != "" {
		if err = out.Save(*mapOut); err != nil {
			return err
		}
	}
	log.WithField("output", *output).Info("map collapsed")

	return nil
}

// progressSink adapts the solver's progress callback to a terminal bar.
// The bar is created on the first call, once the total is known.
func progressSink() func(done, total int) {
	var bar *progressbar.ProgressBar

	return func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "collapsing")
		}
		_ = bar.Set(done)
		if done == total {
			_ = bar.Finish()
		}
	}
}
