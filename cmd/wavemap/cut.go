package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/wavemap/atlas"
	"github.com/katalvlaran/wavemap/tile"
)

// runCut learns an atlas from an example image and saves it.
func runCut(args []string) error {
	fs := flag.NewFlagSet("cut", flag.ExitOnError)
	input := fs.String("i", "", "input example image (PNG)")
	output := fs.String("o", "", "output atlas directory")
	tileSize := fs.Int("tile-size", 1, "tile interior size in pixels")
	borderSize := fs.Int("border-size", 1, "tile border size in pixels")
	overlap := fs.Int("overlap", 0, "extraction window overlap in pixels")
	transforms := fs.String("transforms", "all", "symmetry expansion: all|none")
	v := fs.Bool("v", false, "verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	verbose(*v)
	if *input == "" || *output == "" {
		return fmt.Errorf("cut: -i and -o are required")
	}

	var trs []tile.Transform
	switch *transforms {
	case "all":
		trs = tile.AllTransforms
	case "none":
		trs = tile.IdentityOnly
	default:
		return fmt.Errorf("cut: unknown -transforms value %q", *transforms)
	}

	img, err := loadImage(*input)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"input":   *input,
		"size":    fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()),
		"tile":    *tileSize,
		"border":  *borderSize,
		"overlap": *overlap,
	}).Debug("cutting tiles")

	b, err := atlas.NewBuilder(*tileSize, *borderSize)
	if err != nil {
		return err
	}
	if err = b.Ingest(img, *overlap, trs); err != nil {
		return err
	}
	a, err := b.Build()
	if err != nil {
		return err
	}

	logAtlas(a)
	if err = a.Save(*output); err != nil {
		return err
	}
	log.WithField("dir", *output).Info("atlas saved")

	return nil
}

// logAtlas prints a tile-count summary, plus per-tile frequencies at
// debug level.
func logAtlas(a *atlas.Atlas) {
	log.WithField("tiles", a.Len()).Info("atlas ready")
	for i, f := range a.Frequencies() {
		log.WithFields(logrus.Fields{"tile": i, "frequency": f}).Debug("tile")
	}
}
