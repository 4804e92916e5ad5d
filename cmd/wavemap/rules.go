package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/katalvlaran/wavemap/atlas"
	"github.com/katalvlaran/wavemap/tile"
)

// runRules re-derives the adjacency relation of an atlas directory from
// the patch pixels and rewrites the directory in canonical form. When a
// manifest is present its frequencies are kept; otherwise every patch
// starts at frequency 1.
func runRules(args []string) error {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)
	input := fs.String("i", "", "atlas directory to read")
	output := fs.String("o", "", "atlas directory to write (defaults to the input)")
	tileSize := fs.Int("tile-size", 1, "tile interior size in pixels")
	borderSize := fs.Int("border-size", 1, "tile border size in pixels")
	v := fs.Bool("v", false, "verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	verbose(*v)
	if *input == "" {
		return fmt.Errorf("rules: -i is required")
	}
	if *output == "" {
		*output = *input
	}

	patches, freqs, err := readAtlasDir(*input, *tileSize, *borderSize)
	if err != nil {
		return err
	}
	a, err := atlas.FromPatches(*tileSize, *borderSize, patches, freqs)
	if err != nil {
		return err
	}

	logAtlas(a)
	if err = a.Save(*output); err != nil {
		return err
	}
	log.WithField("dir", *output).Info("rules derived")

	return nil
}

// readAtlasDir loads the patches of an atlas directory. With a manifest
// present it delegates to atlas.Load, so the recorded frequencies
// survive; without one it reads every .png in name order at frequency 1.
func readAtlasDir(dir string, interior, border int) ([]*tile.Patch, []int, error) {
	if _, err := os.Stat(filepath.Join(dir, atlas.ManifestName)); err == nil {
		a, err := atlas.Load(dir, interior, border)
		if err != nil {
			return nil, nil, err
		}
		patches := make([]*tile.Patch, a.Len())
		for i := range patches {
			if patches[i], err = a.Patch(i); err != nil {
				return nil, nil, err
			}
		}

		return patches, a.Frequencies(), nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".png") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("rules: no tile images in %s", dir)
	}

	patches := make([]*tile.Patch, 0, len(names))
	freqs := make([]int, 0, len(names))
	for _, name := range names {
		img, err := loadImage(filepath.Join(dir, name))
		if err != nil {
			return nil, nil, err
		}
		p, err := tile.FromImage(img, img.Bounds())
		if err != nil {
			return nil, nil, fmt.Errorf("rules: %s: %w", name, err)
		}
		patches = append(patches, p)
		freqs = append(freqs, 1)
	}

	return patches, freqs, nil
}
