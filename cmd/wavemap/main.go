// Command wavemap learns tile atlases from example images and generates
// maps from them by Wave Function Collapse.
//
// Usage:
//
//	wavemap cut [options]       Cut an example image into an atlas directory
//	wavemap rules [options]     Re-derive adjacency rules for an atlas directory
//	wavemap collapse [options]  Collapse a map against an atlas
//	wavemap chunks [options]    Collapse a large map chunk by chunk
//	wavemap print [options]     Pretty-print a map file
//
// Run "wavemap <command> -h" for command-specific options.
package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)

	var err error
	switch os.Args[1] {
	case "cut":
		err = runCut(os.Args[2:])
	case "rules":
		err = runRules(os.Args[2:])
	case "collapse":
		err = runCollapse(os.Args[2:])
	case "chunks":
		err = runChunks(os.Args[2:])
	case "print":
		err = runPrint(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()

		return
	default:
		fmt.Fprintf(os.Stderr, "wavemap: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "wavemap: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  wavemap cut -i example.png -o tiles/ -tile-size 1 -border-size 1 [-overlap 0] [-transforms all|none] [-v]
  wavemap rules -i tiles/ -tile-size 1 -border-size 1 [-o tiles/] [-v]
  wavemap collapse -i tiles/ -tile-size 1 -border-size 1 (-map in.txt | -size WxH) -o out.png [-map-out out.txt] [-algorithm fast|backtracking] [-seed N] [-v]
  wavemap chunks -i tiles/ -tile-size 1 -border-size 1 -chunk-size WxH -grid RxC -o out.png [-algorithm fast|backtracking] [-seed N] [-retries N] [-v]
  wavemap print -map in.txt

Run "wavemap <command> -h" for command-specific options.
`)
}

// verbose switches the logger to debug level.
func verbose(on bool) {
	if on {
		log.SetLevel(logrus.DebugLevel)
	}
}

// size is a flag.Value holding a "WxH" pair.
type size struct {
	w, h int
}

func (s *size) String() string {
	if s.w == 0 && s.h == 0 {
		return ""
	}

	return fmt.Sprintf("%dx%d", s.w, s.h)
}

func (s *size) Set(v string) error {
	parts := strings.Split(v, "x")
	if len(parts) != 2 {
		return fmt.Errorf("want WxH, got %q", v)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("bad width in %q: %w", v, err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("bad height in %q: %w", v, err)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("dimensions must be positive, got %q", v)
	}
	s.w, s.h = w, h

	return nil
}

// loadImage decodes one image file.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return img, nil
}

// savePNG writes img to path through a temp file renamed on success, so
// a failed run never leaves a partial image behind.
func savePNG(path string, img image.Image) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".wavemap-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	if err = png.Encode(f, img); err == nil {
		err = f.Close()
	} else {
		f.Close()
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
