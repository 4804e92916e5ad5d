package atlas

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/wavemap/tile"
)

// ManifestName is the atlas manifest file inside an atlas directory.
const ManifestName = "tiles.txt"

// indexWidth returns the zero-pad width for n tile filenames: the digit
// count of n−1, at least one.
func indexWidth(n int) int {
	w := 1
	for v := n - 1; v >= 10; v /= 10 {
		w++
	}

	return w
}

// tileFileName returns the canonical patch filename for tile i of n.
func tileFileName(i, n int) string {
	return fmt.Sprintf("%0*d.png", indexWidth(n), i)
}

// rowTokens renders one adjacency row as N space-separated 0/1 tokens.
func rowTokens(row []bool) string {
	var sb strings.Builder
	sb.Grow(2 * len(row))
	for i, v := range row {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// Save writes the atlas into dir: one PNG per patch, named by
// zero-padded tile index, plus the tiles.txt manifest. Each manifest
// line holds the patch path, its frequency, the east adjacency row and
// the north adjacency row. The manifest is written to a temporary file
// and renamed into place, so a failed save never leaves a partial
// manifest behind.
// Complexity: O(N·side² + N²).
func (a *Atlas) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("atlas: save %s: %w", dir, err)
	}

	n := a.Len()
	for i, p := range a.patches {
		if err := writePNG(filepath.Join(dir, tileFileName(i, n)), p.Image()); err != nil {
			return err
		}
	}

	var sb strings.Builder
	sb.WriteString("# wavemap atlas manifest\n")
	sb.WriteString("# <tile png> <frequency> <east row> <north row>\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "%s %d %s %s\n",
			tileFileName(i, n),
			a.rules.freqs[i],
			rowTokens(a.rules.Row(i, tile.East)),
			rowTokens(a.rules.Row(i, tile.North)))
	}

	manifest := filepath.Join(dir, ManifestName)
	tmp, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return fmt.Errorf("atlas: save %s: %w", manifest, err)
	}
	tmpName := tmp.Name()
	if _, err = tmp.WriteString(sb.String()); err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}
	if err == nil {
		err = os.Rename(tmpName, manifest)
	}
	if err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("atlas: save %s: %w", manifest, err)
	}

	return nil
}

// writePNG encodes img to path via a temporary file renamed on success.
func writePNG(path string, img image.Image) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".tile-*")
	if err != nil {
		return fmt.Errorf("atlas: write %s: %w", path, err)
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

		return fmt.Errorf("atlas: write %s: %w", path, err)
	}

	return nil
}

// manifestLine is one parsed tiles.txt record.
type manifestLine struct {
	path  string
	freq  int
	east  []bool
	north []bool
}

// parseManifest decodes tiles.txt content: blank lines and # comments
// ignored, each record `<path> <freq> <east row> <north row>` with the
// rows holding N 0/1 tokens each. The record count fixes N; every line
// must agree.
func parseManifest(content string) ([]manifestLine, error) {
	var lines []manifestLine
	for _, raw := range strings.Split(content, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		fields := strings.Fields(raw)
		if len(fields) < 4 || (len(fields)-2)%2 != 0 {
			return nil, fmt.Errorf("%w: manifest line %q has %d fields", ErrInvalidAtlas, raw, len(fields))
		}
		n := (len(fields) - 2) / 2
		freq, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: bad frequency %q", ErrInvalidAtlas, fields[1])
		}
		parseRow := func(toks []string) ([]bool, error) {
			row := make([]bool, len(toks))
			for i, tok := range toks {
				switch tok {
				case "0":
				case "1":
					row[i] = true
				default:
					return nil, fmt.Errorf("%w: bad adjacency token %q", ErrInvalidAtlas, tok)
				}
			}

			return row, nil
		}
		east, err := parseRow(fields[2 : 2+n])
		if err != nil {
			return nil, err
		}
		north, err := parseRow(fields[2+n:])
		if err != nil {
			return nil, err
		}
		lines = append(lines, manifestLine{path: fields[0], freq: freq, east: east, north: north})
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty manifest", ErrInvalidAtlas)
	}
	for i, ln := range lines {
		if len(ln.east) != len(lines) {
			return nil, fmt.Errorf("%w: line %d declares %d tiles, manifest holds %d",
				ErrInvalidAtlas, i, len(ln.east), len(lines))
		}
	}

	return lines, nil
}

// Load reads an atlas directory written by Save (or assembled by hand in
// the same format): tiles.txt plus the patch PNGs it references, with
// paths resolved relative to dir. South and west adjacency are derived
// from the east and north rows by symmetry. The result is validated:
// positive frequencies, distinct patches, square patches of side
// interior + 2·border.
// Returns ErrInvalidAtlas on semantic violations and wraps I/O and
// decode failures with their path.
func Load(dir string, interior, border int) (*Atlas, error) {
	if interior <= 0 || border <= 0 {
		return nil, fmt.Errorf("%w: interior=%d border=%d", ErrInvalidArgs, interior, border)
	}

	manifest := filepath.Join(dir, ManifestName)
	content, err := os.ReadFile(manifest)
	if err != nil {
		return nil, fmt.Errorf("atlas: load %s: %w", manifest, err)
	}
	lines, err := parseManifest(string(content))
	if err != nil {
		return nil, err
	}

	n := len(lines)
	patches := make([]*tile.Patch, n)
	freqs := make([]int, n)
	east := make([][]bool, n)
	north := make([][]bool, n)
	side := interior + 2*border
	for i, ln := range lines {
		path := filepath.Join(dir, filepath.FromSlash(ln.path))
		img, err := readPNG(path)
		if err != nil {
			return nil, err
		}
		bounds := img.Bounds()
		if bounds.Dx() != side || bounds.Dy() != side {
			return nil, fmt.Errorf("%w: %s is %dx%d, want %dx%d",
				ErrInvalidAtlas, ln.path, bounds.Dx(), bounds.Dy(), side, side)
		}
		p, err := tile.FromImage(img, bounds)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidAtlas, ln.path, err)
		}
		patches[i] = p
		freqs[i] = ln.freq
		east[i] = ln.east
		north[i] = ln.north
	}

	rules, err := NewRules(east, north, freqs)
	if err != nil {
		return nil, err
	}

	return newAtlas(interior, border, patches, rules)
}

// readPNG decodes one image file.
func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("atlas: read %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("atlas: decode %s: %w", path, err)
	}

	return img, nil
}
