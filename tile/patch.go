package tile

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Sentinel errors for patch construction and views.
var (
	// ErrNotSquare indicates the source image region is not square.
	ErrNotSquare = errors.New("tile: patch image must be square")
	// ErrBadSide indicates the patch side does not equal interior+2·border.
	ErrBadSide = errors.New("tile: patch side must equal interior size plus twice the border size")
	// ErrBorderWidth indicates a border view wider than the patch allows.
	ErrBorderWidth = errors.New("tile: border view exceeds patch side")
)

// Patch is an immutable square RGBA pixel tile.
//
// Pixels are stored row-major, four bytes per pixel (R, G, B, A), with no
// row padding. Equality between patches is bit-exact over this buffer.
type Patch struct {
	side int
	pix  []byte
}

// NewPatch copies the rect-bounded region of img into a new Patch.
// The region must be square with side == interior + 2·border.
// Returns ErrNotSquare or ErrBadSide on geometry violations.
// Complexity: O(side²).
func NewPatch(img image.Image, rect image.Rectangle, interior, border int) (*Patch, error) {
	if rect.Dx() != rect.Dy() {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, rect.Dx(), rect.Dy())
	}
	side := interior + 2*border
	if interior <= 0 || border <= 0 || rect.Dx() != side {
		return nil, fmt.Errorf("%w: side=%d interior=%d border=%d", ErrBadSide, rect.Dx(), interior, border)
	}

	return FromImage(img, rect)
}

// FromImage copies the rect-bounded square region of img into a Patch
// without any interior/border geometry check. Returns ErrNotSquare if
// the region is not square.
// Complexity: O(side²).
func FromImage(img image.Image, rect image.Rectangle) (*Patch, error) {
	if rect.Dx() != rect.Dy() || rect.Dx() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, rect.Dx(), rect.Dy())
	}
	side := rect.Dx()
	pix := make([]byte, 4*side*side)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			pix[i+0] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			pix[i+3] = c.A
			i += 4
		}
	}

	return &Patch{side: side, pix: pix}, nil
}

// fromPix adopts an already-owned pixel buffer. Internal constructor for
// transforms; the buffer must not be shared afterwards.
func fromPix(side int, pix []byte) *Patch {
	return &Patch{side: side, pix: pix}
}

// Side returns the patch side length in pixels.
func (p *Patch) Side() int {
	return p.side
}

// Equal reports bit-exact pixel equality with q.
// Complexity: O(side²), with early exit on the first differing byte.
func (p *Patch) Equal(q *Patch) bool {
	return p.side == q.side && bytes.Equal(p.pix, q.pix)
}

// at returns the 4-byte pixel at (x, y). No bounds check; callers stay
// within [0, side).
func (p *Patch) at(x, y int) []byte {
	i := 4 * (y*p.side + x)

	return p.pix[i : i+4 : i+4]
}

// Image renders the whole patch as a freshly allocated *image.RGBA.
// Complexity: O(side²).
func (p *Patch) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.side, p.side))
	for y := 0; y < p.side; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+4*p.side], p.pix[4*y*p.side:4*(y+1)*p.side])
	}

	return img
}

// Interior returns the central region of the patch left after stripping
// a ring of the given border width, as a freshly allocated *image.RGBA.
// Returns ErrBorderWidth when 2·border ≥ side.
// Complexity: O(side²).
func (p *Patch) Interior(border int) (*image.RGBA, error) {
	if border < 0 || 2*border >= p.side {
		return nil, fmt.Errorf("%w: border=%d side=%d", ErrBorderWidth, border, p.side)
	}
	in := p.side - 2*border
	img := image.NewRGBA(image.Rect(0, 0, in, in))
	for y := 0; y < in; y++ {
		src := 4 * ((y+border)*p.side + border)
		copy(img.Pix[y*img.Stride:y*img.Stride+4*in], p.pix[src:src+4*in])
	}

	return img, nil
}

// BorderView returns the pixel strip on edge d, including the border
// overhang: the strip is 2·border pixels deep (the border ring itself
// plus the slice of interior that overlapping extraction shares with the
// neighbouring patch). Pixels are returned row-major relative to the
// patch, so two views compare equal iff the underlying strips match
// pixel for pixel.
// Returns ErrBorderWidth when 2·border > side.
// Complexity: O(side·border).
func (p *Patch) BorderView(d Direction, border int) ([]byte, error) {
	depth := 2 * border
	if border <= 0 || depth > p.side {
		return nil, fmt.Errorf("%w: border=%d side=%d", ErrBorderWidth, border, p.side)
	}

	out := make([]byte, 0, 4*depth*p.side)
	switch d {
	case North:
		out = append(out, p.pix[:4*depth*p.side]...)
	case South:
		out = append(out, p.pix[4*(p.side-depth)*p.side:]...)
	case West:
		for y := 0; y < p.side; y++ {
			row := 4 * y * p.side
			out = append(out, p.pix[row:row+4*depth]...)
		}
	case East:
		for y := 0; y < p.side; y++ {
			row := 4 * y * p.side
			out = append(out, p.pix[row+4*(p.side-depth):row+4*p.side]...)
		}
	}

	return out, nil
}
