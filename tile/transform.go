package tile

// Transform identifies one of the eight symmetries of the square
// (the dihedral group D4). Applying every Transform in AllTransforms to
// a patch enumerates each distinct orientation exactly once.
type Transform int

const (
	// Identity leaves the patch unchanged.
	Identity Transform = iota
	// Rotate90 rotates a quarter turn clockwise.
	Rotate90
	// Rotate180 rotates a half turn.
	Rotate180
	// Rotate270 rotates a quarter turn counter-clockwise.
	Rotate270
	// FlipHorizontal mirrors across the vertical axis (left↔right).
	FlipHorizontal
	// FlipVertical mirrors across the horizontal axis (top↔bottom).
	FlipVertical
	// Transpose mirrors across the main diagonal.
	Transpose
	// AntiTranspose mirrors across the anti-diagonal.
	AntiTranspose
)

// AllTransforms lists every symmetry, Identity first.
var AllTransforms = []Transform{
	Identity,
	Rotate90,
	Rotate180,
	Rotate270,
	FlipHorizontal,
	FlipVertical,
	Transpose,
	AntiTranspose,
}

// IdentityOnly is the transform list that disables symmetry expansion.
var IdentityOnly = []Transform{Identity}

// String returns a stable lowercase name for t.
func (t Transform) String() string {
	switch t {
	case Identity:
		return "identity"
	case Rotate90:
		return "rotate90"
	case Rotate180:
		return "rotate180"
	case Rotate270:
		return "rotate270"
	case FlipHorizontal:
		return "flip-horizontal"
	case FlipVertical:
		return "flip-vertical"
	case Transpose:
		return "transpose"
	case AntiTranspose:
		return "anti-transpose"
	}

	return "invalid"
}

// source maps destination coordinates (x, y) on an n-sided square to the
// source coordinates the transform reads from.
func (t Transform) source(x, y, n int) (sx, sy int) {
	m := n - 1
	switch t {
	case Rotate90:
		return y, m - x
	case Rotate180:
		return m - x, m - y
	case Rotate270:
		return m - y, x
	case FlipHorizontal:
		return m - x, y
	case FlipVertical:
		return x, m - y
	case Transpose:
		return y, x
	case AntiTranspose:
		return m - y, m - x
	default: // Identity
		return x, y
	}
}

// Apply returns a new Patch holding p transformed by t. The Identity
// transform still copies, so the result never aliases p.
// Complexity: O(side²).
func (t Transform) Apply(p *Patch) *Patch {
	n := p.side
	pix := make([]byte, len(p.pix))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			sx, sy := t.source(x, y, n)
			copy(pix[4*(y*n+x):4*(y*n+x)+4], p.at(sx, sy))
		}
	}

	return fromPix(n, pix)
}
