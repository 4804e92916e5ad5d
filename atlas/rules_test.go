package atlas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wavemap/atlas"
	"github.com/katalvlaran/wavemap/tile"
)

// checkerboardRelation is the 2-tile relation allowing only unlike
// neighbours in every direction.
func checkerboardRelation() (east, north [][]bool) {
	east = [][]bool{{false, true}, {true, false}}
	north = [][]bool{{false, true}, {true, false}}

	return east, north
}

func TestNewRules_SymmetryByConstruction(t *testing.T) {
	east, north := checkerboardRelation()
	r, err := atlas.NewRules(east, north, []int{1, 1})
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	// u ∈ mask[t][d] ⇔ t ∈ mask[u][opposite(d)], spelled out for all pairs.
	for tIdx := 0; tIdx < r.Len(); tIdx++ {
		for u := 0; u < r.Len(); u++ {
			for _, d := range tile.Directions {
				assert.Equal(t,
					r.Allowed(tIdx, u, d),
					r.Allowed(u, tIdx, d.Opposite()),
					"symmetry broken for (%d,%d,%s)", tIdx, u, d)
			}
		}
	}

	// Checkerboard semantics: only unlike pairs allowed.
	for _, d := range tile.Directions {
		assert.False(t, r.Allowed(0, 0, d))
		assert.False(t, r.Allowed(1, 1, d))
		assert.True(t, r.Allowed(0, 1, d))
		assert.True(t, r.Allowed(1, 0, d))
	}
}

func TestNewRules_Rejects(t *testing.T) {
	east, north := checkerboardRelation()

	_, err := atlas.NewRules(east, north, []int{1, 0})
	assert.ErrorIs(t, err, atlas.ErrInvalidAtlas, "zero frequency")

	_, err = atlas.NewRules(east, north, []int{1, -2})
	assert.ErrorIs(t, err, atlas.ErrInvalidAtlas, "negative frequency")

	_, err = atlas.NewRules(east, north, nil)
	assert.ErrorIs(t, err, atlas.ErrInvalidAtlas, "no tiles")

	_, err = atlas.NewRules(east[:1], north, []int{1, 1})
	assert.ErrorIs(t, err, atlas.ErrInvalidAtlas, "short east relation")
}

// TestFromDirectional_AcceptsSymmetric feeds a symmetric 4-direction
// relation and expects clean construction.
func TestFromDirectional_AcceptsSymmetric(t *testing.T) {
	e, n := checkerboardRelation()
	// South and west mirror north and east for this symmetric relation.
	allowed := [tile.NumDirections][][]bool{}
	allowed[tile.North.Index()] = n
	allowed[tile.East.Index()] = e
	allowed[tile.South.Index()] = n
	allowed[tile.West.Index()] = e

	r, err := atlas.FromDirectional(allowed, []int{2, 3})
	require.NoError(t, err)
	require.NoError(t, r.Validate())
	assert.Equal(t, []int{2, 3}, r.Frequencies())
}

// TestFromDirectional_RejectsAsymmetric flips a single bit of a valid
// relation and expects ErrInvalidAtlas.
func TestFromDirectional_RejectsAsymmetric(t *testing.T) {
	e, n := checkerboardRelation()
	south := [][]bool{{false, true}, {true, false}}
	west := [][]bool{{false, true}, {true, false}}

	// Claim tile 0 allows tile 0 to the north without the southern echo.
	n[0][0] = true

	allowed := [tile.NumDirections][][]bool{}
	allowed[tile.North.Index()] = n
	allowed[tile.East.Index()] = e
	allowed[tile.South.Index()] = south
	allowed[tile.West.Index()] = west

	_, err := atlas.FromDirectional(allowed, []int{1, 1})
	assert.ErrorIs(t, err, atlas.ErrInvalidAtlas)
}

func TestRules_Row(t *testing.T) {
	east, north := checkerboardRelation()
	r, err := atlas.NewRules(east, north, []int{1, 1})
	require.NoError(t, err)

	assert.Equal(t, []bool{false, true}, r.Row(0, tile.East))
	assert.Equal(t, []bool{true, false}, r.Row(1, tile.North))
	assert.Equal(t, []bool{false, true}, r.Row(0, tile.South))
	assert.Equal(t, []bool{false, true}, r.Row(0, tile.West))
}
