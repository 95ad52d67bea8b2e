package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_IsOutOfBounds(t *testing.T) {
	g := NewGrid(DefaultSize)
	for r := 0; r < DefaultSize; r++ {
		for c := 0; c < DefaultSize; c++ {
			assert.False(t, g.IsOutOfBounds(At(r, c)), "(%d,%d)", r, c)
		}
	}

	testCases := []struct {
		Name  string
		Coord Coordinate
	}{
		{Name: "negative row", Coord: At(-1, 0)},
		{Name: "negative col", Coord: At(0, -1)},
		{Name: "row at size", Coord: At(6, 3)},
		{Name: "col at size", Coord: At(3, 6)},
		{Name: "far away", Coord: At(100, -100)},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.True(t, g.IsOutOfBounds(tc.Coord))
		})
	}
}

func TestGrid_PlaceVessel(t *testing.T) {
	g := NewGrid(DefaultSize)
	require.NoError(t, g.PlaceVessel(NewVessel(At(0, 0), 3, Horizontal)))

	for _, c := range []Coordinate{At(0, 0), At(0, 1), At(0, 2)} {
		assert.Equal(t, Ship, g.Cell(c))
	}
	// The buffer ring is reserved but not painted.
	assert.True(t, g.isOccupied(At(1, 3)))
	assert.Equal(t, Empty, g.Cell(At(1, 3)))
	assert.False(t, g.isOccupied(At(2, 0)))
	assert.Len(t, g.Vessels(), 1)
}

func TestGrid_PlaceVesselRejects(t *testing.T) {
	testCases := []struct {
		Name   string
		Vessel *Vessel
	}{
		{Name: "overlap", Vessel: NewVessel(At(2, 1), 2, Vertical)},
		{Name: "touching side", Vessel: NewVessel(At(3, 2), 1, Horizontal)},
		{Name: "touching corner", Vessel: NewVessel(At(1, 4), 1, Horizontal)},
		{Name: "runs off the right edge", Vessel: NewVessel(At(5, 4), 3, Horizontal)},
		{Name: "runs off the bottom edge", Vessel: NewVessel(At(4, 0), 3, Vertical)},
		{Name: "bow outside", Vessel: NewVessel(At(-1, 0), 1, Horizontal)},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			g := NewGrid(DefaultSize)
			require.NoError(t, g.PlaceVessel(NewVessel(At(2, 1), 3, Horizontal)))
			before := g.ShipBits()
			occupied := len(g.occupied)

			err := g.PlaceVessel(tc.Vessel)
			require.ErrorIs(t, err, ErrInvalidPlacement)

			assert.Equal(t, before, g.ShipBits())
			assert.Len(t, g.occupied, occupied)
			assert.Len(t, g.Vessels(), 1)
			for r := 0; r < DefaultSize; r++ {
				for c := 0; c < DefaultSize; c++ {
					want := Empty
					if r == 2 && c >= 1 && c <= 3 {
						want = Ship
					}
					assert.Equal(t, want, g.Cell(At(r, c)), "(%d,%d)", r, c)
				}
			}
		})
	}
}

func TestGrid_FireTwice(t *testing.T) {
	g := NewGrid(DefaultSize)
	require.NoError(t, g.PlaceVessel(NewVessel(At(4, 4), 2, Horizontal)))
	g.ResetTargetingMemory()

	out, err := g.Fire(At(0, 0))
	require.NoError(t, err)
	assert.Equal(t, OutcomeMiss, out)
	assert.Equal(t, Miss, g.Cell(At(0, 0)))

	_, err = g.Fire(At(0, 0))
	assert.ErrorIs(t, err, ErrAlreadyTargeted)

	out, err = g.Fire(At(4, 4))
	require.NoError(t, err)
	assert.Equal(t, OutcomeHit, out)

	_, err = g.Fire(At(4, 4))
	assert.ErrorIs(t, err, ErrAlreadyTargeted)
}

func TestGrid_FireOutOfBounds(t *testing.T) {
	g := NewGrid(DefaultSize)
	_, err := g.Fire(At(6, 0))
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.Fire(At(0, -1))
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Empty(t, g.occupied)
}

func TestGrid_SinkVessel(t *testing.T) {
	for _, length := range []int{1, 2, 3} {
		g := NewGrid(DefaultSize)
		v := NewVessel(At(1, 1), length, Vertical)
		require.NoError(t, g.PlaceVessel(v))
		g.ResetTargetingMemory()

		cells := v.Cells()
		for i, c := range cells {
			assert.False(t, g.Defeat())
			out, err := g.Fire(c)
			require.NoError(t, err)
			if i < len(cells)-1 {
				assert.Equal(t, OutcomeHit, out, "length %d shot %d", length, i)
				assert.Equal(t, 0, g.DestroyedCount())
			} else {
				assert.Equal(t, OutcomeSunk, out, "length %d last shot", length)
				assert.Equal(t, 1, g.DestroyedCount())
			}
			assert.Equal(t, Hit, g.Cell(c))
		}
		assert.True(t, v.Destroyed())
		assert.Equal(t, 0, v.Remaining())
		assert.True(t, g.Defeat())
	}
}

func TestGrid_SunkVesselIsRinged(t *testing.T) {
	g := NewGrid(DefaultSize)
	require.NoError(t, g.PlaceVessel(NewVessel(At(0, 0), 2, Horizontal)))
	g.ResetTargetingMemory()

	_, err := g.Fire(At(0, 0))
	require.NoError(t, err)
	out, err := g.Fire(At(0, 1))
	require.NoError(t, err)
	require.Equal(t, OutcomeSunk, out)

	for _, c := range []Coordinate{At(0, 2), At(1, 0), At(1, 1), At(1, 2)} {
		assert.Equal(t, Buffer, g.Cell(c), "%v", c)
		_, err := g.Fire(c)
		assert.ErrorIs(t, err, ErrAlreadyTargeted)
	}
	assert.Equal(t, Hit, g.Cell(At(0, 0)))
	assert.Equal(t, Empty, g.Cell(At(2, 2)))
}

func TestGrid_Defeat(t *testing.T) {
	g := NewGrid(DefaultSize)
	require.NoError(t, g.PlaceVessel(NewVessel(At(0, 0), 1, Horizontal)))
	require.NoError(t, g.PlaceVessel(NewVessel(At(4, 4), 1, Horizontal)))
	g.ResetTargetingMemory()

	_, err := g.Fire(At(0, 0))
	require.NoError(t, err)
	assert.False(t, g.Defeat())
	_, err = g.Fire(At(4, 4))
	require.NoError(t, err)
	assert.True(t, g.Defeat())
}

func TestGrid_SingleVesselMatch(t *testing.T) {
	newGrid := func() *Grid {
		g := NewGrid(DefaultSize)
		require.NoError(t, g.PlaceVessel(NewVessel(At(2, 2), 1, Horizontal)))
		g.ResetTargetingMemory()
		return g
	}

	t.Run("direct hit", func(t *testing.T) {
		g := newGrid()
		out, err := g.Fire(At(2, 2))
		require.NoError(t, err)
		assert.Equal(t, OutcomeSunk, out)
		assert.True(t, g.Defeat())
	})

	t.Run("miss first", func(t *testing.T) {
		g := newGrid()
		out, err := g.Fire(At(0, 0))
		require.NoError(t, err)
		assert.Equal(t, OutcomeMiss, out)
		assert.False(t, g.Defeat())

		out, err = g.Fire(At(2, 2))
		require.NoError(t, err)
		assert.Equal(t, OutcomeSunk, out)
		assert.True(t, g.Defeat())
	})
}

func TestGrid_ShipBitsStableUnderFire(t *testing.T) {
	g := NewGrid(4)
	require.NoError(t, g.PlaceVessel(NewVessel(At(0, 1), 2, Vertical)))
	g.ResetTargetingMemory()
	want := []uint8{
		0, 1, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	assert.Equal(t, want, g.ShipBits())

	_, err := g.Fire(At(0, 1))
	require.NoError(t, err)
	_, err = g.Fire(At(1, 1))
	require.NoError(t, err)
	assert.Equal(t, want, g.ShipBits())
}

func TestOutcome_ExtraTurn(t *testing.T) {
	assert.False(t, OutcomeMiss.ExtraTurn())
	assert.True(t, OutcomeHit.ExtraTurn())
	assert.True(t, OutcomeSunk.ExtraTurn())
}
