package game

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence replays fixed draws, then repeats its last value.
type sequence struct {
	values []int
	i      int
}

func (s *sequence) Intn(n int) int {
	v := s.values[len(s.values)-1]
	if s.i < len(s.values) {
		v = s.values[s.i]
		s.i++
	}
	return v % n
}

func TestGenerator_TryGridPlacesStandardFleet(t *testing.T) {
	cells := 0
	for _, n := range DefaultFleet {
		cells += n
	}
	require.Equal(t, 11, cells)

	for seed := int64(1); seed <= 20; seed++ {
		gen := NewGenerator(DefaultSize, rand.New(rand.NewSource(seed)))
		g, err := gen.RandomGrid(context.Background())
		require.NoError(t, err, "seed %d", seed)

		assert.Len(t, g.Vessels(), 7)
		ships := 0
		for _, b := range g.ShipBits() {
			ships += int(b)
		}
		assert.Equal(t, cells, ships, "seed %d", seed)

		painted := 0
		for r := 0; r < DefaultSize; r++ {
			for c := 0; c < DefaultSize; c++ {
				if g.Cell(At(r, c)) == Ship {
					painted++
				}
			}
		}
		assert.Equal(t, cells, painted, "seed %d", seed)
		// Placement reservations are forgotten before play.
		assert.Empty(t, g.occupied)
		assert.Equal(t, 0, g.DestroyedCount())
		assert.False(t, g.Defeat())
	}
}

func TestGenerator_VesselsNeverTouch(t *testing.T) {
	gen := NewGenerator(DefaultSize, rand.New(rand.NewSource(7)))
	g, err := gen.RandomGrid(context.Background())
	require.NoError(t, err)

	owner := make(map[Coordinate]int)
	for i, v := range g.Vessels() {
		for _, c := range v.Cells() {
			owner[c] = i
		}
	}
	for i, v := range g.Vessels() {
		for _, c := range v.Cells() {
			for _, d := range neighbourhood {
				if j, ok := owner[c.add(d)]; ok {
					assert.Equal(t, i, j, "vessel %d touches vessel %d at %v", i, j, c.add(d))
				}
			}
		}
	}
}

func TestGenerator_Exhausted(t *testing.T) {
	gen := &Generator{
		Size:        3,
		Lengths:     []int{3, 3, 3},
		MaxAttempts: 50,
		Rand:        rand.New(rand.NewSource(1)),
	}
	_, err := gen.TryGrid()
	assert.ErrorIs(t, err, ErrPlacementExhausted)
}

func TestGenerator_RandomGridHonoursContext(t *testing.T) {
	gen := &Generator{
		Size:        3,
		Lengths:     []int{3, 3, 3},
		MaxAttempts: 10,
		Rand:        rand.New(rand.NewSource(1)),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gen.RandomGrid(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_ResamplesInvalidPlacement(t *testing.T) {
	// Bow (1,1) horizontal runs off a 3x3 board; bow (0,0) vertical fits.
	gen := &Generator{
		Size:        3,
		Lengths:     []int{3},
		MaxAttempts: DefaultMaxAttempts,
		Rand:        &sequence{values: []int{1, 1, 0, 0, 0, 1}},
	}
	g, err := gen.TryGrid()
	require.NoError(t, err)
	require.Len(t, g.Vessels(), 1)
	v := g.Vessels()[0]
	assert.Equal(t, At(0, 0), v.Bow)
	assert.Equal(t, Vertical, v.Orientation)
}

func TestLayout_RoundTripRebuildsGrid(t *testing.T) {
	gen := NewGenerator(DefaultSize, rand.New(rand.NewSource(3)))
	g, err := gen.RandomGrid(context.Background())
	require.NoError(t, err)

	rebuilt, err := GridFromLayout(g.Layout())
	require.NoError(t, err)
	assert.Equal(t, g.ShipBits(), rebuilt.ShipBits())
	assert.Empty(t, rebuilt.occupied)
}

func TestGridFromLayout_Rejects(t *testing.T) {
	testCases := []struct {
		Name   string
		Layout Layout
	}{
		{Name: "zero size", Layout: Layout{}},
		{Name: "size too large", Layout: Layout{Size: MaxSize + 1}},
		{Name: "size overflows allocation", Layout: Layout{Size: math.MaxInt}},
		{Name: "touching vessels", Layout: Layout{Size: 6, Vessels: []VesselSpec{
			{Row: 0, Col: 0, Length: 2, Orientation: Horizontal},
			{Row: 1, Col: 1, Length: 1, Orientation: Horizontal},
		}}},
		{Name: "zero length", Layout: Layout{Size: 6, Vessels: []VesselSpec{{Length: 0}}}},
		{Name: "bad orientation", Layout: Layout{Size: 6, Vessels: []VesselSpec{{Length: 1, Orientation: 9}}}},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := GridFromLayout(tc.Layout)
			assert.Error(t, err)
		})
	}
}
