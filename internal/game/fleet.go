package game

import (
	"context"
	"errors"
	"fmt"
)

// DefaultMaxAttempts caps placement attempts for one board.
const DefaultMaxAttempts = 2000

// DefaultFleet is one 3-cell, two 2-cell and four 1-cell vessels.
var DefaultFleet = []int{3, 2, 2, 1, 1, 1, 1}

// Source is the randomness the generator and the scripted player draw from.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Generator places a fleet at random on fresh boards.
type Generator struct {
	Size        int
	Lengths     []int
	MaxAttempts int
	Rand        Source
}

// NewGenerator returns a generator for the standard fleet on a size x size board.
func NewGenerator(size int, rng Source) *Generator {
	return &Generator{
		Size:        size,
		Lengths:     DefaultFleet,
		MaxAttempts: DefaultMaxAttempts,
		Rand:        rng,
	}
}

// TryGrid makes a single board attempt. Every length is placed in order at a
// random bow and orientation, resampling on invalid placement. Attempts are
// counted across the whole fleet; past the cap the board is abandoned with
// ErrPlacementExhausted.
func (g *Generator) TryGrid() (*Grid, error) {
	grid := NewGrid(g.Size)
	attempts := 0
	for _, length := range g.Lengths {
		for {
			attempts++
			if attempts > g.MaxAttempts {
				return nil, fmt.Errorf("%w: %d attempts", ErrPlacementExhausted, g.MaxAttempts)
			}
			bow := At(g.Rand.Intn(g.Size), g.Rand.Intn(g.Size))
			v := NewVessel(bow, length, Orientation(g.Rand.Intn(2)))
			err := grid.PlaceVessel(v)
			if err == nil {
				break
			}
			if !errors.Is(err, ErrInvalidPlacement) {
				return nil, err
			}
		}
	}
	grid.ResetTargetingMemory()
	return grid, nil
}

// RandomGrid retries TryGrid from scratch until a board is produced or ctx is
// done.
func (g *Generator) RandomGrid(ctx context.Context) (*Grid, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		grid, err := g.TryGrid()
		if err == nil {
			return grid, nil
		}
		if !errors.Is(err, ErrPlacementExhausted) {
			return nil, err
		}
	}
}
