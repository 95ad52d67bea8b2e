package player

import (
	"context"
	"fmt"
	"io"

	"seabattle/internal/game"
)

// Scripted fires at a uniformly random cell. It does not remember its shots;
// the board rejects repeats and the combatant draws again.
type Scripted struct {
	Size int
	Rand game.Source
	// Out receives the announced move. Nil discards it.
	Out io.Writer
}

func NewScripted(size int, rng game.Source, out io.Writer) *Scripted {
	return &Scripted{Size: size, Rand: rng, Out: out}
}

func (s *Scripted) SelectTarget(ctx context.Context) (game.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return game.Coordinate{}, err
	}
	c := game.At(s.Rand.Intn(s.Size), s.Rand.Intn(s.Size))
	if s.Out != nil {
		fmt.Fprintf(s.Out, "Computer fires at %s\n", c)
	}
	return c, nil
}
