// Package player implements the two sides of a match: an operator typing
// coordinates and a scripted opponent firing at random.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"seabattle/internal/game"
)

// Targeter picks the next cell to fire at.
type Targeter interface {
	SelectTarget(ctx context.Context) (game.Coordinate, error)
}

// Shot is a resolved shot.
type Shot struct {
	Target  game.Coordinate
	Outcome game.Outcome
}

// Combatant binds a targeter to its own board and the board it shoots at.
type Combatant struct {
	Name     string
	Own      *game.Grid
	Enemy    *game.Grid
	Targeter Targeter
	// Out receives user-facing messages. Nil discards them.
	Out io.Writer
	Log zerolog.Logger
}

// TakeTurn selects targets until one resolves on the enemy board. Out of
// bounds and repeated targets are reported to the player and retried; they
// never end the turn.
func (c *Combatant) TakeTurn(ctx context.Context) (Shot, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Shot{}, err
		}
		target, err := c.Targeter.SelectTarget(ctx)
		if err != nil {
			return Shot{}, fmt.Errorf("%s select target: %w", c.Name, err)
		}

		outcome, err := c.Enemy.Fire(target)
		switch {
		case errors.Is(err, game.ErrOutOfBounds):
			c.say("You are trying to shoot off the board!")
			c.Log.Debug().Str("player", c.Name).Stringer("target", target).Msg("target out of bounds")
			continue
		case errors.Is(err, game.ErrAlreadyTargeted):
			c.say("You have already shot at that cell")
			c.Log.Debug().Str("player", c.Name).Stringer("target", target).Msg("target already used")
			continue
		case err != nil:
			return Shot{}, err
		}

		switch outcome {
		case game.OutcomeSunk:
			c.say("Ship destroyed!")
		case game.OutcomeHit:
			c.say("Ship hit!")
		default:
			c.say("Miss")
		}
		c.Log.Info().
			Str("player", c.Name).
			Stringer("target", target).
			Stringer("outcome", outcome).
			Msg("shot resolved")
		return Shot{Target: target, Outcome: outcome}, nil
	}
}

func (c *Combatant) say(msg string) {
	if c.Out != nil {
		fmt.Fprintln(c.Out, msg)
	}
}
