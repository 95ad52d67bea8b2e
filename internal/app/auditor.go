package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"seabattle/internal/match"
	"seabattle/internal/player"
	"seabattle/internal/zk"
)

// ShotAuditor makes the owner of a committed board prove every shot fired at
// it, and checks the proof against the outcome the board reported.
type ShotAuditor struct {
	Defender   match.Side
	Commitment *Commitment
	Keys       *zk.Keys
	Log        zerolog.Logger
}

// Hook returns the auditor as a match shot hook.
func (a *ShotAuditor) Hook() match.ShotHook { return a.Check }

// Check ignores shots fired by the defender itself.
func (a *ShotAuditor) Check(ctx context.Context, shooter match.Side, shot player.Shot) error {
	if shooter == a.Defender {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := a.Commitment.Shoot(a.Keys, shot.Target)
	if err != nil {
		return err
	}
	v, err := VerifyWithRoot(a.Keys, a.Commitment.Root, a.Commitment.size, shot.Target, res.Payload)
	if err != nil {
		return fmt.Errorf("verify shot %s: %w", shot.Target, err)
	}

	var reported uint8
	if shot.Outcome.ExtraTurn() {
		reported = 1
	}
	if v.Hit != reported {
		return fmt.Errorf("%w: cell %s proven %d, reported %s", ErrOutcomeMismatch, shot.Target, v.Hit, shot.Outcome)
	}
	a.Log.Debug().
		Stringer("target", shot.Target).
		Uint8("hit", v.Hit).
		Int("proof_bytes", len(res.Payload.Proof)).
		Msg("shot proof verified")
	return nil
}
