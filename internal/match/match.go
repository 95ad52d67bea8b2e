// Package match drives alternating turns between the operator and the
// scripted opponent until one fleet is destroyed.
package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"seabattle/internal/player"
)

// Side identifies a combatant. Turn parity selects the acting side.
type Side int

const (
	Human Side = iota
	Scripted
)

func (s Side) String() string {
	if s == Human {
		return "human"
	}
	return "scripted"
}

type State int

const (
	InProgress State = iota
	PlayerAWon
	PlayerBWon
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case PlayerAWon:
		return "human won"
	case PlayerBWon:
		return "scripted won"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrFinished is returned by Step once the match is decided.
var ErrFinished = errors.New("match is finished")

// ShotHook runs after each resolved shot, before defeat is checked. An error
// aborts the match.
type ShotHook func(ctx context.Context, shooter Side, shot player.Shot) error

type Option func(*Match)

func WithLogger(l zerolog.Logger) Option {
	return func(m *Match) { m.log = l }
}

func WithShotHook(h ShotHook) Option {
	return func(m *Match) { m.hooks = append(m.hooks, h) }
}

// Match owns both combatants and the turn counter.
type Match struct {
	ID         string
	combatants [2]*player.Combatant
	turn       int
	state      State
	hooks      []ShotHook
	log        zerolog.Logger
}

func New(human, scripted *player.Combatant, opts ...Option) *Match {
	m := &Match{
		ID:         uuid.NewString(),
		combatants: [2]*player.Combatant{human, scripted},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Turn counts the times the turn has passed. The step that decides the match
// leaves it unchanged.
func (m *Match) Turn() int { return m.turn }

func (m *Match) State() State { return m.state }

// Active is the side that acts on the next Step.
func (m *Match) Active() Side { return Side(m.turn % 2) }

func (m *Match) Combatant(s Side) *player.Combatant { return m.combatants[s] }

// Step plays one shot for the active side. A hit or sink keeps the turn with
// the shooter; a miss passes it.
func (m *Match) Step(ctx context.Context) (State, error) {
	if m.state != InProgress {
		return m.state, ErrFinished
	}
	side := m.Active()
	shot, err := m.combatants[side].TakeTurn(ctx)
	if err != nil {
		return m.state, err
	}
	for _, h := range m.hooks {
		if err := h(ctx, side, shot); err != nil {
			return m.state, fmt.Errorf("shot hook: %w", err)
		}
	}

	switch {
	case m.combatants[Scripted].Own.Defeat():
		m.state = PlayerAWon
	case m.combatants[Human].Own.Defeat():
		m.state = PlayerBWon
	case !shot.Outcome.ExtraTurn():
		m.turn++
	}

	m.log.Debug().
		Str("match", m.ID).
		Stringer("side", side).
		Int("turn", m.turn).
		Stringer("state", m.state).
		Msg("step")
	return m.state, nil
}

// Run steps until the match is decided.
func (m *Match) Run(ctx context.Context) (State, error) {
	for m.state == InProgress {
		if _, err := m.Step(ctx); err != nil {
			return m.state, err
		}
	}
	m.log.Info().Str("match", m.ID).Stringer("state", m.state).Int("turns", m.turn).Msg("match finished")
	return m.state, nil
}
