package game

import "errors"

var (
	// ErrOutOfBounds is returned when a shot targets a cell outside the grid.
	ErrOutOfBounds = errors.New("target is outside the board")
	// ErrAlreadyTargeted is returned when a shot targets a cell that was already
	// shot at or revealed around a destroyed vessel.
	ErrAlreadyTargeted = errors.New("cell was already targeted")
	// ErrInvalidPlacement is returned when a vessel would leave the grid or touch
	// another vessel.
	ErrInvalidPlacement = errors.New("vessel cannot be placed there")
	// ErrPlacementExhausted is returned when a board attempt used up its
	// placement attempts.
	ErrPlacementExhausted = errors.New("placement attempts exhausted")
)
