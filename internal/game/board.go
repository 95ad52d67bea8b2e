package game

import "fmt"

// DefaultSize is the side of a standard board.
const DefaultSize = 6

// MaxSize is the largest board side whose ship bitmap fits the commitment tree.
const MaxSize = 16

// CellState is what a cell of the board shows.
type CellState uint8

const (
	Empty CellState = iota
	Ship
	Miss
	Hit
	// Buffer marks a cell revealed around a destroyed vessel.
	Buffer
)

// Outcome is the result of a resolved shot.
type Outcome uint8

const (
	OutcomeMiss Outcome = iota
	OutcomeHit
	OutcomeSunk
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMiss:
		return "miss"
	case OutcomeHit:
		return "hit"
	case OutcomeSunk:
		return "sunk"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// ExtraTurn reports whether the shooter fires again.
func (o Outcome) ExtraTurn() bool { return o == OutcomeHit || o == OutcomeSunk }

// Grid is an NxN board owning its vessels. The occupied set holds every cell
// that is no longer available: vessel cells and their buffer ring during
// placement, shots and revealed wreck rings during play. It only grows, except
// for the single ResetTargetingMemory call between placement and play.
type Grid struct {
	size      int
	cells     [][]CellState
	occupied  map[Coordinate]struct{}
	vessels   []*Vessel
	destroyed int
}

// NewGrid returns an empty board of the given side.
func NewGrid(size int) *Grid {
	cells := make([][]CellState, size)
	for r := range cells {
		cells[r] = make([]CellState, size)
	}
	return &Grid{
		size:     size,
		cells:    cells,
		occupied: make(map[Coordinate]struct{}),
	}
}

func (g *Grid) Size() int { return g.size }

// IsOutOfBounds reports whether c lies outside [0, size) on either axis.
func (g *Grid) IsOutOfBounds(c Coordinate) bool {
	return c.Row < 0 || c.Row >= g.size || c.Col < 0 || c.Col >= g.size
}

func (g *Grid) isOccupied(c Coordinate) bool {
	_, ok := g.occupied[c]
	return ok
}

// Cell returns the state shown at c. Out-of-bounds cells read as Empty.
func (g *Grid) Cell(c Coordinate) CellState {
	if g.IsOutOfBounds(c) {
		return Empty
	}
	return g.cells[c.Row][c.Col]
}

// Vessels returns the vessels placed on the board, in placement order.
func (g *Grid) Vessels() []*Vessel { return g.vessels }

func (g *Grid) DestroyedCount() int { return g.destroyed }

// markBuffer adds the in-bounds 3x3 neighbourhood of every vessel cell to the
// occupied set. When visible, newly added cells are painted as Buffer so the
// wreck of a destroyed vessel is ringed on the board.
func (g *Grid) markBuffer(v *Vessel, visible bool) {
	for _, cell := range v.Cells() {
		for _, d := range neighbourhood {
			n := cell.add(d)
			if g.IsOutOfBounds(n) || g.isOccupied(n) {
				continue
			}
			if visible {
				g.cells[n.Row][n.Col] = Buffer
			}
			g.occupied[n] = struct{}{}
		}
	}
}

// PlaceVessel puts v on the board. Every cell is validated before anything is
// touched, so a failed placement leaves the board unchanged.
func (g *Grid) PlaceVessel(v *Vessel) error {
	cells := v.Cells()
	for _, c := range cells {
		if g.IsOutOfBounds(c) || g.isOccupied(c) {
			return fmt.Errorf("%w: %s vessel of length %d at %s", ErrInvalidPlacement, v.Orientation, v.Length, v.Bow)
		}
	}
	for _, c := range cells {
		g.cells[c.Row][c.Col] = Ship
		g.occupied[c] = struct{}{}
	}
	g.vessels = append(g.vessels, v)
	g.markBuffer(v, false)
	return nil
}

// Fire resolves a shot at target. Hit and Sunk grant the shooter another shot,
// Miss passes the turn.
func (g *Grid) Fire(target Coordinate) (Outcome, error) {
	if g.IsOutOfBounds(target) {
		return OutcomeMiss, fmt.Errorf("%w: %s", ErrOutOfBounds, target)
	}
	if g.isOccupied(target) {
		return OutcomeMiss, fmt.Errorf("%w: %s", ErrAlreadyTargeted, target)
	}
	g.occupied[target] = struct{}{}

	for _, v := range g.vessels {
		if !v.Covers(target) {
			continue
		}
		g.cells[target.Row][target.Col] = Hit
		if !v.hit() {
			return OutcomeHit, nil
		}
		g.destroyed++
		g.markBuffer(v, true)
		return OutcomeSunk, nil
	}

	g.cells[target.Row][target.Col] = Miss
	return OutcomeMiss, nil
}

// ResetTargetingMemory forgets placement reservations so that buffer cells can
// be shot at. It is called once, after the fleet is placed.
func (g *Grid) ResetTargetingMemory() {
	g.occupied = make(map[Coordinate]struct{})
}

// Defeat reports whether every vessel on the board is destroyed.
func (g *Grid) Defeat() bool { return g.destroyed == len(g.vessels) }

// ShipBits flattens the fleet geometry into a row-major 0/1 bitmap. It is
// derived from the vessels, not the painted cells, so it does not change as
// the board is shot at.
func (g *Grid) ShipBits() []uint8 {
	out := make([]uint8, g.size*g.size)
	for _, v := range g.vessels {
		for _, c := range v.Cells() {
			out[c.Row*g.size+c.Col] = 1
		}
	}
	return out
}
