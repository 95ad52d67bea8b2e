package game

import "fmt"

type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("orientation(%d)", uint8(o))
	}
}

// Vessel is a straight ship anchored at its bow. Its cells are always derived
// from (Bow, Length, Orientation); only the remaining hit count mutates.
type Vessel struct {
	Bow         Coordinate
	Length      int
	Orientation Orientation
	remaining   int
}

func NewVessel(bow Coordinate, length int, o Orientation) *Vessel {
	return &Vessel{Bow: bow, Length: length, Orientation: o, remaining: length}
}

// Cells returns the Length coordinates covered by the vessel, starting at the
// bow and stepping along the column (Horizontal) or row (Vertical).
func (v *Vessel) Cells() []Coordinate {
	cells := make([]Coordinate, 0, v.Length)
	for i := 0; i < v.Length; i++ {
		c := v.Bow
		if v.Orientation == Vertical {
			c.Row += i
		} else {
			c.Col += i
		}
		cells = append(cells, c)
	}
	return cells
}

// Covers reports whether a shot at c would hit this vessel.
func (v *Vessel) Covers(c Coordinate) bool {
	for _, cell := range v.Cells() {
		if cell == c {
			return true
		}
	}
	return false
}

func (v *Vessel) Remaining() int { return v.remaining }

func (v *Vessel) Destroyed() bool { return v.remaining == 0 }

// hit takes one life off the vessel and reports whether it is now destroyed.
func (v *Vessel) hit() bool {
	if v.remaining > 0 {
		v.remaining--
	}
	return v.remaining == 0
}
