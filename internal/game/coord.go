package game

import "fmt"

// Coordinate is a 0-indexed grid position. It is a comparable value and may be
// used as a map key.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func At(row, col int) Coordinate { return Coordinate{Row: row, Col: col} }

// String renders the coordinate 1-indexed, the way an operator types it.
func (c Coordinate) String() string { return fmt.Sprintf("%d %d", c.Row+1, c.Col+1) }

// neighbourhood is the 3x3 block around a cell, the cell itself included.
var neighbourhood = [9]Coordinate{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 0}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (c Coordinate) add(d Coordinate) Coordinate {
	return Coordinate{Row: c.Row + d.Row, Col: c.Col + d.Col}
}
