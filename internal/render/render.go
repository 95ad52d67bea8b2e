// Package render draws boards as text.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"seabattle/internal/game"
)

var symbols = map[game.CellState]string{
	game.Empty:  "o",
	game.Ship:   "■",
	game.Hit:    "X",
	game.Miss:   ".",
	game.Buffer: ".",
}

// Board writes g with 1-indexed row and column labels. Hidden boards draw
// intact ship cells as empty water. Labels and cells are padded to the width
// of the largest label.
func Board(w io.Writer, g *game.Grid, hidden bool) error {
	width := len(strconv.Itoa(g.Size()))
	var b strings.Builder
	fmt.Fprintf(&b, "%*s |", width, "")
	for c := 1; c <= g.Size(); c++ {
		fmt.Fprintf(&b, " %-*d |", width, c)
	}
	b.WriteByte('\n')
	for r := 0; r < g.Size(); r++ {
		fmt.Fprintf(&b, "%*d |", width, r+1)
		for c := 0; c < g.Size(); c++ {
			state := g.Cell(game.At(r, c))
			if hidden && state == game.Ship {
				state = game.Empty
			}
			fmt.Fprintf(&b, " %-*s |", width, symbols[state])
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
