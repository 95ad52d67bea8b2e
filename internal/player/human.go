package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seabattle/internal/game"
)

// Human reads "row col" lines, 1-indexed, from an operator.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	if out == nil {
		out = io.Discard
	}
	return &Human{in: bufio.NewScanner(in), out: out}
}

// SelectTarget prompts until a line holds exactly two non-negative integers.
// Malformed lines are re-prompted. Whether the cell is on the board is for
// the board to decide. The only errors are a closed input and ctx.
func (h *Human) SelectTarget(ctx context.Context) (game.Coordinate, error) {
	for {
		if err := ctx.Err(); err != nil {
			return game.Coordinate{}, err
		}
		fmt.Fprint(h.out, "Your move: ")
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return game.Coordinate{}, err
			}
			return game.Coordinate{}, io.ErrUnexpectedEOF
		}

		c, msg := parseMove(h.in.Text())
		if msg != "" {
			fmt.Fprintln(h.out, msg)
			continue
		}
		return c, nil
	}
}

// parseMove converts an operator line to a 0-indexed coordinate. On failure
// it returns the re-prompt message instead.
func parseMove(line string) (game.Coordinate, string) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return game.Coordinate{}, "Enter two coordinates"
	}
	nums := [2]int{}
	for i, f := range fields {
		if !isDigits(f) {
			return game.Coordinate{}, "Enter numbers"
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return game.Coordinate{}, "Enter numbers"
		}
		nums[i] = n
	}
	return game.At(nums[0]-1, nums[1]-1), ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
