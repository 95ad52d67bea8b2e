package zk

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"seabattle/internal/merkle"
)

// ShotCircuit proves that the cell at Index of a committed board holds Hit,
// without revealing any other cell.
type ShotCircuit struct {
	Bit  frontend.Variable               `gnark:",secret"`
	Salt frontend.Variable               `gnark:",secret"`
	Path [merkle.Depth]frontend.Variable `gnark:",secret"`
	Dir  [merkle.Depth]frontend.Variable `gnark:",secret"`

	Root  frontend.Variable `gnark:",public"`
	Index frontend.Variable `gnark:",public"`
	Hit   frontend.Variable `gnark:",public"`
}

func (c *ShotCircuit) Define(api frontend.API) error {
	api.AssertIsBoolean(c.Bit)
	api.AssertIsEqual(c.Hit, c.Bit)

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Reset()
	h.Write(c.Bit)
	curr := h.Sum()

	// The direction bits spell the leaf index, which binds the proof to the
	// shot coordinate.
	var idx frontend.Variable = 0
	for i := 0; i < merkle.Depth; i++ {
		api.AssertIsBoolean(c.Dir[i])
		left := api.Select(c.Dir[i], c.Path[i], curr)
		right := api.Select(c.Dir[i], curr, c.Path[i])

		h.Reset()
		h.Write(left, right)
		curr = h.Sum()
		idx = api.Add(idx, api.Mul(c.Dir[i], 1<<i))
	}
	api.AssertIsEqual(idx, c.Index)

	h.Reset()
	h.Write(c.Salt, curr)
	api.AssertIsEqual(h.Sum(), c.Root)
	return nil
}
