// Package merkle commits a board's ship bitmap to a single BN254 field
// element with a fixed-depth MiMC Merkle tree.
package merkle

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	bnmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// Depth is fixed so that one circuit serves every supported board size.
// 256 leaves cover boards up to 16x16.
const Depth = 8

const Leaves = 1 << Depth

// feBytes encodes a field element as 32 big-endian bytes.
func feBytes(x *big.Int) []byte {
	out := make([]byte, fr.Bytes)
	x.FillBytes(out)
	return out
}

func mimcSum(xs ...*big.Int) *big.Int {
	h := bnmimc.NewMiMC()
	for _, x := range xs {
		// Inputs are reduced field elements, the only thing Write rejects.
		_, _ = h.Write(feBytes(x))
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}

// HashLeaf hashes one ship bit. It matches the in-circuit leaf hash.
func HashLeaf(bit uint8) *big.Int {
	return mimcSum(new(big.Int).SetUint64(uint64(bit)))
}

// HashNode hashes two children. It matches the in-circuit node hash.
func HashNode(left, right *big.Int) *big.Int {
	return mimcSum(left, right)
}

// NewSalt draws a uniformly random field element from r.
func NewSalt(r io.Reader) (*big.Int, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}
	salt := new(big.Int).SetBytes(b)
	return salt.Mod(salt, fr.Modulus()), nil
}

// SaltedRoot binds a tree root to a salt so equal boards commit differently.
func SaltedRoot(salt, root *big.Int) *big.Int {
	return HashNode(salt, root)
}

// Tree is stored level by level: Levels[0] are the leaves, Levels[Depth] the
// root.
type Tree struct {
	Depth  int          `json:"depth"`
	Levels [][]*big.Int `json:"levels"`
}

// BuildTree hashes bits into the first leaves and pads the rest with the hash
// of an empty cell.
func BuildTree(bits []uint8) (*Tree, error) {
	if len(bits) > Leaves {
		return nil, fmt.Errorf("too many leaves: %d > %d", len(bits), Leaves)
	}
	pad := HashLeaf(0)
	leaves := make([]*big.Int, Leaves)
	for i := range leaves {
		switch {
		case i >= len(bits):
			leaves[i] = new(big.Int).Set(pad)
		case bits[i] > 1:
			return nil, fmt.Errorf("leaf %d is not a bit: %d", i, bits[i])
		default:
			leaves[i] = HashLeaf(bits[i])
		}
	}

	levels := [][]*big.Int{leaves}
	for prev := leaves; len(prev) > 1; {
		up := make([]*big.Int, len(prev)/2)
		for i := range up {
			up[i] = HashNode(prev[2*i], prev[2*i+1])
		}
		levels = append(levels, up)
		prev = up
	}
	return &Tree{Depth: len(levels) - 1, Levels: levels}, nil
}

func (t *Tree) Root() *big.Int { return new(big.Int).Set(t.Levels[len(t.Levels)-1][0]) }

// Path returns the sibling hashes from leaf idx up to the root, with dir[i]
// set to 1 when the running node is a right child.
func (t *Tree) Path(idx int) (path []*big.Int, dir []uint8, err error) {
	if idx < 0 || idx >= len(t.Levels[0]) {
		return nil, nil, errors.New("leaf index out of range")
	}
	path = make([]*big.Int, 0, t.Depth)
	dir = make([]uint8, 0, t.Depth)
	cur := idx
	for level := 0; level < t.Depth; level++ {
		sib := cur ^ 1
		path = append(path, new(big.Int).Set(t.Levels[level][sib]))
		dir = append(dir, uint8(cur&1))
		cur /= 2
	}
	return path, dir, nil
}

// VerifyPath recomputes the root from a leaf bit and its path.
func VerifyPath(bit uint8, path []*big.Int, dir []uint8, root *big.Int) bool {
	if len(path) != len(dir) {
		return false
	}
	cur := HashLeaf(bit)
	for i, sib := range path {
		if dir[i] == 1 {
			cur = HashNode(sib, cur)
		} else {
			cur = HashNode(cur, sib)
		}
	}
	return cur.Cmp(root) == 0
}
