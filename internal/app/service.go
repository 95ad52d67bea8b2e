package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"seabattle/internal/codec"
	"seabattle/internal/game"
	"seabattle/internal/merkle"
	"seabattle/internal/zk"
)

// ErrOutcomeMismatch is returned when a proven cell contradicts the outcome
// the defender reported for it.
var ErrOutcomeMismatch = errors.New("proven cell contradicts reported outcome")

// InitBoard places the standard fleet on a fresh board.
func InitBoard(ctx context.Context, size int, rng game.Source) (game.Layout, error) {
	g, err := game.NewGenerator(size, rng).RandomGrid(ctx)
	if err != nil {
		return game.Layout{}, err
	}
	return g.Layout(), nil
}

// Commitment is an opened board commitment: the layout, its tree and salt.
type Commitment struct {
	Root   *big.Int
	Secret codec.Secret
	size   int
	bits   []uint8
	tree   *merkle.Tree
	salt   *big.Int
}

func (c *Commitment) RootHex() string { return FormatHex(c.Root) }

// Commit validates layout and commits to its ship bitmap under a fresh salt
// drawn from random.
func Commit(layout game.Layout, random io.Reader) (*Commitment, error) {
	salt, err := merkle.NewSalt(random)
	if err != nil {
		return nil, err
	}
	return Open(codec.Secret{Layout: layout, SaltHex: FormatHex(salt)})
}

// Open rebuilds a commitment from a stored secret.
func Open(sec codec.Secret) (*Commitment, error) {
	g, err := game.GridFromLayout(sec.Layout)
	if err != nil {
		return nil, fmt.Errorf("invalid board: %w", err)
	}
	salt, err := ParseHex(sec.SaltHex)
	if err != nil {
		return nil, fmt.Errorf("invalid salt: %w", err)
	}
	bits := g.ShipBits()
	tree, err := merkle.BuildTree(bits)
	if err != nil {
		return nil, err
	}
	return &Commitment{
		Root:   merkle.SaltedRoot(salt, tree.Root()),
		Secret: sec,
		size:   g.Size(),
		bits:   bits,
		tree:   tree,
		salt:   salt,
	}, nil
}

type ShootResult struct {
	Payload codec.ShotProofPayload
	Bit     uint8
}

// Shoot proves the content of the committed cell at target.
func (c *Commitment) Shoot(keys *zk.Keys, target game.Coordinate) (*ShootResult, error) {
	if target.Row < 0 || target.Row >= c.size || target.Col < 0 || target.Col >= c.size {
		return nil, fmt.Errorf("%w: %s", game.ErrOutOfBounds, target)
	}
	idx := target.Row*c.size + target.Col
	path, dir, err := c.tree.Path(idx)
	if err != nil {
		return nil, err
	}
	bit := c.bits[idx]
	proof, pub, err := keys.Prove(zk.ShotWitness{
		Bit:   bit,
		Index: idx,
		Path:  path,
		Dir:   dir,
		Salt:  c.salt,
		Root:  c.Root,
	})
	if err != nil {
		return nil, err
	}
	return &ShootResult{
		Payload: codec.ShotProofPayload{Proof: proof, Public: pub},
		Bit:     bit,
	}, nil
}

// Verifier checks a serialized shot proof. *zk.Keys and *zk.VerifyingKey
// implement it.
type Verifier interface {
	Verify(proof []byte, pub zk.ShotPublic) error
}

type VerifyResult struct {
	Valid bool
	Hit   uint8
}

// VerifyWithRoot checks that payload proves the cell at target of a size x
// size board committed under root.
func VerifyWithRoot(v Verifier, root *big.Int, size int, target game.Coordinate, payload codec.ShotProofPayload) (*VerifyResult, error) {
	if payload.Public.Root == nil || payload.Public.Root.Sign() == 0 {
		payload.Public.Root = new(big.Int).Set(root)
	}
	if payload.Public.Root.Cmp(root) != 0 {
		return nil, errors.New("root mismatch: proof root differs from commitment")
	}
	if want := target.Row*size + target.Col; payload.Public.Index != want {
		return nil, fmt.Errorf("proof is for cell %d but expected %d (%s)", payload.Public.Index, want, target)
	}
	if err := v.Verify(payload.Proof, payload.Public); err != nil {
		return &VerifyResult{Valid: false, Hit: payload.Public.Hit}, err
	}
	return &VerifyResult{Valid: true, Hit: payload.Public.Hit}, nil
}

// FormatHex renders a field element as 0x-prefixed hex.
func FormatHex(x *big.Int) string { return fmt.Sprintf("0x%x", x) }

// ParseHex reads a 0x-prefixed field element.
func ParseHex(s string) (*big.Int, error) {
	if !strings.HasPrefix(s, "0x") || len(s) < 3 {
		return nil, fmt.Errorf("want 0x-prefixed hex, got %q", s)
	}
	x, ok := new(big.Int).SetString(s[2:], 16)
	if !ok {
		return nil, fmt.Errorf("cannot parse hex %q", s)
	}
	if x.Cmp(fr.Modulus()) >= 0 {
		return nil, errors.New("value is not a field element")
	}
	return x, nil
}
