// Package zk proves single shot outcomes against a committed board with
// groth16 over BN254.
package zk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"seabattle/internal/merkle"
)

const (
	ProvingKeyFile   = "shot.pk"
	VerifyingKeyFile = "shot.vk"
)

// ShotPublic is what a verifier learns from a shot proof.
type ShotPublic struct {
	Root  *big.Int `json:"root"`
	Index int      `json:"index"`
	Hit   uint8    `json:"hit"`
}

// ShotWitness is the defender's private view of one cell.
type ShotWitness struct {
	Bit   uint8
	Index int
	Path  []*big.Int
	Dir   []uint8
	Salt  *big.Int
	Root  *big.Int
}

// Keys holds the compiled circuit and its groth16 key pair.
type Keys struct {
	Dir string
	cs  constraint.ConstraintSystem
	pk  groth16.ProvingKey
	vk  groth16.VerifyingKey
}

func compile() (constraint.ConstraintSystem, error) {
	var circuit ShotCircuit
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	if err != nil {
		return nil, fmt.Errorf("compile shot circuit: %w", err)
	}
	return cs, nil
}

// LoadOrSetup compiles the circuit and reuses the key pair in dir when both
// files parse; otherwise it runs a fresh setup and writes them.
func LoadOrSetup(dir string) (*Keys, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	cs, err := compile()
	if err != nil {
		return nil, err
	}
	k := &Keys{Dir: dir, cs: cs}

	vkPath := filepath.Join(dir, VerifyingKeyFile)
	pkPath := filepath.Join(dir, ProvingKeyFile)
	k.vk = groth16.NewVerifyingKey(ecc.BN254)
	k.pk = groth16.NewProvingKey(ecc.BN254)
	if readFrom(vkPath, k.vk) == nil && readFrom(pkPath, k.pk) == nil {
		return k, nil
	}

	k.pk, k.vk, err = groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("groth16 setup: %w", err)
	}
	if err := writeTo(vkPath, k.vk); err != nil {
		return nil, err
	}
	if err := writeTo(pkPath, k.pk); err != nil {
		return nil, err
	}
	return k, nil
}

// VerifyingKeyPath is where the verifying key of these keys lives.
func (k *Keys) VerifyingKeyPath() string { return filepath.Join(k.Dir, VerifyingKeyFile) }

// Prove produces a serialized proof for one cell.
func (k *Keys) Prove(w ShotWitness) ([]byte, ShotPublic, error) {
	if len(w.Path) != merkle.Depth || len(w.Dir) != merkle.Depth {
		return nil, ShotPublic{}, errors.New("bad path length")
	}
	if w.Salt == nil || w.Root == nil {
		return nil, ShotPublic{}, errors.New("salt and root are required")
	}

	var assign ShotCircuit
	assign.Bit = w.Bit
	assign.Salt = w.Salt
	for i := 0; i < merkle.Depth; i++ {
		assign.Path[i] = w.Path[i]
		assign.Dir[i] = w.Dir[i]
	}
	assign.Root = w.Root
	assign.Index = w.Index
	assign.Hit = w.Bit

	full, err := frontend.NewWitness(&assign, ecc.BN254.ScalarField())
	if err != nil {
		return nil, ShotPublic{}, err
	}
	proof, err := groth16.Prove(k.cs, k.pk, full)
	if err != nil {
		return nil, ShotPublic{}, fmt.Errorf("prove shot: %w", err)
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, ShotPublic{}, err
	}
	return buf.Bytes(), ShotPublic{Root: new(big.Int).Set(w.Root), Index: w.Index, Hit: w.Bit}, nil
}

// Verify checks a proof with the in-memory verifying key.
func (k *Keys) Verify(proof []byte, pub ShotPublic) error {
	return verify(k.vk, proof, pub)
}

// VerifyingKey verifies shot proofs without the proving side.
type VerifyingKey struct {
	vk groth16.VerifyingKey
}

// LoadVerifyingKey reads a verifying key written by LoadOrSetup.
func LoadVerifyingKey(path string) (*VerifyingKey, error) {
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if err := readFrom(path, vk); err != nil {
		return nil, fmt.Errorf("read verifying key: %w", err)
	}
	return &VerifyingKey{vk: vk}, nil
}

func (v *VerifyingKey) Verify(proof []byte, pub ShotPublic) error {
	return verify(v.vk, proof, pub)
}

func verify(vk groth16.VerifyingKey, proofBin []byte, pub ShotPublic) error {
	if pub.Root == nil {
		return errors.New("proof payload missing public root")
	}
	if pub.Hit > 1 {
		return fmt.Errorf("invalid public hit %d", pub.Hit)
	}

	var assign ShotCircuit
	assign.Root = pub.Root
	assign.Index = pub.Index
	assign.Hit = pub.Hit
	pubWit, err := frontend.NewWitness(&assign, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return err
	}

	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBin)); err != nil {
		return fmt.Errorf("read proof: %w", err)
	}
	return groth16.Verify(proof, vk, pubWit)
}

func writeTo(path string, v io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := v.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readFrom(path string, v io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = v.ReadFrom(f)
	return err
}
