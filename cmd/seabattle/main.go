package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"seabattle/internal/app"
	"seabattle/internal/codec"
	"seabattle/internal/config"
	"seabattle/internal/game"
	"seabattle/internal/zk"
)

const dotenvFile = ".env"

var errUsage = errors.New("unknown command")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return cmdPlay(ctx, nil, stdin, stdout, stderr)
	}
	switch args[0] {
	case "play":
		return cmdPlay(ctx, args[1:], stdin, stdout, stderr)
	case "init":
		return cmdInit(ctx, args[1:], stdout, stderr)
	case "commit":
		return cmdCommit(args[1:], stdout, stderr)
	case "shoot":
		return cmdShoot(args[1:], stdout, stderr)
	case "verify":
		return cmdVerify(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return fmt.Errorf("%w: %q", errUsage, args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `Sea battle

Commands:
  play   [--size N] [--seed S] [--verify-shots] [--keys ./keys]
  init   --out board.json
  commit --board board.json --secret secret.json --keys ./keys
  shoot  --secret secret.json --keys ./keys --row R --col C --out proof.json
  verify --vk ./keys/shot.vk --root ROOT_HEX --proof proof.json --row R --col C`)
}

func loadConfig() (config.Config, error) {
	return config.Load(dotenvFile)
}

// newRand seeds a generator, drawing the seed from crypto/rand when none is
// configured.
func newRand(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return nil, 0, fmt.Errorf("read random seed: %w", err)
		}
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}

func cmdInit(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "board.json", "output board file")
	fs.IntVar(&cfg.GridSize, "size", cfg.GridSize, "board side")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 draws one)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rng, _, err := newRand(cfg.Seed)
	if err != nil {
		return err
	}
	layout, err := app.InitBoard(ctx, cfg.GridSize, rng)
	if err != nil {
		return err
	}
	if err := saveJSON(*out, layout); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "✓ wrote", *out)
	return nil
}

func cmdCommit(args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("commit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	boardPath := fs.String("board", "board.json", "board file")
	secretPath := fs.String("secret", "secret.json", "defender secret state")
	keysDir := fs.String("keys", cfg.KeysDir, "keys directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var layout game.Layout
	if err := loadJSON(*boardPath, &layout); err != nil {
		return err
	}
	c, err := app.Commit(layout, crand.Reader)
	if err != nil {
		return err
	}
	if _, err := zk.LoadOrSetup(*keysDir); err != nil {
		return err
	}
	if err := saveJSON(*secretPath, c.Secret); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "ROOT:", c.RootHex())
	fmt.Fprintln(stdout, "✓ wrote", *secretPath)
	return nil
}

func cmdShoot(args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("shoot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	secretPath := fs.String("secret", "secret.json", "defender secret state")
	keysDir := fs.String("keys", cfg.KeysDir, "keys directory")
	row := fs.Int("row", 1, "row, from 1")
	col := fs.Int("col", 1, "column, from 1")
	out := fs.String("out", "proof.json", "proof output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var sec codec.Secret
	if err := loadJSON(*secretPath, &sec); err != nil {
		return err
	}
	c, err := app.Open(sec)
	if err != nil {
		return err
	}
	keys, err := zk.LoadOrSetup(*keysDir)
	if err != nil {
		return err
	}
	res, err := c.Shoot(keys, game.At(*row-1, *col-1))
	if err != nil {
		return err
	}
	if err := saveJSON(*out, res.Payload); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "✓ wrote %s (result: %s)\n", *out, hitLabel(res.Bit))
	return nil
}

func cmdVerify(args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	vkPath := fs.String("vk", cfg.KeysDir+"/"+zk.VerifyingKeyFile, "verifying key file")
	rootHex := fs.String("root", "", "root hex prefixed 0x")
	proofPath := fs.String("proof", "proof.json", "proof payload json")
	row := fs.Int("row", 0, "row, from 1")
	col := fs.Int("col", 0, "column, from 1")
	size := fs.Int("size", cfg.GridSize, "board side")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *rootHex == "" {
		return errors.New("--root required")
	}
	root, err := app.ParseHex(*rootHex)
	if err != nil {
		return err
	}
	target := game.At(*row-1, *col-1)
	if target.Row < 0 || target.Row >= *size || target.Col < 0 || target.Col >= *size {
		return fmt.Errorf("%w: row %d col %d", game.ErrOutOfBounds, *row, *col)
	}

	var payload codec.ShotProofPayload
	if err := loadJSON(*proofPath, &payload); err != nil {
		return err
	}
	vk, err := zk.LoadVerifyingKey(*vkPath)
	if err != nil {
		return err
	}
	res, err := app.VerifyWithRoot(vk, root, *size, target, payload)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, hitLabel(res.Hit))
	return nil
}

func hitLabel(bit uint8) string {
	if bit == 1 {
		return "HIT"
	}
	return "MISS"
}

func saveJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}
