package main

import (
	"context"
	crand "crypto/rand"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"seabattle/internal/app"
	"seabattle/internal/game"
	"seabattle/internal/logging"
	"seabattle/internal/match"
	"seabattle/internal/player"
	"seabattle/internal/render"
	"seabattle/internal/zk"
)

const greeting = `-------------------
   Welcome to
   Sea Battle
-------------------
 input format: x y
 x - row number
 y - column number`

func cmdPlay(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.GridSize, "size", cfg.GridSize, "board side")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 draws one)")
	fs.BoolVar(&cfg.VerifyShots, "verify-shots", cfg.VerifyShots, "prove and verify every shot at the computer's board")
	fs.StringVar(&cfg.KeysDir, "keys", cfg.KeysDir, "keys directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	rng, seed, err := newRand(cfg.Seed)
	if err != nil {
		return err
	}

	gen := game.NewGenerator(cfg.GridSize, rng)
	gen.MaxAttempts = cfg.MaxAttempts
	humanGrid, err := gen.RandomGrid(ctx)
	if err != nil {
		return err
	}
	computerGrid, err := gen.RandomGrid(ctx)
	if err != nil {
		return err
	}

	human := &player.Combatant{
		Name:     "you",
		Own:      humanGrid,
		Enemy:    computerGrid,
		Targeter: player.NewHuman(stdin, stdout),
		Out:      stdout,
		Log:      log,
	}
	computer := &player.Combatant{
		Name:     "computer",
		Own:      computerGrid,
		Enemy:    humanGrid,
		Targeter: player.NewScripted(cfg.GridSize, rng, stdout),
		Out:      stdout,
		Log:      log,
	}

	opts := []match.Option{match.WithLogger(log)}
	if cfg.VerifyShots {
		hook, err := newAuditor(computerGrid, cfg.KeysDir, stdout, log)
		if err != nil {
			return err
		}
		opts = append(opts, match.WithShotHook(hook))
	}
	m := match.New(human, computer, opts...)
	log.Info().Str("match", m.ID).Int64("seed", seed).Int("size", cfg.GridSize).Msg("match started")

	fmt.Fprintln(stdout, greeting)
	for m.State() == match.InProgress {
		if err := printBoards(stdout, m); err != nil {
			return err
		}
		fmt.Fprintln(stdout, strings.Repeat("-", 20))
		if m.Active() == match.Human {
			fmt.Fprintln(stdout, "Your turn")
		} else {
			fmt.Fprintln(stdout, "Computer's turn")
		}
		if _, err := m.Step(ctx); err != nil {
			return err
		}
	}

	if err := printBoards(stdout, m); err != nil {
		return err
	}
	fmt.Fprintln(stdout, strings.Repeat("-", 20))
	if m.State() == match.PlayerAWon {
		fmt.Fprintln(stdout, "You won!")
	} else {
		fmt.Fprintln(stdout, "Computer won!")
	}
	return nil
}

// newAuditor commits the computer's board and returns a hook that makes it
// prove every shot the operator fires at it.
func newAuditor(g *game.Grid, keysDir string, stdout io.Writer, log zerolog.Logger) (match.ShotHook, error) {
	keys, err := zk.LoadOrSetup(keysDir)
	if err != nil {
		return nil, err
	}
	c, err := app.Commit(g.Layout(), crand.Reader)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(stdout, "Computer board commitment:", c.RootHex())
	a := &app.ShotAuditor{
		Defender:   match.Scripted,
		Commitment: c,
		Keys:       keys,
		Log:        log,
	}
	return a.Hook(), nil
}

func printBoards(w io.Writer, m *match.Match) error {
	fmt.Fprintln(w, strings.Repeat("-", 20))
	fmt.Fprintln(w, "Your board:")
	if err := render.Board(w, m.Combatant(match.Human).Own, false); err != nil {
		return err
	}
	fmt.Fprintln(w, strings.Repeat("-", 27))
	fmt.Fprintln(w, "Computer board:")
	return render.Board(w, m.Combatant(match.Scripted).Own, true)
}
