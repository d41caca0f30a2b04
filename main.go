package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/robalobadob/battleships/internal/config"
	"github.com/robalobadob/battleships/internal/console"
	"github.com/robalobadob/battleships/internal/game"
	"github.com/robalobadob/battleships/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.LogLevel)

	if err := run(context.Background(), cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("battleships exited")
	}
}

// setupLogging sends human-readable logs to stderr so stdout stays the game.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

// run plays rounds until the configured count is reached or the player
// declines another game, then prints the session summary.
func run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	gc, err := cfg.GameConfig(time.Now())
	if err != nil {
		return err
	}

	ledger, err := session.Open(ctx)
	if err != nil {
		return fmt.Errorf("open session ledger: %w", err)
	}
	defer ledger.Close()

	con := console.New(in, out, console.Options{ShowHidden: cfg.ShowHidden})

	for round := 1; ; round++ {
		g, err := game.New(gc)
		if err != nil {
			return err
		}
		log.Debug().Str("game", g.ID()).Int("round", round).Bool("daily", cfg.Daily).Msg("new round")

		start := time.Now()
		_, playErr := con.Play(ctx, g)
		if err := ledger.Record(ctx, session.ResultOf(g, time.Since(start), time.Now())); err != nil {
			log.Warn().Err(err).Str("game", g.ID()).Msg("record result")
		}
		if errors.Is(playErr, console.ErrQuit) {
			break
		}
		if playErr != nil {
			return playErr
		}

		if cfg.Rounds > 0 {
			if round >= cfg.Rounds {
				break
			}
			continue
		}
		again, err := con.AskPlayAgain()
		if err != nil {
			return err
		}
		if !again {
			break
		}
	}

	summary, err := ledger.Summary(ctx)
	if err != nil {
		return fmt.Errorf("session summary: %w", err)
	}
	best, err := ledger.Best(ctx, 1)
	if err != nil {
		return fmt.Errorf("best games: %w", err)
	}
	console.RenderSummary(out, summary, best)
	return nil
}
