package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/battleships/internal/game"
)

// ErrQuit is returned when the player types a quit command or input ends.
var ErrQuit = errors.New("player quit")

// errLineTooLong marks an input line past maxLineLen. The line is discarded.
var errLineTooLong = errors.New("input line too long")

var quitWords = map[string]struct{}{"quit": {}, "exit": {}}

// maxLineLen caps how much of one input line is kept. No board label comes
// close.
const maxLineLen = 1024

const (
	promptFirst     = "\nPlease guess a ship's location: "
	promptInvalid   = "\nInvalid entry provided, please re-try in this format %s i.e %s: "
	promptDuplicate = "\nYou've guessed that one already, please try another: "
	promptAgain     = "\nPlay again? [y/N]: "
)

// Options tune what the console shows.
type Options struct {
	ShowHidden bool // print the hidden board above the playing board
}

// Console drives a game over a line-oriented reader and writer.
type Console struct {
	in   *bufio.Reader
	out  io.Writer
	opts Options
}

// New wraps in and out. in is read one line at a time.
func New(in io.Reader, out io.Writer, opts Options) *Console {
	return &Console{in: bufio.NewReader(in), out: out, opts: opts}
}

// Play runs g to completion: intro, prompt loop, end-of-game board.
// It returns the final state, or ErrQuit if the player left early.
func (c *Console) Play(ctx context.Context, g *game.Game) (game.State, error) {
	logger := log.With().Str("game", g.ID()).Logger()
	logger.Info().
		Int("ships", g.State().ShipCount).
		Int("guesses", g.State().GuessBudget).
		Msg("game started")

	RenderIntro(c.out, g)
	c.renderBoards(g)

	for !g.State().Finished() {
		if err := ctx.Err(); err != nil {
			return g.State(), err
		}

		turn, err := c.playTurn(g)
		if err != nil {
			logger.Info().Err(err).Msg("game abandoned")
			return g.State(), err
		}
		st := turn.State
		logger.Debug().
			Str("guess", turn.Label).
			Str("outcome", string(turn.Outcome)).
			Int("taken", st.GuessesTaken).
			Int("sunk", st.ShipsSunk).
			Str("status", string(st.Status)).
			Msg("guess applied")

		c.renderBoards(g)

		if st.Won() {
			RenderScore(c.out, st, g.History(), fmt.Sprintf("Congratulations! You've sunk all %d ships!", st.ShipCount))
			break
		}
		RenderScore(c.out, st, g.History(), OutcomeLabel(turn.Outcome))

		if st.Status == game.StatusLost {
			g.RevealRemainingShips()
			c.renderBoards(g)
			RenderScore(c.out, st, g.History(), "Sorry, you're out of guesses. Thanks for playing")
		}
	}

	st := g.State()
	logger.Info().
		Str("status", string(st.Status)).
		Int("taken", st.GuessesTaken).
		Int("sunk", st.ShipsSunk).
		Msg("game finished")
	return st, nil
}

// playTurn prompts until the player enters a new, well-formed coordinate and
// applies it. Rejected input never costs a turn.
func (c *Console) playTurn(g *game.Game) (game.Turn, error) {
	fmt.Fprint(c.out, promptFirst)
	for {
		line, err := c.readLine()
		if errors.Is(err, errLineTooLong) {
			log.Debug().Msg("oversized guess discarded")
			fmt.Fprintf(c.out, promptInvalid, g.Codec().InputFormat(), exampleLabel(g.Codec()))
			continue
		}
		if err != nil {
			return game.Turn{}, err
		}

		turn, err := g.Guess(line)
		switch {
		case err == nil:
			return turn, nil
		case errors.Is(err, game.ErrDuplicateGuess):
			log.Debug().Str("input", line).Msg("duplicate guess")
			fmt.Fprint(c.out, promptDuplicate)
		case errors.Is(err, game.ErrInvalidFormat):
			log.Debug().Str("input", line).Msg("invalid guess")
			fmt.Fprintf(c.out, promptInvalid, g.Codec().InputFormat(), exampleLabel(g.Codec()))
		default:
			return game.Turn{}, fmt.Errorf("apply guess: %w", err)
		}
	}
}

// AskPlayAgain reports whether the player wants another round.
func (c *Console) AskPlayAgain() (bool, error) {
	fmt.Fprint(c.out, promptAgain)
	line, err := c.readLine()
	if errors.Is(err, ErrQuit) {
		return false, nil
	}
	if errors.Is(err, errLineTooLong) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// readLine returns the next trimmed line. End of input and quit words map
// to ErrQuit. Lines longer than maxLineLen are consumed and reported as
// errLineTooLong.
func (c *Console) readLine() (string, error) {
	var (
		buf      []byte
		tooLong  bool
		sawInput bool
	)
	for {
		chunk, err := c.in.ReadSlice('\n')
		sawInput = sawInput || len(chunk) > 0
		if !tooLong {
			if len(buf)+len(chunk) > maxLineLen {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if !sawInput {
				return "", ErrQuit
			}
			break
		}
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		break
	}
	if tooLong {
		return "", errLineTooLong
	}

	line := strings.TrimSpace(string(buf))
	if _, ok := quitWords[strings.ToLower(line)]; ok {
		return "", ErrQuit
	}
	return line, nil
}

func (c *Console) renderBoards(g *game.Game) {
	if c.opts.ShowHidden {
		RenderBoard(c.out, g.Codec(), g.HiddenBoard(), "Hidden Board")
	}
	RenderBoard(c.out, g.Codec(), g.PlayingBoard(), "Playing Board")
}
