package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/battleships/internal/board"
	"github.com/robalobadob/battleships/internal/coord"
	"github.com/robalobadob/battleships/internal/game"
	"github.com/robalobadob/battleships/internal/session"
)

func newGame(t *testing.T, ships, guesses int) *game.Game {
	t.Helper()
	g, err := game.New(game.Config{Ships: ships, Guesses: guesses, Source: game.NewSource(2024)})
	require.NoError(t, err)
	return g
}

// shipsOf reads the surviving ships off the hidden board, row by row.
func shipsOf(g *game.Game) []coord.Coordinate {
	var out []coord.Coordinate
	for r, row := range g.HiddenBoard() {
		for c, tile := range row {
			if tile == board.Ship {
				out = append(out, coord.At(c, r))
			}
		}
	}
	return out
}

// misses returns n labels that are not ship cells.
func misses(g *game.Game, n int) []string {
	var out []string
	for r, row := range g.HiddenBoard() {
		for c, tile := range row {
			if len(out) == n {
				return out
			}
			if tile != board.Ship {
				out = append(out, g.Codec().Encode(coord.At(c, r)))
			}
		}
	}
	return out
}

func mustDecode(k *coord.Codec, text string) coord.Coordinate {
	c, err := k.Decode(text)
	if err != nil {
		panic(err)
	}
	return c
}

func lines(in ...string) *strings.Reader {
	return strings.NewReader(strings.Join(in, "\n") + "\n")
}

func TestRenderBoard_Layout(t *testing.T) {
	k := coord.DefaultCodec()
	b := board.New(8, 8)
	b.Place(mustDecode(k, "a2"), board.Miss)
	b.Place(mustDecode(k, "b1"), board.Hit)
	b.Place(mustDecode(k, "h8"), board.Ship)

	var out bytes.Buffer
	RenderBoard(&out, k, b.Grid(), "Playing Board")

	got := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(got), 11)
	assert.Equal(t, "", got[0])
	assert.Equal(t, "   1 2 3 4 5 6 7 8", got[1])
	assert.Equal(t, " a| |x| | | | | | |", got[2])
	assert.Equal(t, " b|@| | | | | | | |", got[3])
	assert.Equal(t, " h| | | | | | | |s|", got[9])
	assert.Equal(t, "    Playing Board", got[10])
}

func TestRenderBoard_WideColumns(t *testing.T) {
	k, err := coord.GenerateCodec(2, 10)
	require.NoError(t, err)
	b := board.New(2, 10)
	b.Place(coord.At(9, 1), board.Miss)

	var out bytes.Buffer
	RenderBoard(&out, k, b.Grid(), "T")

	got := strings.Split(out.String(), "\n")
	assert.Equal(t, "   1  2  3  4  5  6  7  8  9  10", got[1])
	assert.Equal(t, " b|  |  |  |  |  |  |  |  |  |x |", got[3])
}

func TestRenderScore(t *testing.T) {
	var out bytes.Buffer
	st := game.State{GuessesTaken: 4, GuessBudget: 20, ShipsSunk: 1, ShipCount: 2, Status: game.StatusPlaying}
	RenderScore(&out, st, []string{"a1", "b2", "c3", "d4"}, "Warm")

	s := out.String()
	assert.Contains(t, s, "Ships sunk: 1 of 2")
	assert.Contains(t, s, "Guesses left: 16 of 20")
	assert.Contains(t, s, "Accuracy: 25.0%")
	assert.Contains(t, s, "Guesses: a1 b2 c3 d4")
	assert.Contains(t, s, "\nWarm\n")
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "Hit!", OutcomeLabel(game.OutcomeHit))
	assert.Equal(t, "Hot", OutcomeLabel(game.OutcomeHot))
	assert.Equal(t, "Warm", OutcomeLabel(game.OutcomeWarm))
	assert.Equal(t, "Cold", OutcomeLabel(game.OutcomeCold))
}

func TestPlay_WinWithRejectedInput(t *testing.T) {
	g := newGame(t, 2, 5)
	ships := shipsOf(g)
	k := g.Codec()
	miss := misses(g, 1)[0]

	in := lines(
		"zz",
		miss,
		strings.ToUpper(miss),
		k.Encode(ships[0]),
		"",
		k.Encode(ships[1]),
	)
	var out bytes.Buffer
	st, err := New(in, &out, Options{}).Play(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, game.StatusWon, st.Status)
	assert.Equal(t, 3, st.GuessesTaken)
	assert.Equal(t, 2, st.ShipsSunk)

	s := out.String()
	assert.Contains(t, s, "Welcome to Battleship")
	assert.Contains(t, s, "Invalid entry provided, please re-try in this format [a-h][1-8] i.e e5")
	assert.Contains(t, s, "You've guessed that one already")
	assert.Contains(t, s, "Hit!")
	assert.Contains(t, s, "Congratulations! You've sunk all 2 ships!")
	assert.NotContains(t, s, "Hidden Board")
}

func TestPlay_OversizedLineIsRejected(t *testing.T) {
	g := newGame(t, 2, 5)
	ships := shipsOf(g)
	k := g.Codec()

	in := lines(
		strings.Repeat("a", 70000),
		k.Encode(ships[0]),
		k.Encode(ships[1]),
	)
	var out bytes.Buffer
	st, err := New(in, &out, Options{}).Play(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, game.StatusWon, st.Status)
	assert.Equal(t, 2, st.GuessesTaken)
	assert.Contains(t, out.String(), "Invalid entry provided")
}

func TestPlay_LastLineWithoutNewline(t *testing.T) {
	g := newGame(t, 1, 5)
	in := strings.NewReader(g.Codec().Encode(shipsOf(g)[0]))

	st, err := New(in, &bytes.Buffer{}, Options{}).Play(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, game.StatusWon, st.Status)
}

func TestPlay_LoseRevealsShips(t *testing.T) {
	g := newGame(t, 2, 3)

	var out bytes.Buffer
	c := New(lines(misses(g, 3)...), &out, Options{ShowHidden: true})
	st, err := c.Play(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, game.StatusLost, st.Status)
	assert.Equal(t, 3, st.GuessesTaken)

	s := out.String()
	assert.Contains(t, s, "Hidden Board")
	assert.Contains(t, s, "Sorry, you're out of guesses. Thanks for playing")

	playing := g.PlayingBoard()
	for _, ship := range shipsOf(g) {
		assert.Equal(t, board.Ship, playing[ship.Row][ship.Col])
	}
}

func TestPlay_QuitAndEOF(t *testing.T) {
	g := newGame(t, 2, 10)
	st, err := New(lines("quit"), &bytes.Buffer{}, Options{}).Play(context.Background(), g)
	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, game.StatusPlaying, st.Status)

	g = newGame(t, 2, 10)
	_, err = New(strings.NewReader(""), &bytes.Buffer{}, Options{}).Play(context.Background(), g)
	assert.ErrorIs(t, err, ErrQuit)
}

func TestPlay_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newGame(t, 2, 10)
	_, err := New(lines("a1"), &bytes.Buffer{}, Options{}).Play(ctx, g)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, g.History())
}

func TestAskPlayAgain(t *testing.T) {
	c := New(lines("y", "YES", "n", "whatever"), &bytes.Buffer{}, Options{})
	for _, want := range []bool{true, true, false, false} {
		got, err := c.AskPlayAgain()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// end of input means no
	got, err := c.AskPlayAgain()
	require.NoError(t, err)
	assert.False(t, got)
}

func TestRenderSummary(t *testing.T) {
	var out bytes.Buffer
	RenderSummary(&out, session.Summary{Games: 4, Wins: 1, Guesses: 50, ShipsSunk: 5},
		[]session.Result{{Guesses: 7, Ships: 2, ElapsedMs: 12500}})

	s := out.String()
	assert.Contains(t, s, "Games played: 4")
	assert.Contains(t, s, "Wins: 1 (25.0%)")
	assert.Contains(t, s, "Accuracy: 10.0%")
	assert.Contains(t, s, "Best game: 7 guesses for 2 ships (12.5s)")
}
