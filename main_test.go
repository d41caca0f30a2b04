package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/battleships/internal/board"
	"github.com/robalobadob/battleships/internal/config"
	"github.com/robalobadob/battleships/internal/coord"
	"github.com/robalobadob/battleships/internal/game"
)

// layouts replays the seeded source to learn the ship labels of the first n
// games a run with cfg will produce.
func layouts(t *testing.T, cfg config.Config, n int) [][]string {
	t.Helper()
	gc, err := cfg.GameConfig(time.Now())
	require.NoError(t, err)

	var out [][]string
	for i := 0; i < n; i++ {
		g, err := game.New(gc)
		require.NoError(t, err)
		var labels []string
		for r, row := range g.HiddenBoard() {
			for c, tile := range row {
				if tile == board.Ship {
					labels = append(labels, g.Codec().Encode(coord.At(c, r)))
				}
			}
		}
		out = append(out, labels)
	}
	return out
}

func baseConfig() config.Config {
	return config.Config{Ships: 2, Guesses: 20, Rows: 8, Cols: 8, Seed: 77, LogLevel: "disabled"}
}

func TestRun_PlayAgainThenStop(t *testing.T) {
	cfg := baseConfig()
	ls := layouts(t, cfg, 2)

	input := strings.Join(ls[0], "\n") + "\ny\n" + strings.Join(ls[1], "\n") + "\nn\n"
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, strings.NewReader(input), &out))

	s := out.String()
	assert.Equal(t, 2, strings.Count(s, "Congratulations! You've sunk all 2 ships!"))
	assert.Contains(t, s, "Games played: 2")
	assert.Contains(t, s, "Wins: 2 (100.0%)")
	assert.Contains(t, s, "Best game: 2 guesses for 2 ships")
}

func TestRun_FixedRounds(t *testing.T) {
	cfg := baseConfig()
	cfg.Rounds = 1
	ls := layouts(t, cfg, 1)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, strings.NewReader(strings.Join(ls[0], "\n")+"\n"), &out))

	s := out.String()
	assert.NotContains(t, s, "Play again?")
	assert.Contains(t, s, "Games played: 1")
}

func TestRun_QuitMidGame(t *testing.T) {
	cfg := baseConfig()

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, strings.NewReader("quit\n"), &out))

	s := out.String()
	assert.Contains(t, s, "Games played: 1")
	assert.Contains(t, s, "Wins: 0 (0.0%)")
	assert.NotContains(t, s, "Best game")
}

func TestRun_ConfigurationError(t *testing.T) {
	cfg := baseConfig()
	cfg.Ships = 100

	err := run(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, game.ErrConfiguration)
}
