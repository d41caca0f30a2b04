// internal/console/render.go
//
// Text rendering for boards, the score board and the session summary.
//
// Board layout (8x8 default):
//
//	  1 2 3 4 5 6 7 8
//	a| | | | | | | | |
//	b| | |x| | | | | |
//	 Playing Board
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/battleships/internal/board"
	"github.com/robalobadob/battleships/internal/coord"
	"github.com/robalobadob/battleships/internal/game"
	"github.com/robalobadob/battleships/internal/session"
)

const tileEdge = "|"

// Icons used on the rendered boards.
const (
	IconBlank = " "
	IconShip  = "s"
	IconHit   = "@"
	IconMiss  = "x"
)

// Icon returns the glyph drawn for t.
func Icon(t board.Tile) string {
	switch t {
	case board.Ship:
		return IconShip
	case board.Hit:
		return IconHit
	case board.Miss:
		return IconMiss
	default:
		return IconBlank
	}
}

// OutcomeLabel is the player-facing wording for an outcome.
func OutcomeLabel(o game.Outcome) string {
	switch o {
	case game.OutcomeHit:
		return "Hit!"
	case game.OutcomeHot:
		return "Hot"
	case game.OutcomeWarm:
		return "Warm"
	default:
		return "Cold"
	}
}

// RenderBoard writes grid with column headers, row labels and a title.
func RenderBoard(w io.Writer, k *coord.Codec, grid [][]board.Tile, title string) {
	cols := k.ColLabels()
	rows := k.RowLabels()

	width := 1
	for _, l := range cols {
		width = max(width, len(l))
	}

	header := make([]string, len(cols))
	for i, l := range cols {
		header[i] = pad(l, width)
	}
	fmt.Fprintf(w, "\n   %s\n", strings.Join(header, " "))

	for r, row := range grid {
		cells := make([]string, len(row))
		for c, t := range row {
			cells[c] = pad(Icon(t), width)
		}
		fmt.Fprintf(w, "%2s%s%s%s\n", rows[r], tileEdge, strings.Join(cells, tileEdge), tileEdge)
	}

	indent := len(cols)/2 + len(title)
	fmt.Fprintf(w, "%*s\n\n", indent, title)
}

// pad left-aligns s in a field of n characters.
func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// RenderScore writes the score board followed by message.
func RenderScore(w io.Writer, st game.State, history []string, message string) {
	fmt.Fprintf(w, `
-- -- -- Score Board -- -- --
Ships sunk: %d of %d
Guesses left: %d of %d
Accuracy: %.1f%%
Guesses: %s

%s
-- -- -- -- -- -- -- -- -- --
`,
		st.ShipsSunk, st.ShipCount,
		st.GuessesLeft(), st.GuessBudget,
		st.Accuracy()*100,
		strings.Join(history, " "),
		message,
	)
}

// RenderIntro writes the rules for g.
func RenderIntro(w io.Writer, g *game.Game) {
	st := g.State()
	format := g.Codec().InputFormat()
	example := exampleLabel(g.Codec())
	fmt.Fprintf(w, `
Welcome to Battleship

How to play:
    - You're allowed a total of %d guesses to sink %d ships
    - At the bottom of the Score Board, you'll see the result of your guess as either:
        - "%s" if 0 cells away
        - "%s" if 1 to 2 cells away
        - "%s" if 3 to 4 cells away
        - or "%s" if further away
    - The icon for a hit is "%s" and "%s" for a miss
    - Guesses should be provided starting with the letter of the board and then the number
      in this format %s i.e %s
    - Invalid or repeat inputs don't count as guesses, you'll be prompted to try again
    - Type "quit" to leave

Enjoy the game!
`,
		st.GuessBudget, st.ShipCount,
		OutcomeLabel(game.OutcomeHit), OutcomeLabel(game.OutcomeHot),
		OutcomeLabel(game.OutcomeWarm), OutcomeLabel(game.OutcomeCold),
		IconHit, IconMiss,
		format, example,
	)
}

// exampleLabel picks a cell near the middle of the board for help text.
func exampleLabel(k *coord.Codec) string {
	return k.Encode(coord.At(k.Cols()/2, k.Rows()/2))
}

// RenderSummary writes the end-of-session statistics.
func RenderSummary(w io.Writer, s session.Summary, best []session.Result) {
	fmt.Fprintf(w, `
-- -- -- Session -- -- --
Games played: %d
Wins: %d (%.1f%%)
Accuracy: %.1f%%
`,
		s.Games, s.Wins, s.WinRate()*100, s.Accuracy()*100,
	)
	if len(best) > 0 {
		b := best[0]
		fmt.Fprintf(w, "Best game: %d guesses for %d ships (%.1fs)\n", b.Guesses, b.Ships, float64(b.ElapsedMs)/1000)
	}
	fmt.Fprintln(w, "-- -- -- -- -- -- -- -- --")
}
