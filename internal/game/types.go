// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Outcome: proximity classification of a guess (hit/hot/warm/cold).
//   - Status:  lifecycle of a game (setup → playing → won/lost).
//   - State:   immutable counters snapshot handed to the presentation layer.
//   - Turn:    everything a caller needs to render one processed guess.
//   - Config:  setup parameters.

package game

import (
	"math/rand/v2"

	"github.com/robalobadob/battleships/internal/coord"
)

// Outcome is the proximity classification of a guess.
//   - "hit":  the guess is on a surviving ship (distance 0).
//   - "hot":  nearest surviving ship is 1–2 cells away.
//   - "warm": nearest surviving ship is 3–4 cells away.
//   - "cold": anything further.
type Outcome string

const (
	OutcomeHit  Outcome = "hit"
	OutcomeHot  Outcome = "hot"
	OutcomeWarm Outcome = "warm"
	OutcomeCold Outcome = "cold"
)

// Status is the coarse lifecycle state of a game.
type Status string

const (
	StatusSetup   Status = "setup"
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Terminal reports whether no further guesses may be processed.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// State is a value snapshot of a game's counters.
type State struct {
	GuessesTaken int
	GuessBudget  int
	ShipsSunk    int
	ShipCount    int
	Status       Status
}

// GuessesLeft is the remaining budget.
func (s State) GuessesLeft() int { return s.GuessBudget - s.GuessesTaken }

// Accuracy is ships sunk per guess taken, in [0,1]. Zero before any guess.
func (s State) Accuracy() float64 {
	if s.GuessesTaken == 0 {
		return 0
	}
	return float64(s.ShipsSunk) / float64(s.GuessesTaken)
}

// Finished reports whether the game reached won or lost.
func (s State) Finished() bool { return s.Status.Terminal() }

// Won reports whether every ship was sunk.
func (s State) Won() bool { return s.Status == StatusWon }

// Turn is the result of one processed guess.
type Turn struct {
	Coordinate coord.Coordinate
	Label      string
	Outcome    Outcome
	State      State
}

// Source supplies uniform random integers in [0, n) for ship placement.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a deterministic Source for the given seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// globalSource draws from the process-wide generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Config holds the parameters for a new game.
type Config struct {
	Ships   int          // ships to place, default 2
	Guesses int          // guess budget, default 20
	Codec   *coord.Codec // board shape and labels, default 8x8
	Source  Source       // placement randomness, default process-global
}

// DefaultConfig mirrors the classic game: 2 ships, 20 guesses, 8x8 board.
func DefaultConfig() Config {
	return Config{
		Ships:   defaultShips,
		Guesses: defaultGuesses,
		Codec:   coord.DefaultCodec(),
	}
}
