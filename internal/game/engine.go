// internal/game/engine.go
//
// Core game engine for a single hot/cold battleships game.
// Responsibilities:
//   - Validate setup parameters and place ships at random (no duplicates).
//   - Validate guesses (format, repeats) before they cost a turn.
//   - Classify guesses by Manhattan distance to the nearest surviving ship.
//   - Apply guesses to both boards and track playing → won/lost.
//
// Notes:
//   - The engine performs no I/O; presentation drives the loop.
//   - A Game is owned by one caller and is not safe for concurrent use.
//   - Won is checked before Lost, so the last allowed guess can still win.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/robalobadob/battleships/internal/board"
	"github.com/robalobadob/battleships/internal/coord"
)

const (
	defaultShips   = 2
	defaultGuesses = 20
)

// Distance thresholds for classification (inclusive upper bounds).
const (
	hotMaxDistance  = 2
	warmMaxDistance = 4
)

// Game holds the state of one game: both boards, surviving ships, the guess
// history and the counters that drive termination.
type Game struct {
	id    string
	cfg   Config
	codec *coord.Codec

	hidden  *board.Board
	playing *board.Board

	ships   map[coord.Coordinate]struct{}
	history history

	guessesTaken int
	shipsSunk    int
	status       Status
}

// New validates cfg, builds the boards and places the ships.
// It returns ErrConfiguration before any board is built if the parameters
// are impossible.
func New(cfg Config) (*Game, error) {
	if cfg.Codec == nil {
		cfg.Codec = coord.DefaultCodec()
	}
	if cfg.Source == nil {
		cfg.Source = globalSource{}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rows, cols := cfg.Codec.Rows(), cfg.Codec.Cols()
	g := &Game{
		id:      randomID(),
		cfg:     cfg,
		codec:   cfg.Codec,
		hidden:  board.New(rows, cols),
		playing: board.New(rows, cols),
		ships:   make(map[coord.Coordinate]struct{}, cfg.Ships),
		history: newHistory(),
		status:  StatusSetup,
	}
	g.placeShips()
	return g, nil
}

func (c Config) validate() error {
	rows, cols := c.Codec.Rows(), c.Codec.Cols()
	switch {
	case rows <= 0 || cols <= 0:
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrConfiguration, rows, cols)
	case c.Ships < 0:
		return fmt.Errorf("%w: ship count must not be negative, got %d", ErrConfiguration, c.Ships)
	case c.Guesses <= 0:
		return fmt.Errorf("%w: guess budget must be positive, got %d", ErrConfiguration, c.Guesses)
	case c.Ships > rows*cols:
		return fmt.Errorf("%w: %d ships do not fit on a %dx%d board", ErrConfiguration, c.Ships, rows, cols)
	}
	return nil
}

// placeShips draws distinct coordinates until the ship count is reached,
// discarding repeats, then stamps them on the hidden board.
func (g *Game) placeShips() {
	rows, cols := g.codec.Rows(), g.codec.Cols()
	for len(g.ships) < g.cfg.Ships {
		c := coord.At(g.cfg.Source.IntN(cols), g.cfg.Source.IntN(rows))
		g.ships[c] = struct{}{}
	}
	for c := range g.ships {
		g.hidden.Place(c, board.Ship)
	}
	g.status = StatusPlaying
}

// ValidateGuess decodes text and checks it has not been guessed before.
// On success the coordinate is appended to the history and becomes eligible
// for exactly one ApplyGuess; nothing else changes.
//
// Errors:
//   - ErrGameOver when the game is already won or lost.
//   - ErrInvalidFormat when text is not a board coordinate.
//   - ErrDuplicateGuess when the coordinate was already guessed.
func (g *Game) ValidateGuess(text string) (coord.Coordinate, error) {
	if g.status.Terminal() {
		return coord.Coordinate{}, ErrGameOver
	}
	c, err := g.codec.Decode(text)
	if err != nil {
		return coord.Coordinate{}, err
	}
	if !g.history.add(c) {
		return coord.Coordinate{}, fmt.Errorf("%w: %s", ErrDuplicateGuess, g.codec.Encode(c))
	}
	return c, nil
}

// Classify reports how close c is to the nearest surviving ship.
func (g *Game) Classify(c coord.Coordinate) Outcome {
	if len(g.ships) == 0 {
		return OutcomeCold
	}
	return outcomeFor(g.nearestShip(c))
}

// nearestShip returns the minimum Manhattan distance from c to a surviving
// ship, or the maximum board distance when none survive.
func (g *Game) nearestShip(c coord.Coordinate) int {
	nearest := g.codec.MaxDistance()
	for s := range g.ships {
		if d := c.Distance(s); d < nearest {
			nearest = d
		}
	}
	return nearest
}

func outcomeFor(distance int) Outcome {
	switch {
	case distance == 0:
		return OutcomeHit
	case distance <= hotMaxDistance:
		return OutcomeHot
	case distance <= warmMaxDistance:
		return OutcomeWarm
	default:
		return OutcomeCold
	}
}

// ApplyGuess records a classified guess and advances the state machine.
// c must have come from ValidateGuess and not been applied yet; anything
// else returns ErrNotValidated and leaves the game untouched.
//
// A hit on a surviving ship sinks it: the ship leaves the ship set, the
// playing board shows Hit and the hidden cell is cleared. Any other outcome
// marks Miss on the playing board. Every accepted call consumes one guess.
func (g *Game) ApplyGuess(c coord.Coordinate, outcome Outcome) (State, error) {
	if g.status.Terminal() {
		return g.State(), ErrGameOver
	}
	if !g.history.settle(c) {
		return g.State(), fmt.Errorf("%w: %s", ErrNotValidated, c)
	}

	if _, onShip := g.ships[c]; outcome == OutcomeHit && onShip {
		delete(g.ships, c)
		g.shipsSunk++
		g.playing.Place(c, board.Hit)
		g.hidden.Clear(c)
	} else {
		g.playing.Place(c, board.Miss)
	}
	g.guessesTaken++

	switch {
	case g.shipsSunk == g.cfg.Ships:
		g.status = StatusWon
	case g.guessesTaken >= g.cfg.Guesses:
		g.status = StatusLost
	}
	return g.State(), nil
}

// Guess validates, classifies and applies text in one step.
// Validation errors leave the game untouched.
func (g *Game) Guess(text string) (Turn, error) {
	c, err := g.ValidateGuess(text)
	if err != nil {
		return Turn{}, err
	}
	outcome := g.Classify(c)
	st, err := g.ApplyGuess(c, outcome)
	if err != nil {
		return Turn{}, err
	}
	return Turn{
		Coordinate: c,
		Label:      g.codec.Encode(c),
		Outcome:    outcome,
		State:      st,
	}, nil
}

// RevealRemainingShips marks every surviving ship on the playing board.
// It only has an effect once the game is lost.
func (g *Game) RevealRemainingShips() {
	if g.status != StatusLost {
		return
	}
	for c := range g.ships {
		g.playing.Place(c, board.Ship)
	}
}

// State returns a snapshot of the counters.
func (g *Game) State() State {
	return State{
		GuessesTaken: g.guessesTaken,
		GuessBudget:  g.cfg.Guesses,
		ShipsSunk:    g.shipsSunk,
		ShipCount:    g.cfg.Ships,
		Status:       g.status,
	}
}

// ID returns the game's random identifier.
func (g *Game) ID() string { return g.id }

// Codec returns the label codec for this board.
func (g *Game) Codec() *coord.Codec { return g.codec }

// History returns the validated guesses as labels, oldest first.
func (g *Game) History() []string {
	out := make([]string, 0, len(g.history.order))
	for _, c := range g.history.order {
		out = append(out, g.codec.Encode(c))
	}
	return out
}

// PlayingBoard returns a copy of the player-visible grid.
func (g *Game) PlayingBoard() [][]board.Tile { return g.playing.Grid() }

// HiddenBoard returns a copy of the ship layout grid.
func (g *Game) HiddenBoard() [][]board.Tile { return g.hidden.Grid() }

// history is an insertion-ordered set of guessed coordinates. A guess is
// pending between validation and application.
type history struct {
	order   []coord.Coordinate
	seen    map[coord.Coordinate]struct{}
	pending map[coord.Coordinate]struct{}
}

func newHistory() history {
	return history{
		seen:    make(map[coord.Coordinate]struct{}),
		pending: make(map[coord.Coordinate]struct{}),
	}
}

// add appends c and reports true, or reports false if c was already present.
func (h *history) add(c coord.Coordinate) bool {
	if _, ok := h.seen[c]; ok {
		return false
	}
	h.seen[c] = struct{}{}
	h.pending[c] = struct{}{}
	h.order = append(h.order, c)
	return true
}

// settle marks a pending guess as applied. It reports false if c was never
// validated or was already applied.
func (h *history) settle(c coord.Coordinate) bool {
	if _, ok := h.pending[c]; !ok {
		return false
	}
	delete(h.pending, c)
	return true
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
