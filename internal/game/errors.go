package game

import (
	"errors"

	"github.com/robalobadob/battleships/internal/coord"
)

// Recoverable validation results: the caller re-prompts and no turn is used.
var (
	ErrInvalidFormat  = coord.ErrInvalidFormat
	ErrDuplicateGuess = errors.New("coordinate already guessed")
)

var (
	// ErrConfiguration means the game cannot start with the given parameters.
	ErrConfiguration = errors.New("invalid game configuration")

	// ErrGameOver is returned for guesses submitted after the game was won or lost.
	ErrGameOver = errors.New("game finished")

	// ErrNotValidated is returned by ApplyGuess for a coordinate that did not
	// come from ValidateGuess or was already applied.
	ErrNotValidated = errors.New("guess not validated")
)
