// internal/board/board.go
//
// Rectangular tile grid shared by the hidden and playing boards.
// The grid keeps no history; it is the single source of truth for rendering.

package board

import "github.com/robalobadob/battleships/internal/coord"

// Tile is the content of one board cell.
type Tile uint8

const (
	Blank Tile = iota
	Ship
	Hit
	Miss
)

func (t Tile) String() string {
	switch t {
	case Blank:
		return "blank"
	case Ship:
		return "ship"
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	default:
		return "unknown"
	}
}

// Board is a rows x cols grid of tiles, indexed [row][col].
type Board struct {
	cells [][]Tile
}

// New creates a board with every cell Blank.
// Callers are expected to pass positive dimensions.
func New(rows, cols int) *Board {
	cells := make([][]Tile, rows)
	for r := range cells {
		cells[r] = make([]Tile, cols)
	}
	return &Board{cells: cells}
}

// Place sets the tile at c.
func (b *Board) Place(c coord.Coordinate, t Tile) {
	b.cells[c.Row][c.Col] = t
}

// Clear resets the tile at c to Blank.
func (b *Board) Clear(c coord.Coordinate) {
	b.Place(c, Blank)
}

// Grid returns a deep copy of the tiles, indexed [row][col].
func (b *Board) Grid() [][]Tile {
	out := make([][]Tile, len(b.cells))
	for r, row := range b.cells {
		out[r] = append([]Tile(nil), row...)
	}
	return out
}
