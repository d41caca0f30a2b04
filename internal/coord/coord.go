// internal/coord/coord.go
//
// Coordinate value type and the label codec that maps player input such as
// "d6" onto grid indices.
//
// Input format:
//   - row label first, then column label ("d6" = row "d", column "6").
//   - case-insensitive; surrounding whitespace is ignored.
//   - labels may be longer than one character ("a10"), so decoding searches
//     for a row-label prefix whose remainder is a column label.

package coord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidFormat is returned when text cannot be split into a known
	// row label followed by a known column label.
	ErrInvalidFormat = errors.New("invalid coordinate format")

	// ErrInvalidLabels is returned by NewCodec for empty or repeated labels.
	ErrInvalidLabels = errors.New("invalid board labels")
)

// maxGeneratedRows is the number of single-letter row labels available.
const maxGeneratedRows = 26

// Coordinate identifies one cell by column and row index.
type Coordinate struct {
	Col int
	Row int
}

// At is a convenience constructor for Coordinate.
func At(col, row int) Coordinate {
	return Coordinate{Col: col, Row: row}
}

// Distance returns the Manhattan distance to another coordinate.
func (c Coordinate) Distance(other Coordinate) int {
	dc := c.Col - other.Col
	dr := c.Row - other.Row
	if dc < 0 {
		dc = -dc
	}
	if dr < 0 {
		dr = -dr
	}
	return dc + dr
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Codec translates between text labels and coordinates for one board shape.
// A Codec is immutable once built.
type Codec struct {
	rows []string
	cols []string

	colIndex map[string]int

	minRowLen int
	minColLen int
}

// NewCodec builds a codec from ordered row and column labels.
// The label counts define the board size.
func NewCodec(rowLabels, colLabels []string) (*Codec, error) {
	rows, _, minRow, err := indexLabels("row", rowLabels)
	if err != nil {
		return nil, err
	}
	cols, colIndex, minCol, err := indexLabels("column", colLabels)
	if err != nil {
		return nil, err
	}
	return &Codec{
		rows:      rows,
		cols:      cols,
		colIndex:  colIndex,
		minRowLen: minRow,
		minColLen: minCol,
	}, nil
}

// GenerateCodec builds the standard alphabets: rows a, b, c, … and columns
// 1, 2, 3, ….
func GenerateCodec(rows, cols int) (*Codec, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: board must have at least one row and one column, got %dx%d", ErrInvalidLabels, rows, cols)
	}
	if rows > maxGeneratedRows {
		return nil, fmt.Errorf("%w: at most %d rows supported, got %d", ErrInvalidLabels, maxGeneratedRows, rows)
	}
	rowLabels := make([]string, rows)
	for i := range rowLabels {
		rowLabels[i] = string(rune('a' + i))
	}
	colLabels := make([]string, cols)
	for i := range colLabels {
		colLabels[i] = strconv.Itoa(i + 1)
	}
	return NewCodec(rowLabels, colLabels)
}

// DefaultCodec returns the classic 8x8 board (a–h, 1–8).
func DefaultCodec() *Codec {
	c, err := GenerateCodec(8, 8)
	if err != nil {
		panic(err)
	}
	return c
}

func indexLabels(axis string, labels []string) ([]string, map[string]int, int, error) {
	if len(labels) == 0 {
		return nil, nil, 0, fmt.Errorf("%w: no %s labels", ErrInvalidLabels, axis)
	}
	out := make([]string, len(labels))
	index := make(map[string]int, len(labels))
	minLen := 0
	for i, l := range labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			return nil, nil, 0, fmt.Errorf("%w: blank %s label at position %d", ErrInvalidLabels, axis, i)
		}
		if _, dup := index[l]; dup {
			return nil, nil, 0, fmt.Errorf("%w: duplicate %s label %q", ErrInvalidLabels, axis, l)
		}
		out[i] = l
		index[l] = i
		if minLen == 0 || len(l) < minLen {
			minLen = len(l)
		}
	}
	return out, index, minLen, nil
}

// Rows returns the number of rows.
func (k *Codec) Rows() int { return len(k.rows) }

// Cols returns the number of columns.
func (k *Codec) Cols() int { return len(k.cols) }

// RowLabels returns a copy of the row labels in order.
func (k *Codec) RowLabels() []string { return append([]string(nil), k.rows...) }

// ColLabels returns a copy of the column labels in order.
func (k *Codec) ColLabels() []string { return append([]string(nil), k.cols...) }

// MinInputLen is the shortest text that could possibly decode.
func (k *Codec) MinInputLen() int { return k.minRowLen + k.minColLen }

// MaxDistance is the furthest Manhattan distance between two cells.
func (k *Codec) MaxDistance() int { return len(k.rows) + len(k.cols) - 2 }

// InputFormat describes accepted input, e.g. "[a-h][1-8]".
func (k *Codec) InputFormat() string {
	return fmt.Sprintf("[%s-%s][%s-%s]", k.rows[0], k.rows[len(k.rows)-1], k.cols[0], k.cols[len(k.cols)-1])
}

// Contains reports whether c lies on the board.
func (k *Codec) Contains(c Coordinate) bool {
	return c.Col >= 0 && c.Col < len(k.cols) && c.Row >= 0 && c.Row < len(k.rows)
}

// Decode parses row-label-then-column-label text into a coordinate.
// When more than one split is possible the earliest row label wins.
func (k *Codec) Decode(text string) (Coordinate, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if len(s) < k.MinInputLen() {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}
	for r, label := range k.rows {
		rest, ok := strings.CutPrefix(s, label)
		if !ok {
			continue
		}
		if c, ok := k.colIndex[rest]; ok {
			return At(c, r), nil
		}
	}
	return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
}

// Encode renders c as row label + column label. It returns "" for a
// coordinate outside the board.
func (k *Codec) Encode(c Coordinate) string {
	if !k.Contains(c) {
		return ""
	}
	return k.rows[c.Row] + k.cols[c.Col]
}
