// Package grid is the battle map: a grid of cells carrying an optional
// background color, an optional token and two optional walls, plus the
// compact run-length descriptor used to share maps in URLs and over the API.
//
// GameGrid is a value. Every edit returns a new GameGrid; the arrays an edit
// does not touch are shared with the original and never written again.
package grid

import (
	"time"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// Size bounds for both dimensions
const (
	MinSize = 1
	MaxSize = 200
)

// GameGrid is a cols x rows battle map
type GameGrid struct {
	ID           string
	Label        string
	LastModified time.Time

	cols       int
	rows       int
	background []Color
	tokens     []Token
	walls      []Wall
}

// New creates a blank grid
func New(cols, rows int) (GameGrid, error) {
	if err := checkSize(cols, rows); err != nil {
		return GameGrid{}, err
	}
	return GameGrid{
		cols:       cols,
		rows:       rows,
		background: make([]Color, cols*rows),
		tokens:     make([]Token, cols*rows),
		walls:      make([]Wall, cols*rows*2),
	}, nil
}

func checkSize(cols, rows int) error {
	if cols < MinSize || cols > MaxSize || rows < MinSize || rows > MaxSize {
		return errors.OutOfRangef("grid size %dx%d outside %d..%d", cols, rows, MinSize, MaxSize)
	}
	return nil
}

// Cols returns the width
func (g GameGrid) Cols() int { return g.cols }

// Rows returns the height
func (g GameGrid) Rows() int { return g.rows }

func (g GameGrid) index(col, row int) (int, bool) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return 0, false
	}
	return row*g.cols + col, true
}

func (g GameGrid) mustIndex(col, row int) (int, error) {
	i, ok := g.index(col, row)
	if !ok {
		return 0, errors.OutOfRangef("cell %d,%d outside %dx%d grid", col, row, g.cols, g.rows)
	}
	return i, nil
}

// TokenAt returns the token on a cell; cells off the grid are empty
func (g GameGrid) TokenAt(col, row int) (Token, bool) {
	i, ok := g.index(col, row)
	if !ok || g.tokens[i].IsZero() {
		return Token{}, false
	}
	return g.tokens[i], true
}

// BackgroundAt returns the background color of a cell
func (g GameGrid) BackgroundAt(col, row int) (Color, bool) {
	i, ok := g.index(col, row)
	if !ok || g.background[i] == "" {
		return "", false
	}
	return g.background[i], true
}

// WallAt returns the wall on the left or top edge of a cell
func (g GameGrid) WallAt(col, row int, pos WallPosition) (Wall, bool) {
	i, ok := g.index(col, row)
	slot, known := pos.slot()
	if !ok || !known || g.walls[2*i+slot].IsZero() {
		return Wall{}, false
	}
	return g.walls[2*i+slot], true
}

// Cell is the content of one position, used by Cells
type Cell struct {
	Col, Row   int
	Background Color
	Token      Token
	LeftWall   Wall
	TopWall    Wall
}

// Cells returns every non-empty cell in row-major order
func (g GameGrid) Cells() []Cell {
	var out []Cell
	for i := 0; i < g.cols*g.rows; i++ {
		c := Cell{
			Col:        i % g.cols,
			Row:        i / g.cols,
			Background: g.background[i],
			Token:      g.tokens[i],
			LeftWall:   g.walls[2*i],
			TopWall:    g.walls[2*i+1],
		}
		if c.Background != "" || !c.Token.IsZero() || !c.LeftWall.IsZero() || !c.TopWall.IsZero() {
			out = append(out, c)
		}
	}
	return out
}

// IsEmpty reports a grid without tokens, walls or background
func (g GameGrid) IsEmpty() bool {
	for _, c := range g.background {
		if c != "" {
			return false
		}
	}
	for _, t := range g.tokens {
		if !t.IsZero() {
			return false
		}
	}
	for _, w := range g.walls {
		if !w.IsZero() {
			return false
		}
	}
	return true
}

// WithLabel renames the grid
func (g GameGrid) WithLabel(label string) GameGrid {
	g.Label = label
	return g
}

// WithToken places t on a cell, replacing whatever token stood there
func (g GameGrid) WithToken(col, row int, t Token) (GameGrid, error) {
	if !t.Valid() {
		return GameGrid{}, errors.InvalidArgumentf("invalid token %s/%s", t.Symbol, t.Color)
	}
	i, err := g.mustIndex(col, row)
	if err != nil {
		return GameGrid{}, err
	}
	g.tokens = withItem(g.tokens, i, t)
	return g, nil
}

// WithoutToken clears a cell's token
func (g GameGrid) WithoutToken(col, row int) (GameGrid, error) {
	i, err := g.mustIndex(col, row)
	if err != nil {
		return GameGrid{}, err
	}
	g.tokens = withItem(g.tokens, i, Token{})
	return g, nil
}

// MoveToken moves the token at from onto to, replacing any token there
func (g GameGrid) MoveToken(fromCol, fromRow, toCol, toRow int) (GameGrid, error) {
	from, err := g.mustIndex(fromCol, fromRow)
	if err != nil {
		return GameGrid{}, err
	}
	to, err := g.mustIndex(toCol, toRow)
	if err != nil {
		return GameGrid{}, err
	}
	t := g.tokens[from]
	if t.IsZero() {
		return GameGrid{}, errors.NotFoundf("no token at %d,%d", fromCol, fromRow)
	}
	if from == to {
		return g, nil
	}
	tokens := append([]Token(nil), g.tokens...)
	tokens[from] = Token{}
	tokens[to] = t
	g.tokens = tokens
	return g, nil
}

// WithWall places w on the edge named by w.Position
func (g GameGrid) WithWall(col, row int, w Wall) (GameGrid, error) {
	if !w.Valid() {
		return GameGrid{}, errors.InvalidArgumentf("invalid wall %s/%s/%s", w.Symbol, w.Position, w.Color)
	}
	i, err := g.mustIndex(col, row)
	if err != nil {
		return GameGrid{}, err
	}
	slot, _ := w.Position.slot()
	g.walls = withItem(g.walls, 2*i+slot, w)
	return g, nil
}

// WithoutWall clears one edge of a cell
func (g GameGrid) WithoutWall(col, row int, pos WallPosition) (GameGrid, error) {
	slot, ok := pos.slot()
	if !ok {
		return GameGrid{}, errors.InvalidArgumentf("unknown wall position %q", pos)
	}
	i, err := g.mustIndex(col, row)
	if err != nil {
		return GameGrid{}, err
	}
	g.walls = withItem(g.walls, 2*i+slot, Wall{})
	return g, nil
}

// WithBackground colors a cell
func (g GameGrid) WithBackground(col, row int, c Color) (GameGrid, error) {
	if !c.Valid() {
		return GameGrid{}, errors.InvalidArgumentf("unknown color %q", c)
	}
	i, err := g.mustIndex(col, row)
	if err != nil {
		return GameGrid{}, err
	}
	g.background = withItem(g.background, i, c)
	return g, nil
}

// WithoutBackground clears a cell's color
func (g GameGrid) WithoutBackground(col, row int) (GameGrid, error) {
	i, err := g.mustIndex(col, row)
	if err != nil {
		return GameGrid{}, err
	}
	g.background = withItem(g.background, i, Color(""))
	return g, nil
}

// Clear removes all content but keeps size, id and label
func (g GameGrid) Clear() GameGrid {
	blank, _ := New(g.cols, g.rows)
	blank.ID = g.ID
	blank.Label = g.Label
	blank.LastModified = g.LastModified
	return blank
}

// Resize changes the dimensions. Content in the rectangle both sizes share is
// kept cell by cell; new cells start empty.
func (g GameGrid) Resize(cols, rows int) (GameGrid, error) {
	out, err := New(cols, rows)
	if err != nil {
		return GameGrid{}, err
	}
	out.ID = g.ID
	out.Label = g.Label
	out.LastModified = g.LastModified

	for row := 0; row < min(g.rows, rows); row++ {
		for col := 0; col < min(g.cols, cols); col++ {
			src, _ := g.index(col, row)
			dst, _ := out.index(col, row)
			out.background[dst] = g.background[src]
			out.tokens[dst] = g.tokens[src]
			out.walls[2*dst] = g.walls[2*src]
			out.walls[2*dst+1] = g.walls[2*src+1]
		}
	}
	return out, nil
}

// withItem returns a copy of items with items[i] replaced
func withItem[T any](items []T, i int, v T) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[i] = v
	return out
}
