package battlemap

import "github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"

// Edit is one change made in the editor
type Edit interface {
	apply(g grid.GameGrid) (grid.GameGrid, error)
}

// PlaceToken puts a token on a cell
type PlaceToken struct {
	Col, Row int
	Token    grid.Token
}

func (e PlaceToken) apply(g grid.GameGrid) (grid.GameGrid, error) {
	return g.WithToken(e.Col, e.Row, e.Token)
}

// RemoveToken clears the token of a cell
type RemoveToken struct {
	Col, Row int
}

func (e RemoveToken) apply(g grid.GameGrid) (grid.GameGrid, error) {
	return g.WithoutToken(e.Col, e.Row)
}

// MoveToken drags a token to another cell
type MoveToken struct {
	FromCol, FromRow int
	ToCol, ToRow     int
}

func (e MoveToken) apply(g grid.GameGrid) (grid.GameGrid, error) {
	return g.MoveToken(e.FromCol, e.FromRow, e.ToCol, e.ToRow)
}

// PlaceWall puts a wall on the left or top edge of a cell
type PlaceWall struct {
	Col, Row int
	Wall     grid.Wall
}

func (e PlaceWall) apply(g grid.GameGrid) (grid.GameGrid, error) {
	return g.WithWall(e.Col, e.Row, e.Wall)
}

// RemoveWall clears one edge of a cell
type RemoveWall struct {
	Col, Row int
	Position grid.WallPosition
}

func (e RemoveWall) apply(g grid.GameGrid) (grid.GameGrid, error) {
	return g.WithoutWall(e.Col, e.Row, e.Position)
}

// PaintBackground colors a cell
type PaintBackground struct {
	Col, Row int
	Color    grid.Color
}

func (e PaintBackground) apply(g grid.GameGrid) (grid.GameGrid, error) {
	return g.WithBackground(e.Col, e.Row, e.Color)
}

// ClearBackground removes the color of a cell
type ClearBackground struct {
	Col, Row int
}

func (e ClearBackground) apply(g grid.GameGrid) (grid.GameGrid, error) {
	return g.WithoutBackground(e.Col, e.Row)
}

// Resize changes the grid size, keeping whatever fits
type Resize struct {
	Cols, Rows int
}

func (e Resize) apply(g grid.GameGrid) (grid.GameGrid, error) {
	return g.Resize(e.Cols, e.Rows)
}

// Rename sets the grid label
type Rename struct {
	Label string
}

func (e Rename) apply(g grid.GameGrid) (grid.GameGrid, error) {
	return g.WithLabel(e.Label), nil
}

// Clear wipes tokens, walls and background
type Clear struct{}

func (Clear) apply(g grid.GameGrid) (grid.GameGrid, error) {
	return g.Clear(), nil
}
