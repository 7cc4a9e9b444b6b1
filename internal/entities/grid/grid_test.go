package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

type GameGridTestSuite struct {
	suite.Suite
	blank grid.GameGrid
	pawn  grid.Token
}

func (s *GameGridTestSuite) SetupTest() {
	g, err := grid.New(5, 4)
	s.Require().NoError(err)
	s.blank = g
	s.pawn = grid.Token{Symbol: grid.SymbolPawn, Color: grid.ColorGreen}
}

func (s *GameGridTestSuite) TestNew_Bounds() {
	_, err := grid.New(0, 3)
	s.True(errors.IsOutOfRange(err))
	_, err = grid.New(3, grid.MaxSize+1)
	s.True(errors.IsOutOfRange(err))

	g, err := grid.New(grid.MaxSize, grid.MaxSize)
	s.Require().NoError(err)
	s.True(g.IsEmpty())
}

func (s *GameGridTestSuite) TestWithToken_LeavesOriginalUntouched() {
	g, err := s.blank.WithToken(2, 1, s.pawn)
	s.Require().NoError(err)

	tok, ok := g.TokenAt(2, 1)
	s.True(ok)
	s.Equal(s.pawn, tok)
	s.False(g.IsEmpty())

	_, ok = s.blank.TokenAt(2, 1)
	s.False(ok)
	s.True(s.blank.IsEmpty())
}

func (s *GameGridTestSuite) TestEdits_OutOfBounds() {
	_, err := s.blank.WithToken(5, 0, s.pawn)
	s.True(errors.IsOutOfRange(err))
	_, err = s.blank.WithoutToken(-1, 0)
	s.True(errors.IsOutOfRange(err))
	_, err = s.blank.WithBackground(0, 4, grid.ColorRed)
	s.True(errors.IsOutOfRange(err))
	_, err = s.blank.WithWall(9, 9, grid.Wall{Symbol: grid.WallDoor, Position: grid.WallTop, Color: grid.ColorRed})
	s.True(errors.IsOutOfRange(err))

	_, ok := s.blank.TokenAt(100, 100)
	s.False(ok)
	_, ok = s.blank.WallAt(-1, 0, grid.WallLeft)
	s.False(ok)
}

func (s *GameGridTestSuite) TestEdits_InvalidValues() {
	_, err := s.blank.WithToken(0, 0, grid.Token{Symbol: "?", Color: grid.ColorRed})
	s.True(errors.IsInvalidArgument(err))
	_, err = s.blank.WithBackground(0, 0, "teal")
	s.True(errors.IsInvalidArgument(err))
	_, err = s.blank.WithoutWall(0, 0, "bottom")
	s.True(errors.IsInvalidArgument(err))
}

func (s *GameGridTestSuite) TestWalls() {
	door := grid.Wall{Symbol: grid.WallDoor, Position: grid.WallTop, Color: grid.ColorOrange}
	g, err := s.blank.WithWall(1, 1, door)
	s.Require().NoError(err)

	w, ok := g.WallAt(1, 1, grid.WallTop)
	s.True(ok)
	s.Equal(door, w)
	_, ok = g.WallAt(1, 1, grid.WallLeft)
	s.False(ok)

	g, err = g.WithoutWall(1, 1, grid.WallTop)
	s.Require().NoError(err)
	s.True(g.IsEmpty())
}

func (s *GameGridTestSuite) TestBackground() {
	g, err := s.blank.WithBackground(4, 3, grid.ColorPurple)
	s.Require().NoError(err)
	c, ok := g.BackgroundAt(4, 3)
	s.True(ok)
	s.Equal(grid.ColorPurple, c)

	g, err = g.WithoutBackground(4, 3)
	s.Require().NoError(err)
	s.True(g.IsEmpty())
}

func (s *GameGridTestSuite) TestMoveToken() {
	g, err := s.blank.WithToken(0, 0, s.pawn)
	s.Require().NoError(err)

	moved, err := g.MoveToken(0, 0, 3, 2)
	s.Require().NoError(err)
	_, ok := moved.TokenAt(0, 0)
	s.False(ok)
	tok, ok := moved.TokenAt(3, 2)
	s.True(ok)
	s.Equal(s.pawn, tok)

	_, ok = g.TokenAt(0, 0)
	s.True(ok, "original keeps its token")

	_, err = moved.MoveToken(0, 0, 1, 1)
	s.True(errors.IsNotFound(err))
	_, err = moved.MoveToken(3, 2, 5, 5)
	s.True(errors.IsOutOfRange(err))
}

func (s *GameGridTestSuite) TestClear() {
	g, err := s.blank.WithToken(1, 1, s.pawn)
	s.Require().NoError(err)
	g.ID = "grid_1"
	g = g.WithLabel("Cellar")

	cleared := g.Clear()
	s.True(cleared.IsEmpty())
	s.Equal("grid_1", cleared.ID)
	s.Equal("Cellar", cleared.Label)
	s.Equal(5, cleared.Cols())
}

func (s *GameGridTestSuite) TestResize_KeepsOverlap() {
	g, err := s.blank.WithToken(4, 3, s.pawn)
	s.Require().NoError(err)
	g, err = g.WithBackground(1, 1, grid.ColorBlue)
	s.Require().NoError(err)
	g, err = g.WithWall(1, 1, grid.Wall{Symbol: grid.WallWindow, Position: grid.WallLeft, Color: grid.ColorWhite})
	s.Require().NoError(err)

	bigger, err := g.Resize(8, 6)
	s.Require().NoError(err)
	s.Equal(8, bigger.Cols())
	_, ok := bigger.TokenAt(4, 3)
	s.True(ok)
	c, ok := bigger.BackgroundAt(1, 1)
	s.True(ok)
	s.Equal(grid.ColorBlue, c)
	_, ok = bigger.WallAt(1, 1, grid.WallLeft)
	s.True(ok)
	_, ok = bigger.TokenAt(7, 5)
	s.False(ok)

	smaller, err := g.Resize(3, 3)
	s.Require().NoError(err)
	_, ok = smaller.TokenAt(4, 3)
	s.False(ok)
	_, ok = smaller.BackgroundAt(1, 1)
	s.True(ok)

	_, err = g.Resize(0, 3)
	s.True(errors.IsOutOfRange(err))
}

func (s *GameGridTestSuite) TestCells() {
	g, err := s.blank.WithToken(1, 0, s.pawn)
	s.Require().NoError(err)
	g, err = g.WithBackground(0, 2, grid.ColorRed)
	s.Require().NoError(err)

	cells := g.Cells()
	s.Require().Len(cells, 2)
	s.Equal(1, cells[0].Col)
	s.Equal(s.pawn, cells[0].Token)
	s.Equal(2, cells[1].Row)
	s.Equal(grid.ColorRed, cells[1].Background)
}

func (s *GameGridTestSuite) TestNewInitial() {
	g, err := grid.NewInitial(10, 8, dice.NewScriptedRoller(2, 6))
	s.Require().NoError(err)
	s.Equal("Sunken Temple", g.Label)
	s.True(g.IsEmpty())

	_, err = grid.NewInitial(300, 8, nil)
	s.True(errors.IsOutOfRange(err))
}

func TestGameGridTestSuite(t *testing.T) {
	suite.Run(t, new(GameGridTestSuite))
}

func TestResize_TokenReachability(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cols := rapid.IntRange(1, 20).Draw(rt, "cols")
		rows := rapid.IntRange(1, 20).Draw(rt, "rows")
		col := rapid.IntRange(0, cols-1).Draw(rt, "col")
		row := rapid.IntRange(0, rows-1).Draw(rt, "row")
		newCols := rapid.IntRange(1, 30).Draw(rt, "newCols")
		newRows := rapid.IntRange(1, 30).Draw(rt, "newRows")

		g, err := grid.New(cols, rows)
		require.NoError(rt, err)
		tok := grid.Token{Symbol: grid.SymbolFlag, Color: grid.ColorYellow}
		g, err = g.WithToken(col, row, tok)
		require.NoError(rt, err)

		resized, err := g.Resize(newCols, newRows)
		require.NoError(rt, err)

		got, ok := resized.TokenAt(col, row)
		if col < newCols && row < newRows {
			assert.True(rt, ok)
			assert.Equal(rt, tok, got)
		} else {
			assert.False(rt, ok)
		}
		assert.Len(rt, resized.Cells(), boolToInt(col < newCols && row < newRows))
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
