package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

const sampleDescriptor = "30x20:-10e4-586:pb1pg1pr1po1pp1-1pk1kk1-592:-30le1-1le1-1de1-1165"

func TestParse_SampleDescriptor(t *testing.T) {
	g, err := grid.Parse(sampleDescriptor)
	require.NoError(t, err)

	assert.Equal(t, 30, g.Cols())
	assert.Equal(t, 20, g.Rows())

	tok, ok := g.TokenAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, grid.Token{Symbol: grid.SymbolPawn, Color: grid.ColorBlue}, tok)

	_, ok = g.TokenAt(5, 0)
	assert.False(t, ok)

	tok, ok = g.TokenAt(7, 0)
	require.True(t, ok)
	assert.Equal(t, grid.Token{Symbol: grid.SymbolKnight, Color: grid.ColorBlack}, tok)

	tok, ok = g.TokenAt(6, 0)
	require.True(t, ok)
	assert.Equal(t, grid.Token{Symbol: grid.SymbolPawn, Color: grid.ColorBlack}, tok)

	bg, ok := g.BackgroundAt(10, 0)
	require.True(t, ok)
	assert.Equal(t, grid.ColorGrey, bg)
	_, ok = g.BackgroundAt(14, 0)
	assert.False(t, ok)

	w, ok := g.WallAt(15, 0, grid.WallLeft)
	require.True(t, ok)
	assert.Equal(t, grid.Wall{Symbol: grid.WallSolid, Position: grid.WallLeft, Color: grid.ColorGrey}, w)
	w, ok = g.WallAt(17, 0, grid.WallLeft)
	require.True(t, ok)
	assert.Equal(t, grid.WallDoor, w.Symbol)
	_, ok = g.WallAt(15, 0, grid.WallTop)
	assert.False(t, ok)

	assert.Equal(t, sampleDescriptor, g.Descriptor())
}

func TestParse_Legacy(t *testing.T) {
	g, err := grid.Parse("4:2/-1sr1-6/-1ly1-14")
	require.NoError(t, err)

	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, 2, g.Rows())
	tok, ok := g.TokenAt(1, 0)
	require.True(t, ok)
	assert.Equal(t, grid.Token{Symbol: grid.SymbolSkull, Color: grid.ColorRed}, tok)
	w, ok := g.WallAt(0, 0, grid.WallTop)
	require.True(t, ok)
	assert.Equal(t, grid.ColorYellow, w.Color)
	assert.Empty(t, g.Cells()[0].Background)

	assert.Equal(t, "4x2:-8:-1sr1-6:-1ly1-14", g.Descriptor())
}

func TestParse_OptionalFields(t *testing.T) {
	g, err := grid.Parse("3x2")
	require.NoError(t, err)
	assert.True(t, g.IsEmpty())
	assert.Equal(t, "3x2:-6:-6:-12", g.Descriptor())

	g, err = grid.Parse("3x2:r2")
	require.NoError(t, err)
	c, ok := g.BackgroundAt(1, 0)
	assert.True(t, ok)
	assert.Equal(t, grid.ColorRed, c)
	_, ok = g.BackgroundAt(2, 0)
	assert.False(t, ok, "short data leaves the rest empty")
}

func TestParse_IgnoresTrailingData(t *testing.T) {
	g, err := grid.Parse("2x1:r2b7zz:-2:-4")
	require.NoError(t, err)
	assert.Equal(t, "2x1:r2:-2:-4", g.Descriptor())

	g, err = grid.Parse("2x1:g9:-2:-4")
	require.NoError(t, err)
	assert.Equal(t, "2x1:g2:-2:-4", g.Descriptor())
}

func TestParse_HugeRunLengths(t *testing.T) {
	g, err := grid.Parse("2x1::pb1-9223372036854775807pb1:")
	require.NoError(t, err)
	token, ok := g.TokenAt(0, 0)
	assert.True(t, ok)
	assert.Equal(t, grid.Token{Symbol: grid.SymbolPawn, Color: grid.ColorBlue}, token)
	_, ok = g.TokenAt(1, 0)
	assert.False(t, ok)

	g, err = grid.Parse("2x1:b1-9223372036854775807b1::")
	require.NoError(t, err)
	assert.Equal(t, "2x1:b1-1:-2:-4", g.Descriptor())

	_, err = grid.Parse("2x1:b1-99999999999999999999b1::")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestParse_ArbitraryInputDoesNotPanic(t *testing.T) {
	alphabet := []rune("0123456789x:-/bkrpgwlde")
	rapid.Check(t, func(rt *rapid.T) {
		body := rapid.SliceOf(rapid.SampledFrom(alphabet)).Draw(rt, "body")
		descriptor := "3x2:" + string(body)
		if rapid.Bool().Draw(rt, "huge") {
			descriptor += "-9223372036854775807pb1"
		}
		assert.NotPanics(rt, func() {
			_, _ = grid.Parse(descriptor)
		})
	})
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		descriptor string
		check      func(error) bool
	}{
		{"empty", "", errors.IsInvalidArgument},
		{"no size", "hello", errors.IsInvalidArgument},
		{"non numeric cols", "ax2:-4", errors.IsInvalidArgument},
		{"non numeric rows", "2xb:-4", errors.IsInvalidArgument},
		{"legacy without rows", "abc/-4", errors.IsInvalidArgument},
		{"zero size", "0x5", errors.IsOutOfRange},
		{"too wide", "201x1", errors.IsOutOfRange},
		{"missing run length", "2x2:r", errors.IsInvalidArgument},
		{"missing empty run length", "2x2:-", errors.IsInvalidArgument},
		{"zero run length", "2x2:r0", errors.IsInvalidArgument},
		{"unknown color", "2x2:z1", errors.IsInvalidArgument},
		{"unknown token", "2x2:-4:zb1", errors.IsInvalidArgument},
		{"truncated token", "2x2:-4:p", errors.IsInvalidArgument},
		{"unknown wall", "2x2:-4:-4:pk1", errors.IsInvalidArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.Parse(tc.descriptor)
			require.Error(t, err)
			assert.True(t, tc.check(err), "unexpected error %v", err)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { grid.MustParse("nope") })
	assert.NotPanics(t, func() { grid.MustParse(sampleDescriptor) })
}

func drawGrid(t *rapid.T) grid.GameGrid {
	cols := rapid.IntRange(1, 12).Draw(t, "cols")
	rows := rapid.IntRange(1, 12).Draw(t, "rows")
	g, err := grid.New(cols, rows)
	require.NoError(t, err)

	edits := rapid.IntRange(0, 40).Draw(t, "edits")
	for i := 0; i < edits; i++ {
		col := rapid.IntRange(0, cols-1).Draw(t, "col")
		row := rapid.IntRange(0, rows-1).Draw(t, "row")
		color := rapid.SampledFrom(grid.Colors()).Draw(t, "color")
		switch rapid.IntRange(0, 2).Draw(t, "layer") {
		case 0:
			g, err = g.WithBackground(col, row, color)
		case 1:
			sym := rapid.SampledFrom(grid.TokenSymbols()).Draw(t, "symbol")
			g, err = g.WithToken(col, row, grid.Token{Symbol: sym, Color: color})
		default:
			sym := rapid.SampledFrom(grid.WallSymbols()).Draw(t, "wall")
			pos := rapid.SampledFrom([]grid.WallPosition{grid.WallLeft, grid.WallTop}).Draw(t, "position")
			g, err = g.WithWall(col, row, grid.Wall{Symbol: sym, Position: pos, Color: color})
		}
		require.NoError(t, err)
	}
	return g
}

func TestDescriptor_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := drawGrid(rt)

		parsed, err := grid.Parse(g.Descriptor())
		require.NoError(rt, err)
		assert.Equal(rt, g, parsed)
		assert.Equal(rt, g.Descriptor(), parsed.Descriptor())
	})
}
