package grid

import (
	"fmt"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// Color is one of the nine map colors
type Color string

// Palette
const (
	ColorBlack  Color = "black"
	ColorWhite  Color = "white"
	ColorGrey   Color = "grey"
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
)

// TokenSymbol is the glyph drawn for a token
type TokenSymbol string

// Token glyphs
const (
	SymbolPawn   TokenSymbol = "♙"
	SymbolKnight TokenSymbol = "♘"
	SymbolBishop TokenSymbol = "♗"
	SymbolRook   TokenSymbol = "♖"
	SymbolQueen  TokenSymbol = "♕"
	SymbolKing   TokenSymbol = "♔"
	SymbolSkull  TokenSymbol = "☠"
	SymbolStar   TokenSymbol = "★"
	SymbolHeart  TokenSymbol = "♥"
	SymbolFlag   TokenSymbol = "⚑"
)

// WallSymbol is the kind of edge between two cells
type WallSymbol string

// Wall symbols
const (
	WallSolid  WallSymbol = "wall"
	WallDoor   WallSymbol = "door"
	WallWindow WallSymbol = "window"
)

type codePair[T comparable] struct {
	value T
	char  byte
}

// codeTable is a bidirectional value <-> code character mapping
type codeTable[T comparable] struct {
	name   string
	values []T
	toChar map[T]byte
	toVal  map[byte]T
}

func newCodeTable[T comparable](name string, pairs ...codePair[T]) *codeTable[T] {
	t := &codeTable[T]{
		name:   name,
		values: make([]T, 0, len(pairs)),
		toChar: make(map[T]byte, len(pairs)),
		toVal:  make(map[byte]T, len(pairs)),
	}
	for _, p := range pairs {
		if _, dup := t.toChar[p.value]; dup {
			panic(fmt.Sprintf("grid: %s %v listed twice", name, p.value))
		}
		if prev, dup := t.toVal[p.char]; dup {
			panic(fmt.Sprintf("grid: %s code %q used by %v and %v", name, p.char, prev, p.value))
		}
		t.values = append(t.values, p.value)
		t.toChar[p.value] = p.char
		t.toVal[p.char] = p.value
	}
	return t
}

func (t *codeTable[T]) char(v T) (byte, bool) {
	c, ok := t.toChar[v]
	return c, ok
}

func (t *codeTable[T]) value(c byte) (T, error) {
	v, ok := t.toVal[c]
	if !ok {
		return v, errors.InvalidArgumentf("unknown %s code %q", t.name, c)
	}
	return v, nil
}

var (
	colorCodes  *codeTable[Color]
	symbolCodes *codeTable[TokenSymbol]
	wallCodes   *codeTable[WallSymbol]
)

func init() {
	colorCodes = newCodeTable("color",
		codePair[Color]{ColorBlack, 'k'},
		codePair[Color]{ColorWhite, 'w'},
		codePair[Color]{ColorGrey, 'e'},
		codePair[Color]{ColorRed, 'r'},
		codePair[Color]{ColorOrange, 'o'},
		codePair[Color]{ColorYellow, 'y'},
		codePair[Color]{ColorGreen, 'g'},
		codePair[Color]{ColorBlue, 'b'},
		codePair[Color]{ColorPurple, 'p'},
	)
	symbolCodes = newCodeTable("token symbol",
		codePair[TokenSymbol]{SymbolPawn, 'p'},
		codePair[TokenSymbol]{SymbolKnight, 'k'},
		codePair[TokenSymbol]{SymbolBishop, 'b'},
		codePair[TokenSymbol]{SymbolRook, 'r'},
		codePair[TokenSymbol]{SymbolQueen, 'q'},
		codePair[TokenSymbol]{SymbolKing, 'g'},
		codePair[TokenSymbol]{SymbolSkull, 's'},
		codePair[TokenSymbol]{SymbolStar, 't'},
		codePair[TokenSymbol]{SymbolHeart, 'h'},
		codePair[TokenSymbol]{SymbolFlag, 'f'},
	)
	wallCodes = newCodeTable("wall symbol",
		codePair[WallSymbol]{WallSolid, 'l'},
		codePair[WallSymbol]{WallDoor, 'd'},
		codePair[WallSymbol]{WallWindow, 'w'},
	)
}

// Colors lists the palette in code table order
func Colors() []Color {
	return append([]Color(nil), colorCodes.values...)
}

// TokenSymbols lists every token glyph
func TokenSymbols() []TokenSymbol {
	return append([]TokenSymbol(nil), symbolCodes.values...)
}

// WallSymbols lists every wall symbol
func WallSymbols() []WallSymbol {
	return append([]WallSymbol(nil), wallCodes.values...)
}

// Valid reports whether c is part of the palette
func (c Color) Valid() bool {
	_, ok := colorCodes.char(c)
	return ok
}

// Code returns the one character code of c, or "" for unknown colors
func (c Color) Code() string {
	ch, ok := colorCodes.char(c)
	if !ok {
		return ""
	}
	return string(ch)
}

// ParseColor decodes a one character color code
func ParseColor(code string) (Color, error) {
	if len(code) != 1 {
		return "", errors.InvalidArgumentf("color code %q must be one character", code)
	}
	return colorCodes.value(code[0])
}

// Valid reports whether s is a known glyph
func (s TokenSymbol) Valid() bool {
	_, ok := symbolCodes.char(s)
	return ok
}

// Code returns the one character code of s
func (s TokenSymbol) Code() string {
	ch, ok := symbolCodes.char(s)
	if !ok {
		return ""
	}
	return string(ch)
}

// Valid reports whether s is a known wall symbol
func (s WallSymbol) Valid() bool {
	_, ok := wallCodes.char(s)
	return ok
}

// Code returns the one character code of s
func (s WallSymbol) Code() string {
	ch, ok := wallCodes.char(s)
	if !ok {
		return ""
	}
	return string(ch)
}
