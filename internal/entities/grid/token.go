package grid

import (
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// Token is a piece standing on a cell
type Token struct {
	Symbol TokenSymbol `json:"symbol"`
	Color  Color       `json:"color"`
}

// IsZero reports an empty cell
func (t Token) IsZero() bool {
	return t == Token{}
}

// Valid reports whether both symbol and color are known
func (t Token) Valid() bool {
	return t.Symbol.Valid() && t.Color.Valid()
}

// Code returns the two character form used in descriptors and URLs
func (t Token) Code() string {
	return t.Symbol.Code() + t.Color.Code()
}

// ParseToken decodes a two character token code such as "pb"
func ParseToken(code string) (Token, error) {
	if len(code) != 2 {
		return Token{}, errors.InvalidArgumentf("token code %q must be two characters", code)
	}
	sym, err := symbolCodes.value(code[0])
	if err != nil {
		return Token{}, err
	}
	color, err := colorCodes.value(code[1])
	if err != nil {
		return Token{}, err
	}
	return Token{Symbol: sym, Color: color}, nil
}

// WallPosition is the cell edge a wall sits on
type WallPosition string

// Each cell owns its left and top edge
const (
	WallLeft WallPosition = "left"
	WallTop  WallPosition = "top"
)

func (p WallPosition) slot() (int, bool) {
	switch p {
	case WallLeft:
		return 0, true
	case WallTop:
		return 1, true
	default:
		return 0, false
	}
}

func positionOfSlot(slot int) WallPosition {
	if slot%2 == 0 {
		return WallLeft
	}
	return WallTop
}

// Wall is a wall, door or window on a cell edge
type Wall struct {
	Symbol   WallSymbol   `json:"symbol"`
	Position WallPosition `json:"position"`
	Color    Color        `json:"color"`
}

// IsZero reports an empty edge
func (w Wall) IsZero() bool {
	return w == Wall{}
}

// Valid reports whether symbol, position and color are known
func (w Wall) Valid() bool {
	_, ok := w.Position.slot()
	return ok && w.Symbol.Valid() && w.Color.Valid()
}

// Code returns the two character form; the position is implied by the slot
func (w Wall) Code() string {
	return w.Symbol.Code() + w.Color.Code()
}

// ParseWall decodes a two character wall code for the given edge
func ParseWall(code string, pos WallPosition) (Wall, error) {
	if len(code) != 2 {
		return Wall{}, errors.InvalidArgumentf("wall code %q must be two characters", code)
	}
	if _, ok := pos.slot(); !ok {
		return Wall{}, errors.InvalidArgumentf("unknown wall position %q", pos)
	}
	sym, err := wallCodes.value(code[0])
	if err != nil {
		return Wall{}, err
	}
	color, err := colorCodes.value(code[1])
	if err != nil {
		return Wall{}, err
	}
	return Wall{Symbol: sym, Position: pos, Color: color}, nil
}
