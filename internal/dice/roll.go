package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

var (
	// "w" is the German Würfel, still typed by half the table
	rollPattern     = regexp.MustCompile(`^(\d+)[dw](\d+)([+-]\d+)?$`)
	modifierPattern = regexp.MustCompile(`^[+-]?\d+$`)
)

// Roll is an optional group of dice plus a flat modifier, e.g. "2d12-3".
// It encodes to JSON as its canonical string.
type Roll struct {
	Dice     DieRoll
	Modifier int
}

// RollResult is the outcome of rolling a Roll
type RollResult struct {
	DieResult int `json:"dieResult"`
	Modifier  int `json:"modifier"`
}

// Value is the die result plus the modifier
func (r RollResult) Value() int {
	return r.DieResult + r.Modifier
}

// NewRoll creates a roll of amount dice with an optional modifier
func NewRoll(amount int, die Die, modifier ...int) (Roll, error) {
	dr, err := NewDieRoll(die, amount)
	if err != nil {
		return Roll{}, err
	}
	mod := 0
	for _, m := range modifier {
		mod += m
	}
	return Roll{Dice: dr, Modifier: mod}, nil
}

// MustRoll is NewRoll for package level tables; it panics on invalid input
func MustRoll(amount int, die Die, modifier ...int) Roll {
	r, err := NewRoll(amount, die, modifier...)
	if err != nil {
		panic(err)
	}
	return r
}

// Modifier creates a roll without dice
func Modifier(m int) Roll {
	return Roll{Modifier: m}
}

// D20Plus is a single d20 with the given modifier
func D20Plus(modifier int) Roll {
	return Roll{Dice: DieRoll{Die: D20, Amount: 1}, Modifier: modifier}
}

// HasDice reports whether the roll draws any dice
func (r Roll) HasDice() bool {
	return !r.Dice.IsZero()
}

// Roll draws the dice. A roll without dice yields its modifier only.
func (r Roll) Roll(roller Roller) RollResult {
	if !r.HasDice() {
		return RollResult{Modifier: r.Modifier}
	}
	return RollResult{DieResult: r.Dice.Roll(roller), Modifier: r.Modifier}
}

// Min is the lowest value the roll can produce
func (r Roll) Min() int {
	return r.Dice.Amount + r.Modifier
}

// Max is the highest value the roll can produce
func (r Roll) Max() int {
	return r.Dice.Amount*int(r.Dice.Die) + r.Modifier
}

// String returns the canonical form: "2d12-3", "1d20", "+4"
func (r Roll) String() string {
	if !r.HasDice() {
		if r.Modifier == 0 {
			return "0"
		}
		return fmt.Sprintf("%+d", r.Modifier)
	}
	if r.Modifier == 0 {
		return r.Dice.String()
	}
	return fmt.Sprintf("%s%+d", r.Dice, r.Modifier)
}

// MarshalText encodes the roll in its canonical form
func (r Roll) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a roll expression
func (r *Roll) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Parse reads a roll expression. Whitespace and case are ignored and both
// "d" and "w" separate amount from die: "1 D 20 + 4", "2w6".
func Parse(expr string) (Roll, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, expr)

	if modifierPattern.MatchString(s) {
		mod, err := strconv.Atoi(s)
		if err != nil {
			return Roll{}, errors.InvalidArgumentf("invalid modifier in roll %q", expr)
		}
		return Modifier(mod), nil
	}

	matches := rollPattern.FindStringSubmatch(s)
	if matches == nil {
		return Roll{}, errors.InvalidArgumentf("invalid roll %q (expected format: 2d6+1)", expr)
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return Roll{}, errors.InvalidArgumentf("invalid amount in roll %q", expr)
	}
	sides, err := strconv.Atoi(matches[2])
	if err != nil {
		return Roll{}, errors.InvalidArgumentf("invalid die in roll %q", expr)
	}
	mod := 0
	if matches[3] != "" {
		mod, err = strconv.Atoi(matches[3])
		if err != nil {
			return Roll{}, errors.InvalidArgumentf("invalid modifier in roll %q", expr)
		}
	}

	r, err := NewRoll(amount, Die(sides), mod)
	if err != nil {
		return Roll{}, errors.Wrapf(err, "invalid roll %q", expr)
	}
	return r, nil
}

// MustParse is Parse for fixtures and package level tables
func MustParse(expr string) Roll {
	r, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return r
}
