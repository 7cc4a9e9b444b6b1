// Package dice implements the dice engine and the roll expression language
// ("2d12-3") shared by the dice roller, the encounter tracker and the grid
// editor.
package dice

import (
	"strconv"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// Die is the number of faces of a die
type Die int

// Supported dice
const (
	D2   Die = 2
	D3   Die = 3
	D4   Die = 4
	D6   Die = 6
	D8   Die = 8
	D10  Die = 10
	D12  Die = 12
	D20  Die = 20
	D100 Die = 100
)

// MaxAmount bounds the number of dice in a single roll
const MaxAmount = 1000

// Dice lists every supported die in ascending order
var Dice = []Die{D2, D3, D4, D6, D8, D10, D12, D20, D100}

// Valid reports whether d is one of the supported dice
func (d Die) Valid() bool {
	for _, known := range Dice {
		if d == known {
			return true
		}
	}
	return false
}

// String returns the die in "d20" form
func (d Die) String() string {
	return "d" + strconv.Itoa(int(d))
}

// DieRoll is a number of identical dice rolled together
type DieRoll struct {
	Die    Die `json:"die"`
	Amount int `json:"amount"`
}

// NewDieRoll validates die and amount
func NewDieRoll(die Die, amount int) (DieRoll, error) {
	if !die.Valid() {
		return DieRoll{}, errors.InvalidArgumentf("unsupported die %s", die)
	}
	if amount < 1 {
		return DieRoll{}, errors.InvalidArgumentf("amount must be positive, got %d", amount)
	}
	if amount > MaxAmount {
		return DieRoll{}, errors.OutOfRangef("amount must not exceed %d, got %d", MaxAmount, amount)
	}
	return DieRoll{Die: die, Amount: amount}, nil
}

// IsZero reports whether the roll has no dice
func (r DieRoll) IsZero() bool {
	return r.Amount == 0
}

// Roll draws Amount dice and returns their sum.
// The result is always within [Amount, Amount*Die].
func (r DieRoll) Roll(roller Roller) int {
	total := 0
	for _, v := range r.RollEach(roller) {
		total += v
	}
	return total
}

// RollEach draws Amount dice and returns the individual faces
func (r DieRoll) RollEach(roller Roller) []int {
	faces := make([]int, r.Amount)
	for i := range faces {
		faces[i] = roller.Roll(int(r.Die))
	}
	return faces
}

// String returns the roll in "2d6" form
func (r DieRoll) String() string {
	return strconv.Itoa(r.Amount) + r.Die.String()
}
