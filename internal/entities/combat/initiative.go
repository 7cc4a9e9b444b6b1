package combat

import "github.com/KirkDiggler/rpg-tabletop/internal/dice"

// InitiativeKind selects how initiative values are compared
type InitiativeKind string

// Initiative kinds
const (
	// InitiativeRoll uses the rolled d20 plus modifier
	InitiativeRoll InitiativeKind = "roll"
	// InitiativeStatic uses 10 plus modifier and ignores the die
	InitiativeStatic InitiativeKind = "static"
)

// Valid reports whether k is a known kind
func (k InitiativeKind) Valid() bool {
	return k == InitiativeRoll || k == InitiativeStatic
}

// Initiative is either a fixed number or a d20 roll with a modifier
type Initiative struct {
	Fixed      bool
	FixedValue int
	Roll       int
	Modifier   int
}

// FixedInitiative is an initiative somebody rolled at the table
func FixedInitiative(value int) Initiative {
	return Initiative{Fixed: true, FixedValue: value}
}

// RollInitiative rolls a d20 for the given modifier
func RollInitiative(modifier int, roller dice.Roller) Initiative {
	return Initiative{Roll: roller.Roll(int(dice.D20)), Modifier: modifier}
}

// Value returns the number used for ordering under kind
func (i Initiative) Value(kind InitiativeKind) int {
	if i.Fixed {
		return i.FixedValue
	}
	if kind == InitiativeStatic {
		return 10 + i.Modifier
	}
	return i.Roll + i.Modifier
}
