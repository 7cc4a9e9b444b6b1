package grid

import (
	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
)

var (
	labelAdjectives = []string{
		"Forgotten", "Sunken", "Haunted", "Burning", "Silent",
		"Crumbling", "Frozen", "Hidden", "Cursed", "Misty",
	}
	labelPlaces = []string{
		"Crypt", "Keep", "Cavern", "Tavern", "Bridge",
		"Temple", "Mine", "Tower", "Marsh", "Library",
	}
)

// NewInitial creates a blank grid with a random placeholder label
func NewInitial(cols, rows int, roller dice.Roller) (GameGrid, error) {
	g, err := New(cols, rows)
	if err != nil {
		return GameGrid{}, err
	}
	if roller == nil {
		roller = dice.DefaultRoller
	}
	g.Label = PlaceholderLabel(roller)
	return g, nil
}

// PlaceholderLabel picks a name like "Sunken Temple"
func PlaceholderLabel(roller dice.Roller) string {
	adj := labelAdjectives[roller.Roll(len(labelAdjectives))-1]
	place := labelPlaces[roller.Roll(len(labelPlaces))-1]
	return adj + " " + place
}
