package combat_test

import (
	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/entities/combat"
)

func goblin() combat.Kind {
	return combat.Kind{
		Label:      "Goblin",
		ArmorClass: 15,
		Speed:      30,
		HitDie:     dice.MustRoll(2, dice.D6),
		Initiative: 2,
		Saves: combat.SavingThrows{
			Set:       combat.SaveSetAbilities,
			Modifiers: map[combat.SaveCategory]int{combat.SaveDexterity: 2},
		},
		Attacks: []combat.Attack{
			{Label: "Scimitar", ToHit: 4, Damage: []combat.Damage{{Roll: dice.MustRoll(1, dice.D6, 2), Type: "slashing"}}},
			{Label: "Shortbow", ToHit: 4, Damage: []combat.Damage{{Roll: dice.MustRoll(1, dice.D6, 2), Type: "piercing"}}},
		},
	}
}

func ogre() combat.Kind {
	return combat.Kind{
		Label:      "Ogre",
		ArmorClass: 11,
		Speed:      40,
		HitDie:     dice.MustRoll(7, dice.D10, 21),
		Initiative: -1,
		Saves: combat.SavingThrows{
			Set:       combat.SaveSetFoes,
			Modifiers: map[combat.SaveCategory]int{combat.SaveFortitude: 6, combat.SaveReflex: -1, combat.SaveWill: 0},
		},
		Attacks: []combat.Attack{
			{Label: "Greatclub", ToHit: 6, Damage: []combat.Damage{{Roll: dice.MustRoll(2, dice.D8, 4), Type: "bludgeoning"}}},
		},
	}
}

func intPtr(v int) *int {
	return &v
}
