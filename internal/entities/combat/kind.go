// Package combat is the rules model of the encounter tracker: kinds of
// monsters, their attacks, the characters in a fight and the pure state
// transitions between encounter models.
package combat

import (
	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// Damage is one damage roll of an attack
type Damage struct {
	Roll dice.Roll
	Type string
}

// Attack is a weapon or spell attack of a Kind
type Attack struct {
	Label  string
	ToHit  int
	Damage []Damage
}

// HitDamage is a rolled Damage
type HitDamage struct {
	Damage Damage
	Result dice.RollResult
}

// Hit is the outcome of executing an Attack. Damage is always rolled; whether
// it lands is decided by whoever compares ToHit against the target's AC.
type Hit struct {
	ToHit  dice.RollResult
	Damage []HitDamage
}

// Execute rolls a d20 plus the to-hit modifier and every damage roll
func (a Attack) Execute(roller dice.Roller) Hit {
	hit := Hit{
		ToHit:  dice.D20Plus(a.ToHit).Roll(roller),
		Damage: make([]HitDamage, len(a.Damage)),
	}
	for i, d := range a.Damage {
		hit.Damage[i] = HitDamage{Damage: d, Result: d.Roll.Roll(roller)}
	}
	return hit
}

// Critical reports a natural 20
func (h Hit) Critical() bool {
	return h.ToHit.DieResult == 20
}

// Fumble reports a natural 1
func (h Hit) Fumble() bool {
	return h.ToHit.DieResult == 1
}

// TotalDamage sums all damage results
func (h Hit) TotalDamage() int {
	total := 0
	for _, d := range h.Damage {
		total += d.Result.Value()
	}
	return total
}

// Kind is the template of an NPC type: "Goblin", "Adult Red Dragon"
type Kind struct {
	Label      string
	ArmorClass int
	Speed      int
	HitDie     dice.Roll
	Initiative int
	Saves      SavingThrows
	Attacks    []Attack
}

// NewKind validates k and returns a copy that shares no memory with it
func NewKind(k Kind) (Kind, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("label", k.Label, vb)
	if k.ArmorClass < 0 {
		vb.Field("armor_class", "must not be negative")
	}
	if k.Speed < 0 {
		vb.Field("speed", "must not be negative")
	}
	if k.Saves.Set.Categories() == nil {
		vb.InvalidField("saves", "unknown save set "+string(k.Saves.Set))
	}
	for c := range k.Saves.Modifiers {
		if !k.Saves.Set.Has(c) {
			vb.InvalidField("saves", string(c)+" is not part of "+string(k.Saves.Set))
		}
	}
	for _, a := range k.Attacks {
		if a.Label == "" {
			vb.RequiredField("attacks.label")
		}
		if len(a.Damage) == 0 {
			vb.Fieldf("attacks.damage", "attack %q needs at least one damage roll", a.Label)
		}
	}
	if err := vb.Build(); err != nil {
		return Kind{}, err
	}
	return k.clone(), nil
}

// Attack returns the attack at index i
func (k Kind) Attack(i int) (Attack, error) {
	if i < 0 || i >= len(k.Attacks) {
		return Attack{}, errors.NotFoundf("kind %s has no attack #%d", k.Label, i)
	}
	return k.Attacks[i], nil
}

func (k Kind) clone() Kind {
	out := k
	out.Saves = k.Saves.clone()
	out.Attacks = make([]Attack, len(k.Attacks))
	for i, a := range k.Attacks {
		a.Damage = append([]Damage(nil), a.Damage...)
		out.Attacks[i] = a
	}
	return out
}
