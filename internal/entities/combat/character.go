package combat

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// CharacterType discriminates the Character variants
type CharacterType string

// Character variants
const (
	CharacterTypePC  CharacterType = "pc"
	CharacterTypeNPC CharacterType = "npc"
)

// NPC holds the state tracked for non-player characters only
type NPC struct {
	Kind             Kind
	MaxHitPoints     int
	CurrentHitPoints int
	// Hits has one slot per attack of Kind; nil until the attack was executed
	Hits []*Hit
	// Saves holds the last saving throw; a new roll replaces the whole map
	Saves map[SaveCategory]dice.RollResult
}

// Character is a combatant. NPC is set exactly when Type is CharacterTypeNPC.
// Characters are values: every operation returns a new Character.
type Character struct {
	Type       CharacterType
	ID         string
	Label      string
	Initiative Initiative
	NPC        *NPC
}

var _ core.Entity = Character{}

// GetID implements core.Entity
func (c Character) GetID() string {
	return c.ID
}

// GetType implements core.Entity
func (c Character) GetType() string {
	return string(c.Type)
}

// NewPC creates a player character; PCs only carry a label and initiative
func NewPC(id, label string, initiative Initiative) (Character, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", id, vb)
	errors.ValidateRequired("label", label, vb)
	if err := vb.Build(); err != nil {
		return Character{}, err
	}
	return Character{
		Type:       CharacterTypePC,
		ID:         id,
		Label:      label,
		Initiative: initiative,
	}, nil
}

// NPCOptions overrides the rolled defaults of NewNPC
type NPCOptions struct {
	Label      string
	HitPoints  *int
	Initiative *Initiative
}

// NewNPC creates an NPC of kind. Max hit points come from the kind's hit die
// and initiative from a d20 plus the kind's initiative modifier unless opts
// overrides them.
func NewNPC(id string, kind Kind, opts NPCOptions, roller dice.Roller) (Character, error) {
	if id == "" {
		return Character{}, errors.InvalidArgument("id is required")
	}
	label := opts.Label
	if label == "" {
		label = kind.Label
	}

	var hp int
	if opts.HitPoints != nil {
		hp = *opts.HitPoints
	} else {
		hp = kind.HitDie.Roll(roller).Value()
	}

	var ini Initiative
	if opts.Initiative != nil {
		ini = *opts.Initiative
	} else {
		ini = RollInitiative(kind.Initiative, roller)
	}

	return Character{
		Type:       CharacterTypeNPC,
		ID:         id,
		Label:      label,
		Initiative: ini,
		NPC: &NPC{
			Kind:             kind.clone(),
			MaxHitPoints:     hp,
			CurrentHitPoints: hp,
			Hits:             make([]*Hit, len(kind.Attacks)),
			Saves:            map[SaveCategory]dice.RollResult{},
		},
	}, nil
}

// IsDead reports whether an NPC is at or below zero hit points
func (c Character) IsDead() bool {
	return c.Type == CharacterTypeNPC && c.NPC != nil && c.NPC.CurrentHitPoints <= 0
}

// WithLabel renames the character
func (c Character) WithLabel(label string) Character {
	out := c.copy()
	out.Label = label
	return out
}

// WithInitiative replaces the initiative
func (c Character) WithInitiative(ini Initiative) Character {
	out := c.copy()
	out.Initiative = ini
	return out
}

// RerollInitiative rolls a fresh d20 for NPCs, keeping the modifier.
// PCs roll at the table and are returned unchanged.
func (c Character) RerollInitiative(roller dice.Roller) Character {
	if c.Type != CharacterTypeNPC || c.NPC == nil {
		return c
	}
	return c.WithInitiative(RollInitiative(c.NPC.Kind.Initiative, roller))
}

// WithHitPointDelta adds delta to the current hit points. There is no floor.
func (c Character) WithHitPointDelta(delta int) (Character, error) {
	switch c.Type {
	case CharacterTypeNPC:
		if err := c.requireNPC(); err != nil {
			return Character{}, err
		}
		out := c.copy()
		out.NPC.CurrentHitPoints += delta
		return out, nil
	case CharacterTypePC:
		return Character{}, errors.FailedPrecondition(fmt.Sprintf("hit points of pc %s are not tracked", c.ID))
	default:
		return Character{}, errors.Internal("unknown character type " + string(c.Type))
	}
}

// ExecuteAttack rolls the attack at index and records the Hit
func (c Character) ExecuteAttack(index int, roller dice.Roller) (Character, error) {
	if c.Type != CharacterTypeNPC {
		return Character{}, errors.FailedPrecondition(fmt.Sprintf("%s %s has no attacks", c.Type, c.ID))
	}
	if err := c.requireNPC(); err != nil {
		return Character{}, err
	}
	attack, err := c.NPC.Kind.Attack(index)
	if err != nil {
		return Character{}, err
	}
	hit := attack.Execute(roller)

	out := c.copy()
	if len(out.NPC.Hits) < len(out.NPC.Kind.Attacks) {
		hits := make([]*Hit, len(out.NPC.Kind.Attacks))
		copy(hits, out.NPC.Hits)
		out.NPC.Hits = hits
	}
	out.NPC.Hits[index] = &hit
	return out, nil
}

// RollSavingThrow rolls d20 plus the kind's modifier for category. The result
// replaces the whole saves record so only the latest save is kept.
func (c Character) RollSavingThrow(category SaveCategory, roller dice.Roller) (Character, error) {
	if c.Type != CharacterTypeNPC {
		return Character{}, errors.FailedPrecondition(fmt.Sprintf("%s %s has no saving throws", c.Type, c.ID))
	}
	if err := c.requireNPC(); err != nil {
		return Character{}, err
	}
	mod, ok := c.NPC.Kind.Saves.Modifier(category)
	if !ok {
		return Character{}, errors.NotFoundf("kind %s has no %s save", c.NPC.Kind.Label, category)
	}

	out := c.copy()
	out.NPC.Saves = map[SaveCategory]dice.RollResult{
		category: dice.D20Plus(mod).Roll(roller),
	}
	return out, nil
}

func (c Character) requireNPC() error {
	if c.NPC == nil {
		return errors.FailedPrecondition(fmt.Sprintf("npc %s has no npc state", c.ID))
	}
	return nil
}

// copy returns c with a private NPC so the receiver stays untouched
func (c Character) copy() Character {
	if c.NPC == nil {
		return c
	}
	npc := *c.NPC
	npc.Hits = append([]*Hit(nil), c.NPC.Hits...)
	saves := make(map[SaveCategory]dice.RollResult, len(c.NPC.Saves))
	for k, v := range c.NPC.Saves {
		saves[k] = v
	}
	npc.Saves = saves
	c.NPC = &npc
	return c
}
