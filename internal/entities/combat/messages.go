package combat

import (
	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// Message is a user intent applied to a Model by Update
type Message interface {
	apply(m Model, roller dice.Roller) (Model, error)
}

// Update applies msg to m and returns the new model. m is never modified.
func Update(m Model, msg Message, roller dice.Roller) (Model, error) {
	if msg == nil {
		return m, errors.InvalidArgument("message is required")
	}
	if roller == nil {
		roller = dice.DefaultRoller
	}
	return msg.apply(m, roller)
}

// AddKind adds a new kind; labels are unique
type AddKind struct {
	Kind Kind
}

func (msg AddKind) apply(m Model, _ dice.Roller) (Model, error) {
	kind, err := NewKind(msg.Kind)
	if err != nil {
		return m, err
	}
	if m.kindIndex(kind.Label) >= 0 {
		return m, errors.AlreadyExistsf("kind %s already exists", kind.Label)
	}
	return m.with(append(append([]Kind(nil), m.Kinds...), kind), m.Characters), nil
}

// ReplaceKind swaps the kind labelled Label for Kind. Existing NPCs keep the
// kind they were created from.
type ReplaceKind struct {
	Label string
	Kind  Kind
}

func (msg ReplaceKind) apply(m Model, _ dice.Roller) (Model, error) {
	i := m.kindIndex(msg.Label)
	if i < 0 {
		return m, errors.NotFoundf("kind %s not found", msg.Label)
	}
	kind, err := NewKind(msg.Kind)
	if err != nil {
		return m, err
	}
	if j := m.kindIndex(kind.Label); j >= 0 && j != i {
		return m, errors.AlreadyExistsf("kind %s already exists", kind.Label)
	}
	kinds := append([]Kind(nil), m.Kinds...)
	kinds[i] = kind
	return m.with(kinds, m.Characters), nil
}

// RemoveKind deletes a kind by label
type RemoveKind struct {
	Label string
}

func (msg RemoveKind) apply(m Model, _ dice.Roller) (Model, error) {
	i := m.kindIndex(msg.Label)
	if i < 0 {
		return m, errors.NotFoundf("kind %s not found", msg.Label)
	}
	kinds := append(append([]Kind(nil), m.Kinds[:i]...), m.Kinds[i+1:]...)
	return m.with(kinds, m.Characters), nil
}

// AddPC adds a player character with the initiative they rolled
type AddPC struct {
	ID         string
	Label      string
	Initiative int
}

func (msg AddPC) apply(m Model, _ dice.Roller) (Model, error) {
	pc, err := NewPC(msg.ID, msg.Label, FixedInitiative(msg.Initiative))
	if err != nil {
		return m, err
	}
	return m.addCharacter(pc)
}

// AddNPC adds an NPC of the kind labelled KindLabel
type AddNPC struct {
	ID        string
	KindLabel string
	Options   NPCOptions
}

func (msg AddNPC) apply(m Model, roller dice.Roller) (Model, error) {
	kind, ok := m.Kind(msg.KindLabel)
	if !ok {
		return m, errors.NotFoundf("kind %s not found", msg.KindLabel)
	}
	npc, err := NewNPC(msg.ID, kind, msg.Options, roller)
	if err != nil {
		return m, err
	}
	return m.addCharacter(npc)
}

func (m Model) addCharacter(c Character) (Model, error) {
	if m.characterIndex(c.ID) >= 0 {
		return m, errors.AlreadyExistsf("character %s already exists", c.ID)
	}
	return m.with(m.Kinds, append(append([]Character(nil), m.Characters...), c)), nil
}

// RemoveCharacter drops a character from the encounter
type RemoveCharacter struct {
	ID string
}

func (msg RemoveCharacter) apply(m Model, _ dice.Roller) (Model, error) {
	i := m.characterIndex(msg.ID)
	if i < 0 {
		return m, errors.NotFoundf("character %s not found", msg.ID)
	}
	chars := append(append([]Character(nil), m.Characters[:i]...), m.Characters[i+1:]...)
	return m.with(m.Kinds, chars), nil
}

// ExecuteAttack rolls attack AttackIndex of an NPC
type ExecuteAttack struct {
	CharacterID string
	AttackIndex int
}

func (msg ExecuteAttack) apply(m Model, roller dice.Roller) (Model, error) {
	return m.updateCharacter(msg.CharacterID, func(c Character) (Character, error) {
		return c.ExecuteAttack(msg.AttackIndex, roller)
	})
}

// UpdateHitPoints applies damage (negative) or healing (positive)
type UpdateHitPoints struct {
	CharacterID string
	Delta       int
}

func (msg UpdateHitPoints) apply(m Model, _ dice.Roller) (Model, error) {
	return m.updateCharacter(msg.CharacterID, func(c Character) (Character, error) {
		return c.WithHitPointDelta(msg.Delta)
	})
}

// RollSavingThrow rolls one save for an NPC
type RollSavingThrow struct {
	CharacterID string
	Category    SaveCategory
}

func (msg RollSavingThrow) apply(m Model, roller dice.Roller) (Model, error) {
	return m.updateCharacter(msg.CharacterID, func(c Character) (Character, error) {
		return c.RollSavingThrow(msg.Category, roller)
	})
}

// RerollInitiative rolls new initiative for one NPC, or for all NPCs when
// CharacterID is empty
type RerollInitiative struct {
	CharacterID string
}

func (msg RerollInitiative) apply(m Model, roller dice.Roller) (Model, error) {
	if msg.CharacterID != "" {
		return m.updateCharacter(msg.CharacterID, func(c Character) (Character, error) {
			return c.RerollInitiative(roller), nil
		})
	}
	chars := make([]Character, len(m.Characters))
	for i, c := range m.Characters {
		chars[i] = c.RerollInitiative(roller)
	}
	return m.with(m.Kinds, chars), nil
}

func (m Model) updateCharacter(id string, fn func(Character) (Character, error)) (Model, error) {
	i := m.characterIndex(id)
	if i < 0 {
		return m, errors.NotFoundf("character %s not found", id)
	}
	c, err := fn(m.Characters[i])
	if err != nil {
		return m, err
	}
	return m.replaceCharacter(i, c), nil
}

// SelectCharacter makes the character at Index active
type SelectCharacter struct {
	Index int
}

func (msg SelectCharacter) apply(m Model, _ dice.Roller) (Model, error) {
	if msg.Index < 0 || msg.Index >= len(m.Characters) {
		return m, errors.OutOfRangef("character index %d out of range [0, %d)", msg.Index, len(m.Characters))
	}
	m.ActiveCharacter = msg.Index
	return m, nil
}

// NextCharacter advances the turn, wrapping to the top of the order
type NextCharacter struct{}

func (NextCharacter) apply(m Model, _ dice.Roller) (Model, error) {
	if len(m.Characters) == 0 {
		return m, nil
	}
	m.ActiveCharacter = (m.ActiveCharacter + 1) % len(m.Characters)
	return m, nil
}

// SelectTab switches the visible tab
type SelectTab struct {
	Tab Tab
}

func (msg SelectTab) apply(m Model, _ dice.Roller) (Model, error) {
	switch msg.Tab {
	case TabCharacters, TabKinds:
		m.ActiveTab = msg.Tab
		return m, nil
	default:
		return m, errors.InvalidArgumentf("unknown tab %q", msg.Tab)
	}
}

// SetInitiativeKind switches between rolled and static initiative and
// re-sorts the characters
type SetInitiativeKind struct {
	Kind InitiativeKind
}

func (msg SetInitiativeKind) apply(m Model, _ dice.Roller) (Model, error) {
	if !msg.Kind.Valid() {
		return m, errors.InvalidArgumentf("unknown initiative kind %q", msg.Kind)
	}
	m.InitiativeKind = msg.Kind
	return m.with(m.Kinds, m.Characters), nil
}
