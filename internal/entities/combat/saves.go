package combat

// SaveCategory names a saving throw
type SaveCategory string

// Ability saves
const (
	SaveStrength     SaveCategory = "str"
	SaveDexterity    SaveCategory = "dex"
	SaveConstitution SaveCategory = "con"
	SaveIntelligence SaveCategory = "int"
	SaveWisdom       SaveCategory = "wis"
	SaveCharisma     SaveCategory = "cha"
)

// Foes saves
const (
	SaveFortitude SaveCategory = "fort"
	SaveReflex    SaveCategory = "ref"
	SaveWill      SaveCategory = "will"
)

// SaveSet selects which saving throws a Kind has
type SaveSet string

// Known save sets
const (
	SaveSetAbilities SaveSet = "abilities"
	SaveSetFoes      SaveSet = "foes"
)

// Categories returns the saves of the set in display order
func (s SaveSet) Categories() []SaveCategory {
	switch s {
	case SaveSetAbilities:
		return []SaveCategory{SaveStrength, SaveDexterity, SaveConstitution, SaveIntelligence, SaveWisdom, SaveCharisma}
	case SaveSetFoes:
		return []SaveCategory{SaveFortitude, SaveReflex, SaveWill}
	default:
		return nil
	}
}

// Has reports whether c belongs to the set
func (s SaveSet) Has(c SaveCategory) bool {
	for _, known := range s.Categories() {
		if known == c {
			return true
		}
	}
	return false
}

// SavingThrows holds one modifier per category of its set
type SavingThrows struct {
	Set       SaveSet
	Modifiers map[SaveCategory]int
}

// Modifier returns the modifier of c; categories outside the set report false
func (s SavingThrows) Modifier(c SaveCategory) (int, bool) {
	if !s.Set.Has(c) {
		return 0, false
	}
	return s.Modifiers[c], true
}

func (s SavingThrows) clone() SavingThrows {
	mods := make(map[SaveCategory]int, len(s.Modifiers))
	for k, v := range s.Modifiers {
		mods[k] = v
	}
	return SavingThrows{Set: s.Set, Modifiers: mods}
}
