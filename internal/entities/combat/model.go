package combat

import (
	"sort"
)

// Tab is the visible tab of the tracker
type Tab string

// Tabs
const (
	TabCharacters Tab = "characters"
	TabKinds      Tab = "kinds"
)

// Model is the whole tracker state. Kinds are kept sorted by label and
// Characters by descending initiative under InitiativeKind.
type Model struct {
	Kinds      []Kind
	Characters []Character
	ActiveTab  Tab
	// ActiveCharacter indexes Characters. Re-sorting moves it along with the
	// character it points at.
	ActiveCharacter int
	InitiativeKind  InitiativeKind
}

// NewModel builds a sorted model showing the character tab
func NewModel(kinds []Kind, characters []Character) Model {
	return Model{
		ActiveTab:      TabCharacters,
		InitiativeKind: InitiativeRoll,
	}.with(kinds, characters)
}

// Kind looks up a kind by label
func (m Model) Kind(label string) (Kind, bool) {
	i := m.kindIndex(label)
	if i < 0 {
		return Kind{}, false
	}
	return m.Kinds[i], true
}

// Character looks up a character by id
func (m Model) Character(id string) (Character, bool) {
	i := m.characterIndex(id)
	if i < 0 {
		return Character{}, false
	}
	return m.Characters[i], true
}

// Active returns the character whose turn it is
func (m Model) Active() (Character, bool) {
	if m.ActiveCharacter < 0 || m.ActiveCharacter >= len(m.Characters) {
		return Character{}, false
	}
	return m.Characters[m.ActiveCharacter], true
}

// SortCharacters returns chars stable-sorted by descending initiative
func SortCharacters(chars []Character, kind InitiativeKind) []Character {
	out := append([]Character(nil), chars...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Initiative.Value(kind) > out[j].Initiative.Value(kind)
	})
	return out
}

func sortKinds(kinds []Kind) []Kind {
	out := append([]Kind(nil), kinds...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out
}

// with returns a copy of m holding the given lists, re-sorted. The active
// character keeps the turn; when it is gone the turn passes to whoever now
// holds its position.
func (m Model) with(kinds []Kind, characters []Character) Model {
	active, hadActive := m.Active()

	m.Kinds = sortKinds(kinds)
	m.Characters = SortCharacters(characters, m.InitiativeKind)
	if i := m.characterIndex(active.ID); hadActive && i >= 0 {
		m.ActiveCharacter = i
		return m
	}
	m.ActiveCharacter = clamp(m.ActiveCharacter, len(m.Characters))
	return m
}

func (m Model) kindIndex(label string) int {
	for i, k := range m.Kinds {
		if k.Label == label {
			return i
		}
	}
	return -1
}

func (m Model) characterIndex(id string) int {
	for i, c := range m.Characters {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (m Model) replaceCharacter(i int, c Character) Model {
	chars := append([]Character(nil), m.Characters...)
	chars[i] = c
	return m.with(m.Kinds, chars)
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
