package kinds

import (
	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/entities/combat"
)

// KindDTO is the stored form of a combat.Kind. Characters embed it for the
// kind an NPC was created from.
type KindDTO struct {
	Label      string      `json:"label"`
	ArmorClass int         `json:"armorClass"`
	Speed      int         `json:"speed"`
	HitDie     dice.Roll   `json:"hitDie"`
	Initiative int         `json:"initiative"`
	Saves      SavesDTO    `json:"saves"`
	Attacks    []AttackDTO `json:"attacks"`
}

// SavesDTO holds the save set and its modifiers
type SavesDTO struct {
	Set       string         `json:"set"`
	Modifiers map[string]int `json:"modifiers"`
}

// AttackDTO is the stored form of a combat.Attack
type AttackDTO struct {
	Label  string      `json:"label"`
	ToHit  int         `json:"toHit"`
	Damage []DamageDTO `json:"damage"`
}

// DamageDTO is the stored form of a combat.Damage
type DamageDTO struct {
	Roll dice.Roll `json:"roll"`
	Type string    `json:"type,omitempty"`
}

// ToDTO converts a kind for storage
func ToDTO(k combat.Kind) KindDTO {
	dto := KindDTO{
		Label:      k.Label,
		ArmorClass: k.ArmorClass,
		Speed:      k.Speed,
		HitDie:     k.HitDie,
		Initiative: k.Initiative,
		Saves: SavesDTO{
			Set:       string(k.Saves.Set),
			Modifiers: make(map[string]int, len(k.Saves.Modifiers)),
		},
		Attacks: make([]AttackDTO, len(k.Attacks)),
	}
	for c, m := range k.Saves.Modifiers {
		dto.Saves.Modifiers[string(c)] = m
	}
	for i, a := range k.Attacks {
		ad := AttackDTO{Label: a.Label, ToHit: a.ToHit, Damage: make([]DamageDTO, len(a.Damage))}
		for j, d := range a.Damage {
			ad.Damage[j] = DamageDTO{Roll: d.Roll, Type: d.Type}
		}
		dto.Attacks[i] = ad
	}
	return dto
}

// FromDTO validates and converts a stored kind
func FromDTO(dto KindDTO) (combat.Kind, error) {
	k := combat.Kind{
		Label:      dto.Label,
		ArmorClass: dto.ArmorClass,
		Speed:      dto.Speed,
		HitDie:     dto.HitDie,
		Initiative: dto.Initiative,
		Saves: combat.SavingThrows{
			Set:       combat.SaveSet(dto.Saves.Set),
			Modifiers: make(map[combat.SaveCategory]int, len(dto.Saves.Modifiers)),
		},
		Attacks: make([]combat.Attack, len(dto.Attacks)),
	}
	for c, m := range dto.Saves.Modifiers {
		k.Saves.Modifiers[combat.SaveCategory(c)] = m
	}
	for i, ad := range dto.Attacks {
		a := combat.Attack{Label: ad.Label, ToHit: ad.ToHit, Damage: make([]combat.Damage, len(ad.Damage))}
		for j, d := range ad.Damage {
			a.Damage[j] = combat.Damage{Roll: d.Roll, Type: d.Type}
		}
		k.Attacks[i] = a
	}
	return combat.NewKind(k)
}
