package characters

import (
	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/entities/combat"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/kinds"
)

// CharacterDTO is the stored form of a character. Type selects the variant;
// the NPC fields are only present for "npc".
type CharacterDTO struct {
	Type       string        `json:"type"`
	ID         string        `json:"id"`
	Label      string        `json:"label"`
	Initiative InitiativeDTO `json:"initiative"`

	Kind             *kinds.KindDTO             `json:"kind,omitempty"`
	MaxHitPoints     int                        `json:"maxHitpoints,omitempty"`
	CurrentHitPoints int                        `json:"currentHitpoints,omitempty"`
	Hits             []*HitDTO                  `json:"hits,omitempty"`
	Saves            map[string]dice.RollResult `json:"saves,omitempty"`
}

// InitiativeDTO is the stored form of combat.Initiative
type InitiativeDTO struct {
	Fixed    bool `json:"fixed,omitempty"`
	Value    int  `json:"value,omitempty"`
	Roll     int  `json:"roll,omitempty"`
	Modifier int  `json:"modifier,omitempty"`
}

// HitDTO is the stored form of an executed attack
type HitDTO struct {
	ToHit  dice.RollResult `json:"toHit"`
	Damage []HitDamageDTO  `json:"damage"`
}

// HitDamageDTO is one rolled damage entry
type HitDamageDTO struct {
	Roll   dice.Roll       `json:"roll"`
	Type   string          `json:"type,omitempty"`
	Result dice.RollResult `json:"result"`
}

// ToDTO converts a character for storage
func ToDTO(c combat.Character) CharacterDTO {
	dto := CharacterDTO{
		Type:  string(c.Type),
		ID:    c.ID,
		Label: c.Label,
		Initiative: InitiativeDTO{
			Fixed:    c.Initiative.Fixed,
			Value:    c.Initiative.FixedValue,
			Roll:     c.Initiative.Roll,
			Modifier: c.Initiative.Modifier,
		},
	}

	if c.Type == combat.CharacterTypeNPC {
		kind := kinds.ToDTO(c.NPC.Kind)
		dto.Kind = &kind
		dto.MaxHitPoints = c.NPC.MaxHitPoints
		dto.CurrentHitPoints = c.NPC.CurrentHitPoints
		dto.Hits = make([]*HitDTO, len(c.NPC.Hits))
		for i, h := range c.NPC.Hits {
			if h == nil {
				continue
			}
			hd := &HitDTO{ToHit: h.ToHit, Damage: make([]HitDamageDTO, len(h.Damage))}
			for j, d := range h.Damage {
				hd.Damage[j] = HitDamageDTO{Roll: d.Damage.Roll, Type: d.Damage.Type, Result: d.Result}
			}
			dto.Hits[i] = hd
		}
		if len(c.NPC.Saves) > 0 {
			dto.Saves = make(map[string]dice.RollResult, len(c.NPC.Saves))
			for cat, r := range c.NPC.Saves {
				dto.Saves[string(cat)] = r
			}
		}
	}
	return dto
}

// FromDTO converts a stored character. Unknown types and save categories
// are DataLoss.
func FromDTO(dto CharacterDTO) (combat.Character, error) {
	ini := combat.Initiative{
		Fixed:      dto.Initiative.Fixed,
		FixedValue: dto.Initiative.Value,
		Roll:       dto.Initiative.Roll,
		Modifier:   dto.Initiative.Modifier,
	}

	switch combat.CharacterType(dto.Type) {
	case combat.CharacterTypePC:
		return combat.NewPC(dto.ID, dto.Label, ini)

	case combat.CharacterTypeNPC:
		if dto.Kind == nil {
			return combat.Character{}, errors.DataLossf("npc %s has no kind", dto.ID)
		}
		kind, err := kinds.FromDTO(*dto.Kind)
		if err != nil {
			return combat.Character{}, err
		}
		hp := dto.MaxHitPoints
		c, err := combat.NewNPC(dto.ID, kind, combat.NPCOptions{
			Label:      dto.Label,
			HitPoints:  &hp,
			Initiative: &ini,
		}, nil)
		if err != nil {
			return combat.Character{}, err
		}
		c.NPC.CurrentHitPoints = dto.CurrentHitPoints
		for i, hd := range dto.Hits {
			if hd == nil || i >= len(c.NPC.Hits) {
				continue
			}
			h := &combat.Hit{ToHit: hd.ToHit, Damage: make([]combat.HitDamage, len(hd.Damage))}
			for j, d := range hd.Damage {
				h.Damage[j] = combat.HitDamage{Damage: combat.Damage{Roll: d.Roll, Type: d.Type}, Result: d.Result}
			}
			c.NPC.Hits[i] = h
		}
		for cat, r := range dto.Saves {
			category := combat.SaveCategory(cat)
			if !kind.Saves.Set.Has(category) {
				return combat.Character{}, errors.DataLossf("npc %s has a %q save outside the %s set", dto.ID, cat, kind.Saves.Set)
			}
			c.NPC.Saves[category] = r
		}
		return c, nil

	default:
		return combat.Character{}, errors.DataLossf("unknown character type %q", dto.Type)
	}
}
