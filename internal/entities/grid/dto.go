package grid

import "time"

// DTO is the JSON form of a grid shared by the local library, the HTTP API
// and its client
type DTO struct {
	ID           string     `json:"id,omitempty"`
	Label        string     `json:"label"`
	Descriptor   string     `json:"descriptor"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

// ToDTO converts g for storage or transport
func ToDTO(g GameGrid) DTO {
	dto := DTO{
		ID:         g.ID,
		Label:      g.Label,
		Descriptor: g.Descriptor(),
	}
	if !g.LastModified.IsZero() {
		t := g.LastModified.UTC()
		dto.LastModified = &t
	}
	return dto
}

// FromDTO decodes the descriptor and restores label, id and timestamp
func FromDTO(dto DTO) (GameGrid, error) {
	g, err := Parse(dto.Descriptor)
	if err != nil {
		return GameGrid{}, err
	}
	g.ID = dto.ID
	g.Label = dto.Label
	if dto.LastModified != nil {
		g.LastModified = dto.LastModified.UTC()
	}
	return g, nil
}
