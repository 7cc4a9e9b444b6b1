package characters

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/combat"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/localstore"
)

// Config holds the configuration for the local repository
type Config struct {
	Store localstore.Store
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil || c.Store == nil {
		return errors.InvalidArgument("store is required")
	}
	return nil
}

type localRepository struct {
	store localstore.Store
}

// NewLocal creates a Repository keeping the characters as one JSON array
func NewLocal(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &localRepository{store: cfg.Store}, nil
}

var _ Repository = (*localRepository)(nil)

func (r *localRepository) List(ctx context.Context) (*ListOutput, error) {
	data, err := r.store.Get(ctx, Key)
	if err != nil {
		if errors.IsNotFound(err) {
			return &ListOutput{Characters: []combat.Character{}}, nil
		}
		return nil, errors.Wrap(err, "failed to load characters")
	}

	var dtos []CharacterDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "stored characters are not valid JSON")
	}

	out := make([]combat.Character, 0, len(dtos))
	for i, dto := range dtos {
		c, err := FromDTO(dto)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "stored character is invalid").
				WithMeta("index", i).
				WithMeta("character_id", dto.ID)
		}
		out = append(out, c)
	}
	return &ListOutput{Characters: out}, nil
}

func (r *localRepository) SaveAll(ctx context.Context, input *SaveAllInput) (*SaveAllOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	dtos := make([]CharacterDTO, len(input.Characters))
	for i, c := range input.Characters {
		dtos[i] = ToDTO(c)
	}
	data, err := json.Marshal(dtos)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal characters")
	}
	if err := r.store.Set(ctx, Key, data); err != nil {
		return nil, errors.Wrap(err, "failed to save characters")
	}
	return &SaveAllOutput{Count: len(dtos)}, nil
}
