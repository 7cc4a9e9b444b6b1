package kinds

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

// NewLocal creates a Repository keeping the kinds as one JSON array
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
			return &ListOutput{Kinds: []combat.Kind{}}, nil
		}
		return nil, errors.Wrap(err, "failed to load kinds")
	}

	var dtos []KindDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "stored kinds are not valid JSON")
	}

	out := make([]combat.Kind, 0, len(dtos))
	for i, dto := range dtos {
		k, err := FromDTO(dto)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "stored kind is invalid").
				WithMeta("index", i)
		}
		out = append(out, k)
	}
	return &ListOutput{Kinds: out}, nil
}

func (r *localRepository) SaveAll(ctx context.Context, input *SaveAllInput) (*SaveAllOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	dtos := make([]KindDTO, len(input.Kinds))
	for i, k := range input.Kinds {
		dtos[i] = ToDTO(k)
	}
	data, err := json.Marshal(dtos)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal kinds")
	}
	if err := r.store.Set(ctx, Key, data); err != nil {
		return nil, errors.Wrap(err, "failed to save kinds")
	}
	return &SaveAllOutput{Count: len(dtos)}, nil
}
