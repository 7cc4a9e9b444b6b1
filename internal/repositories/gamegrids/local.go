package gamegrids

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/localstore"
)

// Config holds the configuration for the local repository
type Config struct {
	Store       localstore.Store
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Store == nil {
		vb.RequiredField("store")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("id_generator")
	}
	if c.Clock == nil {
		vb.RequiredField("clock")
	}
	return vb.Build()
}

type localRepository struct {
	store localstore.Store
	ids   idgen.Generator
	clock clock.Clock

	// serializes read-modify-write of the library document
	mu sync.Mutex
}

// NewLocal creates the library on top of a key-value store
func NewLocal(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &localRepository{
		store: cfg.Store,
		ids:   cfg.IDGenerator,
		clock: cfg.Clock,
	}, nil
}

var _ Repository = (*localRepository)(nil)

func (r *localRepository) load(ctx context.Context) ([]grid.DTO, error) {
	data, err := r.store.Get(ctx, Key)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to load grid library")
	}
	var dtos []grid.DTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "stored grid library is not valid JSON")
	}
	return dtos, nil
}

func (r *localRepository) persist(ctx context.Context, dtos []grid.DTO) error {
	data, err := json.Marshal(dtos)
	if err != nil {
		return errors.Wrap(err, "failed to marshal grid library")
	}
	if err := r.store.Set(ctx, Key, data); err != nil {
		return errors.Wrap(err, "failed to save grid library")
	}
	return nil
}

func (r *localRepository) List(ctx context.Context) (*ListOutput, error) {
	r.mu.Lock()
	dtos, err := r.load(ctx)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make([]grid.GameGrid, 0, len(dtos))
	for _, dto := range dtos {
		g, err := grid.FromDTO(dto)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "stored grid is invalid").
				WithMeta("grid_id", dto.ID)
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastModified.After(out[j].LastModified)
	})
	return &ListOutput{Grids: out}, nil
}

func (r *localRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}

	r.mu.Lock()
	dtos, err := r.load(ctx)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		if dto.ID != input.ID {
			continue
		}
		g, err := grid.FromDTO(dto)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "stored grid is invalid").
				WithMeta("grid_id", dto.ID)
		}
		return &GetOutput{Grid: g}, nil
	}
	return nil, errors.NotFoundf("grid %s not found", input.ID)
}

func (r *localRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	g := input.Grid
	if g.Cols() == 0 {
		return nil, errors.InvalidArgument("grid has no size")
	}
	if g.ID == "" {
		g.ID = r.ids.Generate()
	}
	g.LastModified = r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	dtos, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	dto := grid.ToDTO(g)
	replaced := false
	for i := range dtos {
		if dtos[i].ID == g.ID {
			dtos[i] = dto
			replaced = true
			break
		}
	}
	if !replaced {
		dtos = append(dtos, dto)
	}

	if err := r.persist(ctx, dtos); err != nil {
		return nil, err
	}
	return &SaveOutput{Grid: g}, nil
}

func (r *localRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dtos, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	kept := dtos[:0:0]
	for _, dto := range dtos {
		if dto.ID != input.ID {
			kept = append(kept, dto)
		}
	}
	if len(kept) == len(dtos) {
		return nil, errors.NotFoundf("grid %s not found", input.ID)
	}
	if err := r.persist(ctx, kept); err != nil {
		return nil, err
	}
	return &DeleteOutput{Deleted: true}, nil
}
