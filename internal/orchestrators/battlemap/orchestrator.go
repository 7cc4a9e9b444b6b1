// Package battlemap is the local grid editor: it opens grids from routes,
// applies edits, keeps the local library up to date and shares grids with
// the remote API
package battlemap

//go:generate mockgen -destination=mock/mock_service.go -package=battlemapmock github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/battlemap Service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tabletop/internal/clients/gridapi"
	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/gamegrids"
)

// Size of the blank grid opened when nothing else applies
const (
	DefaultCols = 30
	DefaultRows = 20
)

// Service defines the editor operations
type Service interface {
	// Open replaces the grid being edited
	Open(ctx context.Context, input *OpenInput) (*OpenOutput, error)

	// Apply edits the open grid and stores it in the library unless it is
	// empty. Storage failures are returned but the edit is kept.
	Apply(ctx context.Context, input *ApplyInput) (*ApplyOutput, error)

	// Share publishes the open grid to the remote API. The first share
	// creates the remote copy, later ones update it.
	Share(ctx context.Context) (*ShareOutput, error)

	// Grid returns the open grid
	Grid() grid.GameGrid

	// Library lists the local library
	Library(ctx context.Context) (*LibraryOutput, error)
}

// Config holds the dependencies for the editor
type Config struct {
	Library gamegrids.Repository
	Logger  *zap.Logger

	// Remote is optional; without it Share fails and view routes read
	// the local library
	Remote gridapi.Client
	// Roller picks placeholder labels, defaults to dice.DefaultRoller
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Library == nil {
		vb.RequiredField("Library")
	}
	if c.Logger == nil {
		vb.RequiredField("Logger")
	}
	return vb.Build()
}

type orchestrator struct {
	library gamegrids.Repository
	remote  gridapi.Client
	roller  dice.Roller
	logger  *zap.Logger

	mu       sync.RWMutex
	current  grid.GameGrid
	readOnly bool
	// remoteID is the id of the shared copy of current
	remoteID string
}

// NewOrchestrator creates an editor holding a blank grid
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}

	o := &orchestrator{
		library: cfg.Library,
		remote:  cfg.Remote,
		roller:  roller,
		logger:  cfg.Logger,
	}
	blank, err := o.blank()
	if err != nil {
		return nil, err
	}
	o.current = blank
	return o, nil
}

func (o *orchestrator) blank() (grid.GameGrid, error) {
	return grid.NewInitial(DefaultCols, DefaultRows, o.roller)
}

func (o *orchestrator) Open(ctx context.Context, input *OpenInput) (*OpenOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.resolve(ctx, input.Route)
	if err != nil {
		if !errors.IsInvalidArgument(err) && !errors.IsNotFound(err) && !errors.IsOutOfRange(err) {
			return nil, err
		}
		o.logger.Warn("opening blank grid instead of route",
			zap.String("route", input.Route),
			zap.Error(err),
		)
		blank, blankErr := o.blank()
		if blankErr != nil {
			return nil, blankErr
		}
		out = &OpenOutput{Grid: blank, Fallback: input.Route != ""}
	}

	o.mu.Lock()
	o.current = out.Grid
	o.readOnly = out.ReadOnly
	o.remoteID = ""
	if out.ReadOnly {
		o.remoteID = out.Grid.ID
	}
	o.mu.Unlock()

	return out, nil
}

func (o *orchestrator) resolve(ctx context.Context, raw string) (*OpenOutput, error) {
	if raw == "" {
		return nil, errors.InvalidArgument("empty route")
	}
	route, err := grid.ParseRoute(raw)
	if err != nil {
		return nil, err
	}

	switch route.Kind {
	case grid.RouteEdit:
		got, err := o.library.Get(ctx, &gamegrids.GetInput{ID: route.ID})
		if err != nil {
			return nil, errors.Wrap(err, "failed to load grid")
		}
		return &OpenOutput{Grid: got.Grid}, nil

	case grid.RouteView:
		if o.remote == nil {
			got, err := o.library.Get(ctx, &gamegrids.GetInput{ID: route.ID})
			if err != nil {
				return nil, errors.Wrap(err, "failed to load grid")
			}
			return &OpenOutput{Grid: got.Grid, ReadOnly: true}, nil
		}
		dto, err := o.remote.Get(ctx, route.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch shared grid")
		}
		g, err := grid.FromDTO(*dto)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "shared grid is invalid")
		}
		return &OpenOutput{Grid: g, ReadOnly: true}, nil

	default:
		g, err := grid.Parse(route.Descriptor)
		if err != nil {
			return nil, err
		}
		return &OpenOutput{Grid: g.WithLabel(grid.PlaceholderLabel(o.roller))}, nil
	}
}

func (o *orchestrator) Apply(ctx context.Context, input *ApplyInput) (*ApplyOutput, error) {
	if input == nil || input.Edit == nil {
		return nil, errors.InvalidArgument("edit is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.readOnly {
		return nil, errors.FailedPrecondition("grid is open read-only")
	}

	next, err := input.Edit.apply(o.current)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to apply %T", input.Edit)
	}
	o.current = next

	if next.IsEmpty() {
		return &ApplyOutput{Grid: next}, nil
	}

	saved, err := o.library.Save(ctx, &gamegrids.SaveInput{Grid: next})
	if err != nil {
		o.logger.Warn("grid edit kept in memory only",
			zap.String("grid_id", next.ID),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "failed to save grid")
	}
	o.current = saved.Grid

	return &ApplyOutput{Grid: saved.Grid, Saved: true}, nil
}

func (o *orchestrator) Share(ctx context.Context) (*ShareOutput, error) {
	if o.remote == nil {
		return nil, errors.FailedPrecondition("no remote API configured")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.readOnly {
		return nil, errors.FailedPrecondition("grid is open read-only")
	}

	dto := grid.ToDTO(o.current)
	dto.ID = ""
	dto.LastModified = nil

	var (
		shared *grid.DTO
		err    error
	)
	if o.remoteID == "" {
		shared, err = o.remote.Create(ctx, dto)
	} else {
		shared, err = o.remote.Update(ctx, o.remoteID, dto)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to share grid")
	}

	g, err := grid.FromDTO(*shared)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "shared grid is invalid")
	}
	if g.ID == "" {
		return nil, errors.DataLossf("remote returned grid without id")
	}
	o.remoteID = g.ID

	o.logger.Info("grid shared",
		zap.String("grid_id", o.current.ID),
		zap.String("remote_id", g.ID),
	)

	return &ShareOutput{Grid: g, Route: grid.ViewRoute(g.ID)}, nil
}

func (o *orchestrator) Grid() grid.GameGrid {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.current
}

func (o *orchestrator) Library(ctx context.Context) (*LibraryOutput, error) {
	out, err := o.library.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list library")
	}
	return &LibraryOutput{Grids: out.Grids}, nil
}
