// Package grid is the server side of shared grids: it validates incoming
// descriptors, stamps ids and modification times, stores the grids and
// fans every change out to subscribers
package grid

//go:generate mockgen -destination=mock/mock_service.go -package=gridmock github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/grid Service

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/metrics"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/grids"
)

const subscriptionBuffer = 16

// Service defines the shared grid operations
type Service interface {
	CreateGrid(ctx context.Context, input *CreateGridInput) (*CreateGridOutput, error)
	UpdateGrid(ctx context.Context, input *UpdateGridInput) (*UpdateGridOutput, error)
	GetGrid(ctx context.Context, input *GetGridInput) (*GetGridOutput, error)
	ListGrids(ctx context.Context, input *ListGridsInput) (*ListGridsOutput, error)
	DeleteGrid(ctx context.Context, input *DeleteGridInput) (*DeleteGridOutput, error)
	Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error)
}

// Config holds the dependencies for the grid orchestrator
type Config struct {
	GridRepo    grids.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Logger      *zap.Logger

	// Metrics is optional
	Metrics *metrics.Metrics
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GridRepo == nil {
		vb.RequiredField("GridRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Logger == nil {
		vb.RequiredField("Logger")
	}

	return vb.Build()
}

type orchestrator struct {
	gridRepo grids.Repository
	idGen    idgen.Generator
	clock    clock.Clock
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewOrchestrator creates a new grid orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		gridRepo: cfg.GridRepo,
		idGen:    cfg.IDGenerator,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}, nil
}

func decode(label, descriptor string) (grid.GameGrid, error) {
	if descriptor == "" {
		return grid.GameGrid{}, errors.InvalidArgument("descriptor is required")
	}
	g, err := grid.Parse(descriptor)
	if err != nil {
		return grid.GameGrid{}, errors.Wrap(err, "invalid descriptor")
	}
	return g.WithLabel(label), nil
}

func (o *orchestrator) CreateGrid(ctx context.Context, input *CreateGridInput) (*CreateGridOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	g, err := decode(input.Label, input.Descriptor)
	if err != nil {
		return nil, err
	}
	g.ID = o.idGen.Generate()
	g.LastModified = o.clock.Now()

	out, err := o.gridRepo.Create(ctx, &grids.CreateInput{Grid: g})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create grid")
	}

	o.metrics.GridUpdated(metrics.OpCreate)
	o.publish(ctx, out.Grid)

	o.logger.Info("grid created",
		zap.String("grid_id", out.Grid.ID),
		zap.Int("cols", out.Grid.Cols()),
		zap.Int("rows", out.Grid.Rows()),
	)

	return &CreateGridOutput{Grid: out.Grid}, nil
}

func (o *orchestrator) UpdateGrid(ctx context.Context, input *UpdateGridInput) (*UpdateGridOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}
	g, err := decode(input.Label, input.Descriptor)
	if err != nil {
		return nil, err
	}
	g.ID = input.ID
	g.LastModified = o.clock.Now()

	out, err := o.gridRepo.Update(ctx, &grids.UpdateInput{Grid: g})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update grid")
	}

	o.metrics.GridUpdated(metrics.OpUpdate)
	o.publish(ctx, out.Grid)

	o.logger.Debug("grid updated", zap.String("grid_id", out.Grid.ID))

	return &UpdateGridOutput{Grid: out.Grid}, nil
}

// publish fans the snapshot out. The grid is already stored, so a failure
// here only costs live viewers one frame.
func (o *orchestrator) publish(ctx context.Context, g grid.GameGrid) {
	out, err := o.gridRepo.Publish(ctx, &grids.PublishInput{Grid: g})
	if err != nil {
		o.logger.Warn("failed to publish grid update",
			zap.String("grid_id", g.ID),
			zap.Error(err),
		)
		return
	}
	o.logger.Debug("grid update published",
		zap.String("grid_id", g.ID),
		zap.Int64("receivers", out.Receivers),
	)
}

func (o *orchestrator) GetGrid(ctx context.Context, input *GetGridInput) (*GetGridOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}
	out, err := o.gridRepo.Get(ctx, &grids.GetInput{ID: input.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get grid")
	}
	return &GetGridOutput{Grid: out.Grid}, nil
}

func (o *orchestrator) ListGrids(ctx context.Context, _ *ListGridsInput) (*ListGridsOutput, error) {
	out, err := o.gridRepo.List(ctx, &grids.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list grids")
	}
	return &ListGridsOutput{Grids: out.Grids}, nil
}

func (o *orchestrator) DeleteGrid(ctx context.Context, input *DeleteGridInput) (*DeleteGridOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}
	if _, err := o.gridRepo.Delete(ctx, &grids.DeleteInput{ID: input.ID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete grid")
	}
	o.logger.Info("grid deleted", zap.String("grid_id", input.ID))
	return &DeleteGridOutput{}, nil
}

func (o *orchestrator) Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}

	subCtx, cancel := context.WithCancel(ctx)

	// subscribe before reading so no update between the two is lost
	sub, err := o.gridRepo.Subscribe(subCtx, &grids.SubscribeInput{ID: input.ID})
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "failed to subscribe to grid")
	}

	current, err := o.gridRepo.Get(subCtx, &grids.GetInput{ID: input.ID})
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "failed to get grid")
	}

	updates := make(chan grid.GameGrid, subscriptionBuffer)
	updates <- current.Grid

	o.metrics.SubscriberAdded()
	o.logger.Debug("grid subscriber attached", zap.String("grid_id", input.ID))

	go func() {
		defer close(updates)
		defer o.metrics.SubscriberRemoved()
		defer o.logger.Debug("grid subscriber detached", zap.String("grid_id", input.ID))

		for {
			select {
			case <-subCtx.Done():
				return
			case g, ok := <-sub.Updates:
				if !ok {
					return
				}
				select {
				case updates <- g:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &SubscribeOutput{
		Updates: updates,
		Cancel:  cancel,
	}, nil
}
