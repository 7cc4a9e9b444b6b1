// Package grids stores shared grids on the server and fans out updates
// through Redis pub/sub
package grids

//go:generate mockgen -destination=mock/mock_repository.go -package=gridsmock github.com/KirkDiggler/rpg-tabletop/internal/repositories/grids Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
)

// Repository defines the storage interface for shared grids
type Repository interface {
	// Create stores a new grid; the ID must be set and unused
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get retrieves a grid by ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Update replaces an existing grid; last write wins
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)

	// List returns every stored grid, most recently modified first
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Delete removes a grid
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// Publish sends a snapshot to the grid's subscribers
	Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error)

	// Subscribe streams snapshots published for one grid until ctx ends
	Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error)
}

// CreateInput defines the request for creating a grid
type CreateInput struct {
	Grid grid.GameGrid
}

// CreateOutput defines the response for creating a grid
type CreateOutput struct {
	Grid grid.GameGrid
}

// GetInput defines the request for retrieving a grid
type GetInput struct {
	ID string
}

// GetOutput defines the response for retrieving a grid
type GetOutput struct {
	Grid grid.GameGrid
}

// UpdateInput defines the request for replacing a grid
type UpdateInput struct {
	Grid grid.GameGrid
}

// UpdateOutput defines the response for replacing a grid
type UpdateOutput struct {
	Grid grid.GameGrid
}

// ListInput defines the request for listing grids
type ListInput struct{}

// ListOutput defines the response for listing grids
type ListOutput struct {
	Grids []grid.GameGrid
}

// DeleteInput defines the request for deleting a grid
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the response for deleting a grid
type DeleteOutput struct{}

// PublishInput defines the request for publishing a snapshot
type PublishInput struct {
	Grid grid.GameGrid
}

// PublishOutput reports how many subscribers received the snapshot
type PublishOutput struct {
	Receivers int64
}

// SubscribeInput defines the request for following a grid
type SubscribeInput struct {
	ID string
}

// SubscribeOutput carries the snapshot stream. Updates is closed when the
// subscription ends.
type SubscribeOutput struct {
	Updates <-chan grid.GameGrid
}
