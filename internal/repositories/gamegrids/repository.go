// Package gamegrids is the local grid library stored under the
// "game-grids" key
package gamegrids

//go:generate mockgen -destination=mock/mock_repository.go -package=gamegridsmock github.com/KirkDiggler/rpg-tabletop/internal/repositories/gamegrids Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
)

// Key is the local store key holding the grid library
const Key = "game-grids"

// Repository defines the storage interface for the local grid library
type Repository interface {
	// List returns the library, most recently modified first
	List(ctx context.Context) (*ListOutput, error)

	// Get retrieves a grid by ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Save inserts or replaces a grid, assigning an ID when it has none
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Delete removes a grid
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// ListOutput defines the response for listing grids
type ListOutput struct {
	Grids []grid.GameGrid
}

// GetInput defines the request for retrieving a grid
type GetInput struct {
	ID string
}

// GetOutput defines the response for retrieving a grid
type GetOutput struct {
	Grid grid.GameGrid
}

// SaveInput defines the request for saving a grid
type SaveInput struct {
	Grid grid.GameGrid
}

// SaveOutput returns the grid as stored, with ID and LastModified set
type SaveOutput struct {
	Grid grid.GameGrid
}

// DeleteInput defines the request for deleting a grid
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the response for deleting a grid
type DeleteOutput struct {
	Deleted bool
}
