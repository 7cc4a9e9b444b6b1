package grid

import "github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"

// CreateGridInput defines the request for sharing a new grid
type CreateGridInput struct {
	Label      string
	Descriptor string
}

// CreateGridOutput defines the response for sharing a new grid
type CreateGridOutput struct {
	Grid grid.GameGrid
}

// UpdateGridInput defines the request for replacing a shared grid
type UpdateGridInput struct {
	ID         string
	Label      string
	Descriptor string
}

// UpdateGridOutput defines the response for replacing a shared grid
type UpdateGridOutput struct {
	Grid grid.GameGrid
}

// GetGridInput defines the request for fetching a shared grid
type GetGridInput struct {
	ID string
}

// GetGridOutput defines the response for fetching a shared grid
type GetGridOutput struct {
	Grid grid.GameGrid
}

// ListGridsInput defines the request for listing shared grids
type ListGridsInput struct{}

// ListGridsOutput lists shared grids, most recently modified first
type ListGridsOutput struct {
	Grids []grid.GameGrid
}

// DeleteGridInput defines the request for removing a shared grid
type DeleteGridInput struct {
	ID string
}

// DeleteGridOutput defines the response for removing a shared grid
type DeleteGridOutput struct{}

// SubscribeInput defines the request for following a shared grid
type SubscribeInput struct {
	ID string
}

// SubscribeOutput carries the snapshot stream. The current grid is always
// the first snapshot. Updates is closed once Cancel is called or the
// subscription context ends.
type SubscribeOutput struct {
	Updates <-chan grid.GameGrid
	Cancel  func()
}
