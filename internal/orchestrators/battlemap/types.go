package battlemap

import "github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"

// OpenInput selects the grid to edit. An empty route opens a blank grid.
type OpenInput struct {
	Route string
}

// OpenOutput describes the opened grid
type OpenOutput struct {
	Grid grid.GameGrid
	// ReadOnly is set for view routes
	ReadOnly bool
	// Fallback is set when the route could not be resolved and a blank grid
	// was opened instead
	Fallback bool
}

// ApplyInput carries one edit
type ApplyInput struct {
	Edit Edit
}

// ApplyOutput returns the edited grid
type ApplyOutput struct {
	Grid grid.GameGrid
	// Saved reports whether the grid was written to the library
	Saved bool
}

// ShareOutput returns the shared grid and the route viewers open
type ShareOutput struct {
	Grid  grid.GameGrid
	Route grid.Route
}

// LibraryOutput lists the local library
type LibraryOutput struct {
	Grids []grid.GameGrid
}
