// Package kinds persists the tracker's kind list under the "kinds" key
package kinds

//go:generate mockgen -destination=mock/mock_repository.go -package=kindsmock github.com/KirkDiggler/rpg-tabletop/internal/repositories/kinds Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/combat"
)

// Key is the local store key holding the kinds document
const Key = "kinds"

// Repository defines the storage interface for kinds
type Repository interface {
	// List returns all stored kinds; an empty store yields an empty list
	List(ctx context.Context) (*ListOutput, error)

	// SaveAll replaces the stored list
	SaveAll(ctx context.Context, input *SaveAllInput) (*SaveAllOutput, error)
}

// ListOutput defines the response for listing kinds
type ListOutput struct {
	Kinds []combat.Kind
}

// SaveAllInput defines the request for replacing all kinds
type SaveAllInput struct {
	Kinds []combat.Kind
}

// SaveAllOutput defines the response for replacing all kinds
type SaveAllOutput struct {
	Count int
}
