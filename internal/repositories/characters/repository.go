// Package characters persists the tracker's combatants under the
// "characters" key
package characters

//go:generate mockgen -destination=mock/mock_repository.go -package=charactersmock github.com/KirkDiggler/rpg-tabletop/internal/repositories/characters Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/combat"
)

// Key is the local store key holding the characters document
const Key = "characters"

// Repository defines the storage interface for characters
type Repository interface {
	// List returns all stored characters; an empty store yields an empty list
	List(ctx context.Context) (*ListOutput, error)

	// SaveAll replaces the stored list
	SaveAll(ctx context.Context, input *SaveAllInput) (*SaveAllOutput, error)
}

// ListOutput defines the response for listing characters
type ListOutput struct {
	Characters []combat.Character
}

// SaveAllInput defines the request for replacing all characters
type SaveAllInput struct {
	Characters []combat.Character
}

// SaveAllOutput defines the response for replacing all characters
type SaveAllOutput struct {
	Count int
}
