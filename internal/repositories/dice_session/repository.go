// Package dicesession stores roll history grouped by entity and context
package dicesession

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesessionmock github.com/KirkDiggler/rpg-tabletop/internal/repositories/dice_session Repository

// DiceSession is the roll history of one entity within one context
type DiceSession struct {
	// Entity that owns these rolls (e.g., "char_1a2b", "table")
	EntityID string `json:"entityId"`

	// Context groups related rolls (e.g., "initiative", "round_3")
	Context string `json:"context"`

	Rolls []DiceRoll `json:"rolls"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DiceRoll is one evaluated roll expression
type DiceRoll struct {
	RollID string `json:"rollId"`

	// Canonical expression that was rolled, e.g. "2d6+3"
	Notation string `json:"notation"`

	// Individual die faces in draw order
	Dice []int `json:"dice"`

	// DiceTotal is the sum of Dice; Total adds Modifier
	DiceTotal int `json:"diceTotal"`
	Modifier  int `json:"modifier"`
	Total     int `json:"total"`

	Description string    `json:"description,omitempty"`
	RolledAt    time.Time `json:"rolledAt"`
}

// CreateInput contains parameters for creating a dice session
type CreateInput struct {
	EntityID string
	Context  string
	Rolls    []DiceRoll
	TTL      time.Duration // zero uses the repository default
}

// CreateOutput contains the created session
type CreateOutput struct {
	Session *DiceSession
}

// GetInput identifies a session
type GetInput struct {
	EntityID string
	Context  string
}

// GetOutput contains the stored session
type GetOutput struct {
	Session *DiceSession
}

// DeleteInput identifies a session
type DeleteInput struct {
	EntityID string
	Context  string
}

// DeleteOutput reports how many rolls went away with the session
type DeleteOutput struct {
	RollsDeleted int
}

// Repository defines the interface for dice session storage operations
type Repository interface {
	// Create stores a new dice session with the specified TTL
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a dice session by entity ID and context
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a dice session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Update replaces an existing session, keeping its original expiry
	Update(ctx context.Context, session *DiceSession) error
}
