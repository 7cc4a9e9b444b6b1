package tracker

import "github.com/KirkDiggler/rpg-tabletop/internal/entities/combat"

// LoadOutput defines the response for loading the tracker
type LoadOutput struct {
	Model combat.Model
}

// DispatchInput defines a message to apply to the tracker. AddPC and
// AddNPC messages without an ID get one generated.
type DispatchInput struct {
	Message combat.Message
}

// DispatchOutput defines the response for a dispatched message
type DispatchOutput struct {
	Model combat.Model
}
