// Package dice rolls expressions on behalf of an entity and keeps the
// results in short-lived roll sessions
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/dice Service

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/metrics"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/rpg-tabletop/internal/repositories/dice_session"
)

// Service defines the interface for dice operations
type Service interface {
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)
	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	DiceSessionRepo dicesession.Repository
	IDGenerator     idgen.Generator
	Clock           clock.Clock
	Logger          *zap.Logger

	// Roller defaults to dice.DefaultRoller
	Roller dice.Roller
	// Metrics is optional
	Metrics *metrics.Metrics
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DiceSessionRepo == nil {
		vb.RequiredField("DiceSessionRepo")
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
	diceSessionRepo dicesession.Repository
	idGen           idgen.Generator
	clock           clock.Clock
	logger          *zap.Logger
	roller          dice.Roller
	metrics         *metrics.Metrics
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
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

	return &orchestrator{
		diceSessionRepo: cfg.DiceSessionRepo,
		idGen:           cfg.IDGenerator,
		clock:           cfg.Clock,
		logger:          cfg.Logger,
		roller:          roller,
		metrics:         cfg.Metrics,
	}, nil
}

func validateSessionKey(entityID, sessionContext string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("entity_id", entityID, vb)
	errors.ValidateRequired("context", sessionContext, vb)
	return vb.Build()
}

// roll evaluates the expression die by die so the faces can be kept
func (o *orchestrator) roll(expr dice.Roll, description string) *dicesession.DiceRoll {
	faces := expr.Dice.RollEach(o.roller)
	if faces == nil {
		faces = []int{}
	}

	sum := 0
	for _, f := range faces {
		sum += f
	}

	if expr.HasDice() {
		o.metrics.DiceRolled(expr.Dice.Die.String(), len(faces))
	}

	return &dicesession.DiceRoll{
		RollID:      o.idGen.Generate(),
		Notation:    expr.String(),
		Dice:        faces,
		DiceTotal:   sum,
		Modifier:    expr.Modifier,
		Total:       sum + expr.Modifier,
		Description: description,
		RolledAt:    o.clock.Now(),
	}
}

// RollDice rolls the expression and appends the result to the entity's
// session for the given context, creating the session when needed
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}
	if input.Notation == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	expr, err := dice.Parse(input.Notation)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid dice notation %q", input.Notation)
	}

	roll := o.roll(expr, input.Description)

	getOutput, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})

	var session *dicesession.DiceSession
	switch {
	case err == nil:
		session = getOutput.Session
		session.Rolls = append(session.Rolls, *roll)
		if err := o.diceSessionRepo.Update(ctx, session); err != nil {
			return nil, errors.Wrap(err, "failed to update dice session")
		}
	case errors.IsNotFound(err):
		createOutput, err := o.diceSessionRepo.Create(ctx, dicesession.CreateInput{
			EntityID: input.EntityID,
			Context:  input.Context,
			Rolls:    []dicesession.DiceRoll{*roll},
			TTL:      input.TTL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create dice session")
		}
		session = createOutput.Session
	default:
		return nil, errors.Wrap(err, "failed to check for existing session")
	}

	o.logger.Info("dice rolled",
		zap.String("entity_id", input.EntityID),
		zap.String("context", input.Context),
		zap.String("notation", roll.Notation),
		zap.Int("total", roll.Total),
		zap.String("roll_id", roll.RollID),
	)

	return &RollDiceOutput{
		Roll:    roll,
		Session: session,
	}, nil
}

// GetRollSession retrieves an existing dice roll session
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	getOutput, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get dice session")
	}

	return &GetRollSessionOutput{
		Session: getOutput.Session,
	}, nil
}

// ClearRollSession removes a dice roll session
func (o *orchestrator) ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	deleteOutput, err := o.diceSessionRepo.Delete(ctx, dicesession.DeleteInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete dice session")
	}

	o.logger.Info("dice session cleared",
		zap.String("entity_id", input.EntityID),
		zap.String("context", input.Context),
		zap.Int("rolls_deleted", deleteOutput.RollsDeleted),
	)

	return &ClearRollSessionOutput{
		RollsDeleted: deleteOutput.RollsDeleted,
	}, nil
}
