// Package tracker owns the encounter tracker model: it loads kinds and
// characters from the local library, applies messages to the model and
// writes the affected lists back
package tracker

//go:generate mockgen -destination=mock/mock_service.go -package=trackermock github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/tracker Service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/entities/combat"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/characters"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/kinds"
)

// Service defines the tracker operations
type Service interface {
	// Load replaces the in-memory model with the stored kinds and characters
	Load(ctx context.Context) (*LoadOutput, error)

	// Dispatch applies a message. When writing to the library fails the
	// error is returned but the new model stays in place.
	Dispatch(ctx context.Context, input *DispatchInput) (*DispatchOutput, error)

	// Model returns the current model
	Model() combat.Model
}

// Config holds the dependencies for the tracker orchestrator
type Config struct {
	KindRepo      kinds.Repository
	CharacterRepo characters.Repository
	IDGenerator   idgen.Generator
	Logger        *zap.Logger

	// Roller defaults to dice.DefaultRoller
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.KindRepo == nil {
		vb.RequiredField("KindRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Logger == nil {
		vb.RequiredField("Logger")
	}

	return vb.Build()
}

type orchestrator struct {
	kindRepo      kinds.Repository
	characterRepo characters.Repository
	idGen         idgen.Generator
	logger        *zap.Logger
	roller        dice.Roller

	mu    sync.RWMutex
	model combat.Model
}

// NewOrchestrator creates a tracker with an empty model
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
		kindRepo:      cfg.KindRepo,
		characterRepo: cfg.CharacterRepo,
		idGen:         cfg.IDGenerator,
		logger:        cfg.Logger,
		roller:        roller,
		model:         combat.NewModel(nil, nil),
	}, nil
}

func (o *orchestrator) Load(ctx context.Context) (*LoadOutput, error) {
	kindList, err := o.kindRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load kinds")
	}
	charList, err := o.characterRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load characters")
	}

	model := combat.NewModel(kindList.Kinds, charList.Characters)

	o.mu.Lock()
	o.model = model
	o.mu.Unlock()

	o.logger.Debug("tracker loaded",
		zap.Int("kinds", len(model.Kinds)),
		zap.Int("characters", len(model.Characters)),
	)

	return &LoadOutput{Model: model}, nil
}

func (o *orchestrator) Dispatch(ctx context.Context, input *DispatchInput) (*DispatchOutput, error) {
	if input == nil || input.Message == nil {
		return nil, errors.InvalidArgument("message is required")
	}
	msg := o.withID(input.Message)

	// writes happen under the lock so the library sees messages in order
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := combat.Update(o.model, msg, o.roller)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to apply %s", messageName(msg))
	}
	o.model = next

	if err := o.persist(ctx, msg, next); err != nil {
		o.logger.Warn("tracker change kept in memory only",
			zap.String("message", messageName(msg)),
			zap.Error(err),
		)
		return nil, err
	}

	return &DispatchOutput{Model: next}, nil
}

func (o *orchestrator) Model() combat.Model {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.model
}

func (o *orchestrator) withID(msg combat.Message) combat.Message {
	switch m := msg.(type) {
	case combat.AddPC:
		if m.ID == "" {
			m.ID = o.idGen.Generate()
		}
		return m
	case combat.AddNPC:
		if m.ID == "" {
			m.ID = o.idGen.Generate()
		}
		return m
	}
	return msg
}

// persist writes whichever list the message can change. Selection and tab
// messages only touch view state.
func (o *orchestrator) persist(ctx context.Context, msg combat.Message, m combat.Model) error {
	switch msg.(type) {
	case combat.AddKind, combat.ReplaceKind, combat.RemoveKind:
		if _, err := o.kindRepo.SaveAll(ctx, &kinds.SaveAllInput{Kinds: m.Kinds}); err != nil {
			return errors.Wrap(err, "failed to save kinds")
		}
	case combat.SelectCharacter, combat.NextCharacter, combat.SelectTab:
	default:
		if _, err := o.characterRepo.SaveAll(ctx, &characters.SaveAllInput{Characters: m.Characters}); err != nil {
			return errors.Wrap(err, "failed to save characters")
		}
	}
	return nil
}

func messageName(msg combat.Message) string {
	return fmt.Sprintf("%T", msg)
}
