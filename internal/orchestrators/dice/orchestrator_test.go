package dice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	diceorchestrator "github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/dice"
	mockclock "github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock/mock"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/rpg-tabletop/internal/repositories/dice_session"
	dicesessionmock "github.com/KirkDiggler/rpg-tabletop/internal/repositories/dice_session/mock"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *dicesessionmock.MockRepository
	orchestrator diceorchestrator.Service
	ctx          context.Context
	now          time.Time
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = dicesessionmock.NewMockRepository(s.ctrl)
	s.now = time.Date(2026, time.April, 12, 18, 0, 0, 0, time.UTC)

	clock := mockclock.NewMockClock(s.ctrl)
	clock.EXPECT().Now().Return(s.now).AnyTimes()

	var err error
	s.orchestrator, err = diceorchestrator.NewOrchestrator(&diceorchestrator.Config{
		DiceSessionRepo: s.mockRepo,
		IDGenerator:     idgen.NewSequential(idgen.PrefixRoll),
		Clock:           clock,
		Logger:          zap.NewNop(),
		Roller:          dice.NewScriptedRoller(2, 5, 6),
	})
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_Validation() {
	_, err := diceorchestrator.NewOrchestrator(&diceorchestrator.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "DiceSessionRepo")
	s.Contains(err.Error(), "Logger")
}

func (s *OrchestratorTestSuite) TestRollDice_CreatesSession() {
	s.mockRepo.EXPECT().
		Get(s.ctx, dicesession.GetInput{EntityID: "char_1", Context: "damage"}).
		Return(nil, errors.NotFound("dice session not found"))

	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dicesession.CreateInput) (*dicesession.CreateOutput, error) {
			s.Equal("char_1", input.EntityID)
			s.Equal("damage", input.Context)
			s.Require().Len(input.Rolls, 1)
			return &dicesession.CreateOutput{Session: &dicesession.DiceSession{
				EntityID: input.EntityID,
				Context:  input.Context,
				Rolls:    input.Rolls,
			}}, nil
		})

	out, err := s.orchestrator.RollDice(s.ctx, &diceorchestrator.RollDiceInput{
		EntityID:    "char_1",
		Context:     "damage",
		Notation:    "3 D 6 - 1",
		Description: "fireball",
	})
	s.Require().NoError(err)

	s.Equal("roll_1", out.Roll.RollID)
	s.Equal("3d6-1", out.Roll.Notation)
	s.Equal([]int{2, 5, 6}, out.Roll.Dice)
	s.Equal(13, out.Roll.DiceTotal)
	s.Equal(-1, out.Roll.Modifier)
	s.Equal(12, out.Roll.Total)
	s.Equal("fireball", out.Roll.Description)
	s.Equal(s.now, out.Roll.RolledAt)
	s.Len(out.Session.Rolls, 1)
}

func (s *OrchestratorTestSuite) TestRollDice_AppendsToSession() {
	existing := &dicesession.DiceSession{
		EntityID:  "char_1",
		Context:   "initiative",
		Rolls:     []dicesession.DiceRoll{{RollID: "roll_0", Notation: "1d20", Dice: []int{11}, DiceTotal: 11, Total: 11}},
		ExpiresAt: s.now.Add(time.Minute),
	}
	s.mockRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(&dicesession.GetOutput{Session: existing}, nil)
	s.mockRepo.EXPECT().
		Update(s.ctx, existing).
		Return(nil)

	out, err := s.orchestrator.RollDice(s.ctx, &diceorchestrator.RollDiceInput{
		EntityID: "char_1",
		Context:  "initiative",
		Notation: "1d20+3",
	})
	s.Require().NoError(err)
	s.Require().Len(out.Session.Rolls, 2)
	s.Equal("roll_0", out.Session.Rolls[0].RollID)
	s.Equal(5, out.Session.Rolls[1].Total)
}

func (s *OrchestratorTestSuite) TestRollDice_ModifierOnly() {
	s.mockRepo.EXPECT().Get(s.ctx, gomock.Any()).Return(nil, errors.NotFound("missing"))
	s.mockRepo.EXPECT().Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dicesession.CreateInput) (*dicesession.CreateOutput, error) {
			return &dicesession.CreateOutput{Session: &dicesession.DiceSession{Rolls: input.Rolls}}, nil
		})

	out, err := s.orchestrator.RollDice(s.ctx, &diceorchestrator.RollDiceInput{
		EntityID: "table",
		Context:  "misc",
		Notation: "+4",
	})
	s.Require().NoError(err)
	s.Empty(out.Roll.Dice)
	s.Equal(4, out.Roll.Total)
	s.Equal("+4", out.Roll.Notation)
}

func (s *OrchestratorTestSuite) TestRollDice_InvalidInput() {
	tests := []struct {
		name  string
		input *diceorchestrator.RollDiceInput
	}{
		{name: "nil input", input: nil},
		{name: "missing entity", input: &diceorchestrator.RollDiceInput{Context: "c", Notation: "1d6"}},
		{name: "missing context", input: &diceorchestrator.RollDiceInput{EntityID: "e", Notation: "1d6"}},
		{name: "missing notation", input: &diceorchestrator.RollDiceInput{EntityID: "e", Context: "c"}},
		{name: "bad notation", input: &diceorchestrator.RollDiceInput{EntityID: "e", Context: "c", Notation: "2d7"}},
		{name: "garbage", input: &diceorchestrator.RollDiceInput{EntityID: "e", Context: "c", Notation: "lots"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.orchestrator.RollDice(s.ctx, tt.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func (s *OrchestratorTestSuite) TestRollDice_RepositoryUnavailable() {
	s.mockRepo.EXPECT().Get(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("redis down"))

	_, err := s.orchestrator.RollDice(s.ctx, &diceorchestrator.RollDiceInput{
		EntityID: "e",
		Context:  "c",
		Notation: "1d6",
	})
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestGetRollSession() {
	session := &dicesession.DiceSession{EntityID: "e", Context: "c"}
	s.mockRepo.EXPECT().
		Get(s.ctx, dicesession.GetInput{EntityID: "e", Context: "c"}).
		Return(&dicesession.GetOutput{Session: session}, nil)

	out, err := s.orchestrator.GetRollSession(s.ctx, &diceorchestrator.GetRollSessionInput{EntityID: "e", Context: "c"})
	s.Require().NoError(err)
	s.Same(session, out.Session)

	s.mockRepo.EXPECT().Get(s.ctx, gomock.Any()).Return(nil, errors.NotFound("gone"))
	_, err = s.orchestrator.GetRollSession(s.ctx, &diceorchestrator.GetRollSessionInput{EntityID: "e", Context: "c"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.GetRollSession(s.ctx, &diceorchestrator.GetRollSessionInput{EntityID: "e"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestClearRollSession() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, dicesession.DeleteInput{EntityID: "e", Context: "c"}).
		Return(&dicesession.DeleteOutput{RollsDeleted: 3}, nil)

	out, err := s.orchestrator.ClearRollSession(s.ctx, &diceorchestrator.ClearRollSessionInput{EntityID: "e", Context: "c"})
	s.Require().NoError(err)
	s.Equal(3, out.RollsDeleted)

	_, err = s.orchestrator.ClearRollSession(s.ctx, &diceorchestrator.ClearRollSessionInput{Context: "c"})
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
