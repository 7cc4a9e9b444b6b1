package battlemap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	gridapimock "github.com/KirkDiggler/rpg-tabletop/internal/clients/gridapi/mock"
	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/battlemap"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/gamegrids"
	gamegridsmock "github.com/KirkDiggler/rpg-tabletop/internal/repositories/gamegrids/mock"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/localstore"
	"github.com/KirkDiggler/rpg-tabletop/internal/testutils"
)

var redKnight = grid.Token{Symbol: grid.SymbolKnight, Color: grid.ColorRed}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	remote       *gridapimock.MockClient
	library      gamegrids.Repository
	orchestrator battlemap.Service
	ctx          context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.remote = gridapimock.NewMockClient(s.ctrl)
	s.ctx = context.Background()

	client, _ := testutils.CreateTestRedisClient(s.T())
	store, err := localstore.NewRedis(&localstore.RedisConfig{Client: client})
	s.Require().NoError(err)

	s.library, err = gamegrids.NewLocal(&gamegrids.Config{
		Store:       store,
		IDGenerator: idgen.NewSequential(idgen.PrefixGrid),
		Clock:       clock.New(),
	})
	s.Require().NoError(err)

	s.orchestrator, err = battlemap.NewOrchestrator(&battlemap.Config{
		Library: s.library,
		Remote:  s.remote,
		Logger:  zap.NewNop(),
		Roller:  dice.NewScriptedRoller(2, 6),
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) apply(edit battlemap.Edit) *battlemap.ApplyOutput {
	out, err := s.orchestrator.Apply(s.ctx, &battlemap.ApplyInput{Edit: edit})
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	g := s.orchestrator.Grid()
	s.Equal(battlemap.DefaultCols, g.Cols())
	s.Equal(battlemap.DefaultRows, g.Rows())
	s.Equal("Sunken Temple", g.Label)
	s.True(g.IsEmpty())

	_, err := battlemap.NewOrchestrator(&battlemap.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestOpen_Descriptor() {
	out, err := s.orchestrator.Open(s.ctx, &battlemap.OpenInput{Route: "#" + testutils.SampleDescriptor})
	s.Require().NoError(err)
	s.False(out.Fallback)
	s.False(out.ReadOnly)
	s.Equal(testutils.SampleDescriptor, out.Grid.Descriptor())
	s.Equal("Sunken Temple", out.Grid.Label)

	list, err := s.orchestrator.Library(s.ctx)
	s.Require().NoError(err)
	s.Empty(list.Grids, "opening does not save")
}

func (s *OrchestratorTestSuite) TestOpen_Fallbacks() {
	tests := []struct {
		name     string
		route    string
		fallback bool
	}{
		{name: "empty", route: "", fallback: false},
		{name: "garbage", route: "zzz", fallback: true},
		{name: "oversized", route: "900x900", fallback: true},
		{name: "unknown id", route: "edit:grid_404", fallback: true},
		{name: "edit without id", route: "edit:", fallback: true},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			out, err := s.orchestrator.Open(s.ctx, &battlemap.OpenInput{Route: tt.route})
			s.Require().NoError(err)
			s.Equal(tt.fallback, out.Fallback)
			s.Equal(battlemap.DefaultCols, out.Grid.Cols())
			s.True(out.Grid.IsEmpty())
		})
	}
}

func (s *OrchestratorTestSuite) TestApply_SavesWhileNonEmpty() {
	out := s.apply(battlemap.PlaceToken{Col: 1, Row: 1, Token: redKnight})
	s.True(out.Saved)
	s.Equal("grid_1", out.Grid.ID)
	s.False(out.Grid.LastModified.IsZero())

	out = s.apply(battlemap.MoveToken{FromCol: 1, FromRow: 1, ToCol: 4, ToRow: 2})
	s.True(out.Saved)
	s.Equal("grid_1", out.Grid.ID, "later saves replace the same entry")

	out = s.apply(battlemap.Rename{Label: "Bridge Fight"})
	s.True(out.Saved)

	out = s.apply(battlemap.Clear{})
	s.False(out.Saved)
	s.True(out.Grid.IsEmpty())

	stored, err := s.library.Get(s.ctx, &gamegrids.GetInput{ID: "grid_1"})
	s.Require().NoError(err)
	s.Equal("Bridge Fight", stored.Grid.Label)
	token, ok := stored.Grid.TokenAt(4, 2)
	s.True(ok)
	s.Equal(redKnight, token)
}

func (s *OrchestratorTestSuite) TestApply_AllEdits() {
	s.apply(battlemap.PaintBackground{Col: 0, Row: 0, Color: grid.ColorGreen})
	s.apply(battlemap.PlaceWall{Col: 2, Row: 2, Wall: grid.Wall{Symbol: grid.WallDoor, Position: grid.WallTop, Color: grid.ColorBlack}})
	s.apply(battlemap.PlaceToken{Col: 3, Row: 3, Token: redKnight})
	s.apply(battlemap.RemoveToken{Col: 3, Row: 3})
	s.apply(battlemap.RemoveWall{Col: 2, Row: 2, Position: grid.WallTop})
	out := s.apply(battlemap.Resize{Cols: 5, Rows: 4})

	g := out.Grid
	s.Equal(5, g.Cols())
	s.Equal(4, g.Rows())
	c, ok := g.BackgroundAt(0, 0)
	s.True(ok)
	s.Equal(grid.ColorGreen, c)
	_, ok = g.WallAt(2, 2, grid.WallTop)
	s.False(ok)

	out = s.apply(battlemap.ClearBackground{Col: 0, Row: 0})
	s.True(out.Grid.IsEmpty())
	s.False(out.Saved)
}

func (s *OrchestratorTestSuite) TestApply_Errors() {
	_, err := s.orchestrator.Apply(s.ctx, &battlemap.ApplyInput{Edit: battlemap.PlaceToken{Col: 99, Row: 0, Token: redKnight}})
	s.True(errors.IsOutOfRange(err))

	_, err = s.orchestrator.Apply(s.ctx, &battlemap.ApplyInput{Edit: battlemap.MoveToken{FromCol: 0, FromRow: 0, ToCol: 1, ToRow: 1}})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.Apply(s.ctx, &battlemap.ApplyInput{})
	s.True(errors.IsInvalidArgument(err))

	s.True(s.orchestrator.Grid().IsEmpty())
}

func (s *OrchestratorTestSuite) TestOpen_EditFromLibrary() {
	s.apply(battlemap.PlaceToken{Col: 0, Row: 0, Token: redKnight})
	s.apply(battlemap.Rename{Label: "Stored"})

	_, err := s.orchestrator.Open(s.ctx, &battlemap.OpenInput{Route: "zzz"})
	s.Require().NoError(err)

	out, err := s.orchestrator.Open(s.ctx, &battlemap.OpenInput{Route: "/maps/edit:grid_1"})
	s.Require().NoError(err)
	s.False(out.Fallback)
	s.Equal("Stored", out.Grid.Label)
	s.Equal("grid_1", s.orchestrator.Grid().ID)
}

func (s *OrchestratorTestSuite) TestOpen_ViewIsReadOnly() {
	s.remote.EXPECT().Get(s.ctx, "shared_9").Return(&grid.DTO{ID: "shared_9", Label: "Table", Descriptor: "3x3"}, nil)

	out, err := s.orchestrator.Open(s.ctx, &battlemap.OpenInput{Route: "view:shared_9"})
	s.Require().NoError(err)
	s.True(out.ReadOnly)
	s.Equal("Table", out.Grid.Label)

	_, err = s.orchestrator.Apply(s.ctx, &battlemap.ApplyInput{Edit: battlemap.Rename{Label: "Mine"}})
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))

	_, err = s.orchestrator.Share(s.ctx)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestOpen_ViewRemoteUnavailable() {
	s.remote.EXPECT().Get(s.ctx, "shared_9").Return(nil, errors.Unavailable("offline"))

	_, err := s.orchestrator.Open(s.ctx, &battlemap.OpenInput{Route: "view:shared_9"})
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestShare() {
	s.apply(battlemap.PlaceToken{Col: 2, Row: 2, Token: redKnight})
	descriptor := s.orchestrator.Grid().Descriptor()

	s.remote.EXPECT().
		Create(s.ctx, grid.DTO{Label: "Sunken Temple", Descriptor: descriptor}).
		Return(&grid.DTO{ID: "shared_1", Label: "Sunken Temple", Descriptor: descriptor}, nil)

	out, err := s.orchestrator.Share(s.ctx)
	s.Require().NoError(err)
	s.Equal("shared_1", out.Grid.ID)
	s.Equal("view:shared_1", out.Route.String())

	s.apply(battlemap.Rename{Label: "Round Two"})
	s.remote.EXPECT().
		Update(s.ctx, "shared_1", gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, dto grid.DTO) (*grid.DTO, error) {
			s.Equal("Round Two", dto.Label)
			dto.ID = id
			return &dto, nil
		})

	_, err = s.orchestrator.Share(s.ctx)
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestShare_WithoutRemote() {
	orchestrator, err := battlemap.NewOrchestrator(&battlemap.Config{Library: s.library, Logger: zap.NewNop()})
	s.Require().NoError(err)

	_, err = orchestrator.Share(s.ctx)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestApply_SaveFailureKeepsEdit() {
	library := gamegridsmock.NewMockRepository(s.ctrl)
	orchestrator, err := battlemap.NewOrchestrator(&battlemap.Config{
		Library: library,
		Logger:  zap.NewNop(),
		Roller:  dice.NewScriptedRoller(1),
	})
	s.Require().NoError(err)

	library.EXPECT().Save(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("store offline"))

	_, err = orchestrator.Apply(s.ctx, &battlemap.ApplyInput{Edit: battlemap.PlaceToken{Col: 1, Row: 1, Token: redKnight}})
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))

	token, ok := orchestrator.Grid().TokenAt(1, 1)
	s.True(ok)
	s.Equal(redKnight, token)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
