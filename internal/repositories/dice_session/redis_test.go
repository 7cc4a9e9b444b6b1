package dicesession_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	mockclock "github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock/mock"
	dicesession "github.com/KirkDiggler/rpg-tabletop/internal/repositories/dice_session"
	"github.com/KirkDiggler/rpg-tabletop/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	mr   *miniredis.Miniredis
	repo dicesession.Repository
	ctx  context.Context
	now  time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.now = time.Date(2026, time.March, 3, 19, 30, 0, 0, time.UTC)

	clock := mockclock.NewMockClock(s.ctrl)
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()

	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr

	var err error
	s.repo, err = dicesession.NewRedisRepository(&dicesession.Config{
		Client: client,
		Clock:  clock,
	})
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) sampleRoll(id string, faces ...int) dicesession.DiceRoll {
	sum := 0
	for _, f := range faces {
		sum += f
	}
	return dicesession.DiceRoll{
		RollID:    id,
		Notation:  "2d6+1",
		Dice:      faces,
		DiceTotal: sum,
		Modifier:  1,
		Total:     sum + 1,
		RolledAt:  s.now,
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedisRepository_Validation() {
	_, err := dicesession.NewRedisRepository(&dicesession.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = dicesession.NewRedisRepository(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestCreateGet() {
	created, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "char_1",
		Context:  "initiative",
		Rolls:    []dicesession.DiceRoll{s.sampleRoll("roll_1", 3, 4)},
	})
	s.Require().NoError(err)
	s.Equal(s.now.Add(dicesession.DefaultTTL), created.Session.ExpiresAt)

	got, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "char_1", Context: "initiative"})
	s.Require().NoError(err)
	s.Require().Len(got.Session.Rolls, 1)
	s.Equal([]int{3, 4}, got.Session.Rolls[0].Dice)
	s.Equal(8, got.Session.Rolls[0].Total)
	s.True(got.Session.CreatedAt.Equal(s.now))

	s.Equal(dicesession.DefaultTTL, s.mr.TTL("dice_session:char_1:initiative"))
}

func (s *RedisRepositoryTestSuite) TestCreate_CustomTTL() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "table",
		Context:  "round_1",
		TTL:      time.Hour,
	})
	s.Require().NoError(err)
	s.Equal(time.Hour, s.mr.TTL("dice_session:table:round_1"))
}

func (s *RedisRepositoryTestSuite) TestCreate_RequiresKey() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{Context: "x"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, dicesession.CreateInput{EntityID: "x"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "nobody", Context: "nothing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGet_ExpiredByClock() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{EntityID: "char_1", Context: "saves", TTL: time.Minute})
	s.Require().NoError(err)

	s.now = s.now.Add(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "char_1", Context: "saves"})
	s.True(errors.IsNotFound(err))
	s.False(s.mr.Exists("dice_session:char_1:saves"))
}

func (s *RedisRepositoryTestSuite) TestGet_Corrupt() {
	s.Require().NoError(s.mr.Set("dice_session:char_1:bad", "{"))

	_, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "char_1", Context: "bad"})
	s.True(errors.IsDataLoss(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate_KeepsExpiry() {
	created, err := s.repo.Create(s.ctx, dicesession.CreateInput{EntityID: "char_1", Context: "attacks"})
	s.Require().NoError(err)

	s.now = s.now.Add(5 * time.Minute)
	session := created.Session
	session.Rolls = append(session.Rolls, s.sampleRoll("roll_2", 6, 6))
	s.Require().NoError(s.repo.Update(s.ctx, session))

	s.Equal(10*time.Minute, s.mr.TTL("dice_session:char_1:attacks"))

	got, err := s.repo.Get(s.ctx, dicesession.GetInput{EntityID: "char_1", Context: "attacks"})
	s.Require().NoError(err)
	s.Len(got.Session.Rolls, 1)
}

func (s *RedisRepositoryTestSuite) TestUpdate_Expired() {
	created, err := s.repo.Create(s.ctx, dicesession.CreateInput{EntityID: "char_1", Context: "attacks", TTL: time.Minute})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	err = s.repo.Update(s.ctx, created.Session)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))

	s.True(errors.IsInvalidArgument(s.repo.Update(s.ctx, nil)))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, dicesession.CreateInput{
		EntityID: "char_1",
		Context:  "damage",
		Rolls:    []dicesession.DiceRoll{s.sampleRoll("roll_1", 1, 2), s.sampleRoll("roll_2", 5, 5)},
	})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, dicesession.DeleteInput{EntityID: "char_1", Context: "damage"})
	s.Require().NoError(err)
	s.Equal(2, out.RollsDeleted)

	out, err = s.repo.Delete(s.ctx, dicesession.DeleteInput{EntityID: "char_1", Context: "damage"})
	s.Require().NoError(err)
	s.Zero(out.RollsDeleted)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
