package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/entities/combat"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

type CharacterTestSuite struct {
	suite.Suite
	npc combat.Character
}

func (s *CharacterTestSuite) SetupTest() {
	// 3+4 hit points, 15 on the initiative die
	npc, err := combat.NewNPC("npc_1", goblin(), combat.NPCOptions{}, dice.NewScriptedRoller(3, 4, 15))
	s.Require().NoError(err)
	s.npc = npc
}

func (s *CharacterTestSuite) TestNewNPC_RollsDefaults() {
	s.Equal(combat.CharacterTypeNPC, s.npc.Type)
	s.Equal("Goblin", s.npc.Label)
	s.Equal(7, s.npc.NPC.MaxHitPoints)
	s.Equal(7, s.npc.NPC.CurrentHitPoints)
	s.Equal(17, s.npc.Initiative.Value(combat.InitiativeRoll))
	s.Equal(12, s.npc.Initiative.Value(combat.InitiativeStatic))
	s.Len(s.npc.NPC.Hits, 2)
	s.Nil(s.npc.NPC.Hits[0])
	s.Nil(s.npc.NPC.Hits[1])
	s.Empty(s.npc.NPC.Saves)
	s.False(s.npc.IsDead())
}

func (s *CharacterTestSuite) TestNewNPC_Overrides() {
	ini := combat.FixedInitiative(4)
	npc, err := combat.NewNPC("npc_2", goblin(), combat.NPCOptions{
		Label:      "Goblin Boss",
		HitPoints:  intPtr(21),
		Initiative: &ini,
	}, dice.NewScriptedRoller(1))
	s.Require().NoError(err)

	s.Equal("Goblin Boss", npc.Label)
	s.Equal(21, npc.NPC.MaxHitPoints)
	s.Equal(4, npc.Initiative.Value(combat.InitiativeRoll))
}

func (s *CharacterTestSuite) TestNewNPC_RequiresID() {
	_, err := combat.NewNPC("", goblin(), combat.NPCOptions{}, dice.DefaultRoller)
	s.True(errors.IsInvalidArgument(err))
}

func (s *CharacterTestSuite) TestEntity() {
	s.Equal("npc_1", s.npc.GetID())
	s.Equal("npc", s.npc.GetType())
}

func (s *CharacterTestSuite) TestWithHitPointDelta() {
	hurt, err := s.npc.WithHitPointDelta(-9)
	s.Require().NoError(err)

	s.Equal(-2, hurt.NPC.CurrentHitPoints)
	s.True(hurt.IsDead())
	s.Equal(7, s.npc.NPC.CurrentHitPoints, "original character must not change")

	healed, err := hurt.WithHitPointDelta(3)
	s.Require().NoError(err)
	s.Equal(1, healed.NPC.CurrentHitPoints)
	s.False(healed.IsDead())
}

func (s *CharacterTestSuite) TestExecuteAttack() {
	attacked, err := s.npc.ExecuteAttack(1, dice.NewScriptedRoller(11, 3))
	s.Require().NoError(err)

	s.Nil(attacked.NPC.Hits[0])
	s.Require().NotNil(attacked.NPC.Hits[1])
	s.Equal(15, attacked.NPC.Hits[1].ToHit.Value())
	s.Equal(5, attacked.NPC.Hits[1].TotalDamage())
	s.Nil(s.npc.NPC.Hits[1], "original character must not change")
}

func (s *CharacterTestSuite) TestExecuteAttack_UnknownIndex() {
	_, err := s.npc.ExecuteAttack(5, dice.DefaultRoller)
	s.True(errors.IsNotFound(err))
}

func (s *CharacterTestSuite) TestRollSavingThrow_KeepsOnlyLatest() {
	first, err := s.npc.RollSavingThrow(combat.SaveDexterity, dice.NewScriptedRoller(10))
	s.Require().NoError(err)
	s.Equal(map[combat.SaveCategory]dice.RollResult{
		combat.SaveDexterity: {DieResult: 10, Modifier: 2},
	}, first.NPC.Saves)

	second, err := first.RollSavingThrow(combat.SaveStrength, dice.NewScriptedRoller(8))
	s.Require().NoError(err)
	s.Equal(map[combat.SaveCategory]dice.RollResult{
		combat.SaveStrength: {DieResult: 8, Modifier: 0},
	}, second.NPC.Saves)
	s.Len(first.NPC.Saves, 1)
}

func (s *CharacterTestSuite) TestRollSavingThrow_OutsideSaveSet() {
	_, err := s.npc.RollSavingThrow(combat.SaveWill, dice.DefaultRoller)
	s.True(errors.IsNotFound(err))
}

func (s *CharacterTestSuite) TestRerollInitiative() {
	rerolled := s.npc.RerollInitiative(dice.NewScriptedRoller(2))
	s.Equal(4, rerolled.Initiative.Value(combat.InitiativeRoll))
	s.Equal(17, s.npc.Initiative.Value(combat.InitiativeRoll))
}

func (s *CharacterTestSuite) TestPC() {
	pc, err := combat.NewPC("pc_1", "Tordek", combat.FixedInitiative(14))
	s.Require().NoError(err)

	s.Equal("pc", pc.GetType())
	s.False(pc.IsDead())
	s.Equal(pc, pc.RerollInitiative(dice.DefaultRoller))

	_, err = pc.WithHitPointDelta(-5)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
	_, err = pc.ExecuteAttack(0, dice.DefaultRoller)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
	_, err = pc.RollSavingThrow(combat.SaveWisdom, dice.DefaultRoller)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
}

func (s *CharacterTestSuite) TestNPCWithoutState() {
	bare := combat.Character{Type: combat.CharacterTypeNPC, ID: "npc_bare", Label: "Bare"}

	s.NotPanics(func() {
		s.False(bare.IsDead())
		s.Equal(bare, bare.RerollInitiative(dice.DefaultRoller))
	})

	_, err := bare.WithHitPointDelta(-1)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
	_, err = bare.ExecuteAttack(0, dice.DefaultRoller)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
	_, err = bare.RollSavingThrow(combat.SaveDexterity, dice.DefaultRoller)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
}

func (s *CharacterTestSuite) TestExecuteAttack_ShortHitsSlice() {
	s.npc.NPC.Hits = nil

	c, err := s.npc.ExecuteAttack(0, dice.NewScriptedRoller(12, 3))
	s.Require().NoError(err)
	s.Require().Len(c.NPC.Hits, len(c.NPC.Kind.Attacks))
	s.NotNil(c.NPC.Hits[0])
}

func (s *CharacterTestSuite) TestNewPC_Validation() {
	_, err := combat.NewPC("pc_1", "", combat.FixedInitiative(1))
	s.True(errors.IsInvalidArgument(err))
}

func TestCharacterTestSuite(t *testing.T) {
	suite.Run(t, new(CharacterTestSuite))
}

func TestCharacter_DeathFollowsHitPoints(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 200).Draw(rt, "maxHP")
		deltas := rapid.SliceOf(rapid.IntRange(-50, 50)).Draw(rt, "deltas")

		c, err := combat.NewNPC("npc", ogre(), combat.NPCOptions{HitPoints: intPtr(maxHP)}, dice.DefaultRoller)
		require.NoError(rt, err)

		expected := maxHP
		for _, d := range deltas {
			c, err = c.WithHitPointDelta(d)
			require.NoError(rt, err)
			expected += d

			assert.Equal(rt, expected, c.NPC.CurrentHitPoints)
			assert.Equal(rt, c.NPC.CurrentHitPoints <= 0, c.IsDead())
		}
		assert.Equal(rt, maxHP, c.NPC.MaxHitPoints)
	})
}
