package combat_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
	"github.com/KirkDiggler/rpg-tabletop/internal/entities/combat"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

type ModelTestSuite struct {
	suite.Suite
	model combat.Model
}

func (s *ModelTestSuite) SetupTest() {
	s.model = combat.NewModel([]combat.Kind{ogre(), goblin()}, nil)
}

func (s *ModelTestSuite) update(msg combat.Message, roller dice.Roller) combat.Model {
	m, err := combat.Update(s.model, msg, roller)
	s.Require().NoError(err)
	s.model = m
	return m
}

func (s *ModelTestSuite) labels() []string {
	out := make([]string, len(s.model.Characters))
	for i, c := range s.model.Characters {
		out[i] = c.Label
	}
	return out
}

func (s *ModelTestSuite) TestNewModel_SortsKinds() {
	s.Equal("Goblin", s.model.Kinds[0].Label)
	s.Equal("Ogre", s.model.Kinds[1].Label)
	s.Equal(combat.TabCharacters, s.model.ActiveTab)
	s.Equal(combat.InitiativeRoll, s.model.InitiativeKind)
}

func (s *ModelTestSuite) TestAddKind() {
	bugbear := goblin()
	bugbear.Label = "Bugbear"
	s.update(combat.AddKind{Kind: bugbear}, nil)

	s.Len(s.model.Kinds, 3)
	s.Equal("Bugbear", s.model.Kinds[0].Label)
}

func (s *ModelTestSuite) TestAddKind_Duplicate() {
	_, err := combat.Update(s.model, combat.AddKind{Kind: goblin()}, nil)
	s.True(errors.IsAlreadyExists(err))
}

func (s *ModelTestSuite) TestReplaceKind() {
	renamed := goblin()
	renamed.Label = "Hobgoblin"
	renamed.ArmorClass = 18
	s.update(combat.ReplaceKind{Label: "Goblin", Kind: renamed}, nil)

	_, ok := s.model.Kind("Goblin")
	s.False(ok)
	k, ok := s.model.Kind("Hobgoblin")
	s.True(ok)
	s.Equal(18, k.ArmorClass)
}

func (s *ModelTestSuite) TestReplaceKind_ClashesWithOther() {
	clash := goblin()
	clash.Label = "Ogre"
	_, err := combat.Update(s.model, combat.ReplaceKind{Label: "Goblin", Kind: clash}, nil)
	s.True(errors.IsAlreadyExists(err))
}

func (s *ModelTestSuite) TestRemoveKind() {
	s.update(combat.RemoveKind{Label: "Ogre"}, nil)
	s.Len(s.model.Kinds, 1)

	_, err := combat.Update(s.model, combat.RemoveKind{Label: "Ogre"}, nil)
	s.True(errors.IsNotFound(err))
}

func (s *ModelTestSuite) TestCharactersSortByInitiative() {
	s.update(combat.AddPC{ID: "pc_1", Label: "Lidda", Initiative: 10}, nil)
	s.update(combat.AddPC{ID: "pc_2", Label: "Tordek", Initiative: 15}, nil)
	s.update(combat.AddPC{ID: "pc_3", Label: "Mialee", Initiative: 15}, nil)
	s.update(combat.AddNPC{ID: "npc_1", KindLabel: "Goblin"}, dice.NewScriptedRoller(3, 3, 18))

	s.Equal([]string{"Goblin", "Tordek", "Mialee", "Lidda"}, s.labels())
}

func (s *ModelTestSuite) TestSetInitiativeKind() {
	s.update(combat.AddPC{ID: "pc_1", Label: "Tordek", Initiative: 14}, nil)
	// rolled 19+2, static 10+2
	s.update(combat.AddNPC{ID: "npc_1", KindLabel: "Goblin"}, dice.NewScriptedRoller(3, 3, 19))
	s.Equal([]string{"Goblin", "Tordek"}, s.labels())

	s.update(combat.SetInitiativeKind{Kind: combat.InitiativeStatic}, nil)
	s.Equal([]string{"Tordek", "Goblin"}, s.labels())

	_, err := combat.Update(s.model, combat.SetInitiativeKind{Kind: "random"}, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ModelTestSuite) TestAddNPC_UnknownKind() {
	_, err := combat.Update(s.model, combat.AddNPC{ID: "npc_1", KindLabel: "Dragon"}, nil)
	s.True(errors.IsNotFound(err))
}

func (s *ModelTestSuite) TestAddCharacter_DuplicateID() {
	s.update(combat.AddPC{ID: "pc_1", Label: "Tordek", Initiative: 14}, nil)
	_, err := combat.Update(s.model, combat.AddPC{ID: "pc_1", Label: "Again", Initiative: 3}, nil)
	s.True(errors.IsAlreadyExists(err))
}

func (s *ModelTestSuite) TestRemoveCharacter() {
	s.update(combat.AddPC{ID: "pc_1", Label: "A", Initiative: 20}, nil)
	s.update(combat.AddPC{ID: "pc_2", Label: "B", Initiative: 15}, nil)
	s.update(combat.AddPC{ID: "pc_3", Label: "C", Initiative: 10}, nil)
	s.update(combat.SelectCharacter{Index: 2}, nil)

	s.update(combat.RemoveCharacter{ID: "pc_1"}, nil)

	s.Equal([]string{"B", "C"}, s.labels())
	active, ok := s.model.Active()
	s.True(ok)
	s.Equal("C", active.Label)

	_, err := combat.Update(s.model, combat.RemoveCharacter{ID: "pc_1"}, nil)
	s.True(errors.IsNotFound(err))
}

func (s *ModelTestSuite) TestCombatMessages() {
	s.update(combat.AddNPC{ID: "npc_1", KindLabel: "Ogre", Options: combat.NPCOptions{HitPoints: intPtr(59)}}, dice.NewScriptedRoller(10))

	s.update(combat.ExecuteAttack{CharacterID: "npc_1", AttackIndex: 0}, dice.NewScriptedRoller(17, 5, 6))
	c, ok := s.model.Character("npc_1")
	s.Require().True(ok)
	s.Require().NotNil(c.NPC.Hits[0])
	s.Equal(23, c.NPC.Hits[0].ToHit.Value())
	s.Equal(15, c.NPC.Hits[0].TotalDamage())

	s.update(combat.UpdateHitPoints{CharacterID: "npc_1", Delta: -60}, nil)
	c, _ = s.model.Character("npc_1")
	s.True(c.IsDead())

	s.update(combat.RollSavingThrow{CharacterID: "npc_1", Category: combat.SaveFortitude}, dice.NewScriptedRoller(9))
	c, _ = s.model.Character("npc_1")
	s.Equal(15, c.NPC.Saves[combat.SaveFortitude].Value())

	_, err := combat.Update(s.model, combat.ExecuteAttack{CharacterID: "npc_1", AttackIndex: 3}, nil)
	s.True(errors.IsNotFound(err))
	_, err = combat.Update(s.model, combat.UpdateHitPoints{CharacterID: "nobody", Delta: 1}, nil)
	s.True(errors.IsNotFound(err))
}

func (s *ModelTestSuite) TestRerollInitiative_All() {
	s.update(combat.AddPC{ID: "pc_1", Label: "Tordek", Initiative: 14}, nil)
	s.update(combat.AddNPC{ID: "npc_1", KindLabel: "Goblin"}, dice.NewScriptedRoller(3, 3, 2))
	s.Equal([]string{"Tordek", "Goblin"}, s.labels())

	s.update(combat.RerollInitiative{}, dice.NewScriptedRoller(20))

	s.Equal([]string{"Goblin", "Tordek"}, s.labels())
	pc, _ := s.model.Character("pc_1")
	s.Equal(14, pc.Initiative.Value(combat.InitiativeRoll))
}

func (s *ModelTestSuite) TestTurnOrder() {
	s.update(combat.AddPC{ID: "pc_1", Label: "A", Initiative: 20}, nil)
	s.update(combat.AddPC{ID: "pc_2", Label: "B", Initiative: 10}, nil)

	s.update(combat.NextCharacter{}, nil)
	s.Equal(1, s.model.ActiveCharacter)
	s.update(combat.NextCharacter{}, nil)
	s.Equal(0, s.model.ActiveCharacter)

	_, err := combat.Update(s.model, combat.SelectCharacter{Index: 2}, nil)
	s.True(errors.IsOutOfRange(err))
}

func (s *ModelTestSuite) TestActiveCharacterFollowsResort() {
	s.update(combat.AddPC{ID: "pc_1", Label: "A", Initiative: 20}, nil)
	s.update(combat.AddPC{ID: "pc_2", Label: "B", Initiative: 10}, nil)
	s.update(combat.SelectCharacter{Index: 1}, nil)

	s.update(combat.AddPC{ID: "pc_3", Label: "C", Initiative: 25}, nil)
	s.Equal([]string{"C", "A", "B"}, s.labels())
	active, ok := s.model.Active()
	s.Require().True(ok)
	s.Equal("B", active.Label)
	s.Equal(2, s.model.ActiveCharacter)

	s.update(combat.AddNPC{ID: "npc_1", KindLabel: "Goblin"}, dice.NewScriptedRoller(3, 3, 1))
	s.update(combat.SelectCharacter{Index: 3}, nil)
	active, _ = s.model.Active()
	s.Require().Equal("npc_1", active.ID)

	s.update(combat.RerollInitiative{CharacterID: "npc_1"}, dice.NewScriptedRoller(20))
	// 20+2 puts the goblin between C and A
	s.Equal([]string{"C", "Goblin", "A", "B"}, s.labels())
	s.Equal(1, s.model.ActiveCharacter)
	active, _ = s.model.Active()
	s.Equal("npc_1", active.ID)
}

func (s *ModelTestSuite) TestRemoveActiveCharacter_PassesTurn() {
	s.update(combat.AddPC{ID: "pc_1", Label: "A", Initiative: 20}, nil)
	s.update(combat.AddPC{ID: "pc_2", Label: "B", Initiative: 15}, nil)
	s.update(combat.AddPC{ID: "pc_3", Label: "C", Initiative: 10}, nil)
	s.update(combat.SelectCharacter{Index: 1}, nil)

	s.update(combat.RemoveCharacter{ID: "pc_2"}, nil)

	active, ok := s.model.Active()
	s.Require().True(ok)
	s.Equal("C", active.Label)
}

func (s *ModelTestSuite) TestSelectTab() {
	s.update(combat.SelectTab{Tab: combat.TabKinds}, nil)
	s.Equal(combat.TabKinds, s.model.ActiveTab)

	_, err := combat.Update(s.model, combat.SelectTab{Tab: "maps"}, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ModelTestSuite) TestUpdateLeavesInputUntouched() {
	s.update(combat.AddNPC{ID: "npc_1", KindLabel: "Goblin", Options: combat.NPCOptions{HitPoints: intPtr(7)}}, dice.NewScriptedRoller(10))
	before := s.model

	after, err := combat.Update(before, combat.UpdateHitPoints{CharacterID: "npc_1", Delta: -3}, nil)
	s.Require().NoError(err)

	c, _ := before.Character("npc_1")
	s.Equal(7, c.NPC.CurrentHitPoints)
	c, _ = after.Character("npc_1")
	s.Equal(4, c.NPC.CurrentHitPoints)
}

func (s *ModelTestSuite) TestUpdate_NilMessage() {
	_, err := combat.Update(s.model, nil, nil)
	s.True(errors.IsInvalidArgument(err))
}

func TestModelTestSuite(t *testing.T) {
	suite.Run(t, new(ModelTestSuite))
}
