package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/combat"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/tracker"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/characters"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/kinds"
)

func newTrackerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Run the encounter tracker against the local library",
		Long: `Tracker commands load kinds and characters from the local library, apply one
change and write the result back.`,
	}

	cmd.AddCommand(
		newTrackerKindsCmd(),
		newTrackerAddKindCmd(),
		newTrackerRemoveKindCmd(),
		newTrackerAddPCCmd(),
		newTrackerAddNPCCmd(),
		newTrackerAttackCmd(),
		newTrackerDamageCmd(),
		newTrackerSaveCmd(),
		newTrackerRerollCmd(),
		newTrackerListCmd(),
		newTrackerRemoveCmd(),
	)

	return cmd
}

// openTracker builds the tracker service; tests replace it
var openTracker = openLocalTracker

// openLocalTracker builds a tracker on the local library. The returned func
// releases the library.
func openLocalTracker(ctx context.Context) (tracker.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	store, release, err := openLocalStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		release()
		_ = logger.Sync()
	}

	kindRepo, err := kinds.NewLocal(&kinds.Config{Store: store})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	characterRepo, err := characters.NewLocal(&characters.Config{Store: store})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	svc, err := tracker.NewOrchestrator(&tracker.Config{
		KindRepo:      kindRepo,
		CharacterRepo: characterRepo,
		IDGenerator:   idgen.NewUUID(idgen.PrefixCharacter),
		Logger:        logger.Named("tracker"),
		Roller:        roller,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// withTracker loads the tracker from the library before calling fn
func withTracker(ctx context.Context, fn func(context.Context, tracker.Service) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	svc, release, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer release()

	if _, err := svc.Load(ctx); err != nil {
		return err
	}
	return fn(ctx, svc)
}

// dispatchCommand applies the message built from args and prints the result
func dispatchCommand(cmd *cobra.Command, msg combat.Message, print func(io.Writer, combat.Model)) error {
	return withTracker(cmd.Context(), func(ctx context.Context, svc tracker.Service) error {
		out, err := svc.Dispatch(ctx, &tracker.DispatchInput{Message: msg})
		if err != nil {
			return err
		}
		print(cmd.OutOrStdout(), out.Model)
		return nil
	})
}

func newTrackerKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the known kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withTracker(cmd.Context(), func(_ context.Context, svc tracker.Service) error {
				printKinds(cmd.OutOrStdout(), svc.Model())
				return nil
			})
		},
	}
}

func newTrackerAddKindCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "add-kind --file <kind.json>",
		Short: "Add a kind from a JSON document",
		Long: `Add a kind from a JSON document, "-" reads standard input. Example:

  {"label":"Goblin","armorClass":15,"speed":30,"hitDie":"2d6","initiative":2,
   "saves":{"set":"abilities","modifiers":{"dex":2}},
   "attacks":[{"label":"Scimitar","toHit":4,"damage":[{"roll":"1d6+2","type":"slashing"}]}]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := readKind(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return dispatchCommand(cmd, combat.AddKind{Kind: kind}, printKinds)
		},
	}

	cmd.Flags().StringVar(&file, "file", "-", "kind document, - for stdin")

	return cmd
}

func readKind(stdin io.Reader, file string) (combat.Kind, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return combat.Kind{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read kind")
	}

	var dto kinds.KindDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return combat.Kind{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode kind")
	}
	return kinds.FromDTO(dto)
}

func newTrackerRemoveKindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-kind <label>",
		Short: "Remove a kind; existing NPCs keep theirs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchCommand(cmd, combat.RemoveKind{Label: args[0]}, printKinds)
		},
	}
}

func newTrackerAddPCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-pc <label> <initiative>",
		Short: "Add a player character with the initiative they rolled",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ini, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.InvalidArgumentf("initiative %q is not a number", args[1])
			}
			return dispatchCommand(cmd, combat.AddPC{Label: args[0], Initiative: ini}, printCharacters)
		},
	}
}

func newTrackerAddNPCCmd() *cobra.Command {
	var (
		label      string
		hitPoints  int
		initiative int
	)

	cmd := &cobra.Command{
		Use:   "add-npc <kind>",
		Short: "Add an NPC of a kind, rolling hit points and initiative",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := combat.NPCOptions{Label: label}
			if cmd.Flags().Changed("hp") {
				opts.HitPoints = &hitPoints
			}
			if cmd.Flags().Changed("initiative") {
				ini := combat.FixedInitiative(initiative)
				opts.Initiative = &ini
			}
			return dispatchCommand(cmd, combat.AddNPC{KindLabel: args[0], Options: opts}, printCharacters)
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "label, defaults to the kind's")
	cmd.Flags().IntVar(&hitPoints, "hp", 0, "hit points instead of rolling the hit die")
	cmd.Flags().IntVar(&initiative, "initiative", 0, "initiative instead of rolling it")

	return cmd
}

func newTrackerAttackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attack <character-id> <attack-index>",
		Short: "Roll an attack of an NPC",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.InvalidArgumentf("attack index %q is not a number", args[1])
			}
			return dispatchCommand(cmd, combat.ExecuteAttack{CharacterID: args[0], AttackIndex: index},
				func(w io.Writer, m combat.Model) {
					c, _ := m.Character(args[0])
					printHit(w, c, index)
				})
		},
	}
}

func newTrackerDamageCmd() *cobra.Command {
	var heal bool

	cmd := &cobra.Command{
		Use:   "damage <character-id> <amount>",
		Short: "Apply damage to an NPC, or healing with --heal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.InvalidArgumentf("amount %q is not a number", args[1])
			}
			delta := -amount
			if heal {
				delta = amount
			}
			return dispatchCommand(cmd, combat.UpdateHitPoints{CharacterID: args[0], Delta: delta}, printCharacters)
		},
	}

	cmd.Flags().BoolVar(&heal, "heal", false, "heal instead of damage")

	return cmd
}

func newTrackerSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <character-id> <category>",
		Short: "Roll a saving throw such as dex or will",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := combat.SaveCategory(strings.ToLower(args[1]))
			return dispatchCommand(cmd, combat.RollSavingThrow{CharacterID: args[0], Category: category},
				func(w io.Writer, m combat.Model) {
					c, _ := m.Character(args[0])
					if c.NPC == nil {
						return
					}
					if r, ok := c.NPC.Saves[category]; ok {
						_, _ = fmt.Fprintf(w, "%s %s save: %d (d20 %d %+d)\n",
							c.Label, category, r.Value(), r.DieResult, r.Modifier)
					}
				})
		},
	}
}

func newTrackerRerollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reroll [character-id]",
		Short: "Reroll initiative of one NPC or of all NPCs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := combat.RerollInitiative{}
			if len(args) == 1 {
				msg.CharacterID = args[0]
			}
			return dispatchCommand(cmd, msg, printCharacters)
		},
	}
}

func newTrackerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List characters in initiative order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withTracker(cmd.Context(), func(_ context.Context, svc tracker.Service) error {
				printCharacters(cmd.OutOrStdout(), svc.Model())
				return nil
			})
		},
	}
}

func newTrackerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <character-id>",
		Short: "Remove a character from the encounter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchCommand(cmd, combat.RemoveCharacter{ID: args[0]}, printCharacters)
		},
	}
}

func printKinds(w io.Writer, m combat.Model) {
	if len(m.Kinds) == 0 {
		_, _ = fmt.Fprintln(w, "no kinds")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "LABEL\tAC\tHP\tINIT\tATTACKS")
	for _, k := range m.Kinds {
		attacks := make([]string, 0, len(k.Attacks))
		for i, a := range k.Attacks {
			attacks = append(attacks, fmt.Sprintf("#%d %s %+d", i, a.Label, a.ToHit))
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%+d\t%s\n",
			k.Label, k.ArmorClass, k.HitDie, k.Initiative, strings.Join(attacks, ", "))
	}
	_ = tw.Flush()
}

func printCharacters(w io.Writer, m combat.Model) {
	if len(m.Characters) == 0 {
		_, _ = fmt.Fprintln(w, "no characters")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, " \tID\tLABEL\tINIT\tHP")
	for i, c := range m.Characters {
		marker := " "
		if i == m.ActiveCharacter {
			marker = ">"
		}
		hp := "-"
		if c.NPC != nil {
			hp = fmt.Sprintf("%d/%d", c.NPC.CurrentHitPoints, c.NPC.MaxHitPoints)
			if c.IsDead() {
				hp += " dead"
			}
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			marker, c.ID, c.Label, c.Initiative.Value(m.InitiativeKind), hp)
	}
	_ = tw.Flush()
}

func printHit(w io.Writer, c combat.Character, index int) {
	if c.NPC == nil || index < 0 || index >= len(c.NPC.Hits) || c.NPC.Hits[index] == nil {
		return
	}
	hit := c.NPC.Hits[index]
	attack := c.NPC.Kind.Attacks[index]

	note := ""
	switch {
	case hit.Critical():
		note = " critical"
	case hit.Fumble():
		note = " fumble"
	}
	_, _ = fmt.Fprintf(w, "%s %s: to hit %d%s\n", c.Label, attack.Label, hit.ToHit.Value(), note)
	for _, d := range hit.Damage {
		_, _ = fmt.Fprintf(w, "  %s %s: %d\n", d.Damage.Roll, d.Damage.Type, d.Result.Value())
	}
	_, _ = fmt.Fprintf(w, "  total damage: %d\n", hit.TotalDamage())
}
