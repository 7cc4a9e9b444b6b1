package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tabletop/internal/dice"
)

// roller is swapped for a scripted one in tests
var roller = dice.DefaultRoller

func newRollCmd() *cobra.Command {
	var times int

	cmd := &cobra.Command{
		Use:   "roll <expression>...",
		Short: "Roll dice expressions locally",
		Long: `Roll one or more dice expressions and print every die. Examples:

  roll 1d20+5
  roll 2d6 "1 D 8 - 1"
  roll --times 6 4d6`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if times < 1 {
				return fmt.Errorf("--times must be at least 1")
			}
			exprs := make([]dice.Roll, 0, len(args))
			for _, arg := range args {
				expr, err := dice.Parse(arg)
				if err != nil {
					return err
				}
				exprs = append(exprs, expr)
			}

			out := cmd.OutOrStdout()
			for i := 0; i < times; i++ {
				for _, expr := range exprs {
					printRoll(out, expr, roller)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&times, "times", 1, "how often to roll each expression")

	return cmd
}

// printRoll writes "2d6+3: 4 5 +3 = 12"
func printRoll(w io.Writer, expr dice.Roll, r dice.Roller) {
	faces := expr.Dice.RollEach(r)
	parts := make([]string, 0, len(faces)+1)
	total := expr.Modifier
	for _, f := range faces {
		parts = append(parts, strconv.Itoa(f))
		total += f
	}
	if expr.Modifier != 0 || len(faces) == 0 {
		parts = append(parts, fmt.Sprintf("%+d", expr.Modifier))
	}
	_, _ = fmt.Fprintf(w, "%s: %s = %d\n", expr, strings.Join(parts, " "), total)
}
