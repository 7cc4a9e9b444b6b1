package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tabletop/internal/clients/gridapi"
)

func newRollCmd(opts *options) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "roll <notation> <entity-id> <context>",
		Short: "Roll dice on the server and add them to a session",
		Long: `Roll dice on the server and see individual results. Examples:

  roll 1d20+5 char-123 attack
  roll 2d6 char-456 damage --description "greatsword"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTimeout(cmd, opts, func(ctx context.Context, api gridapi.Client) error {
				resp, err := api.RollDice(ctx, &gridapi.RollDiceRequest{
					Notation:    args[0],
					EntityID:    args[1],
					Context:     args[2],
					Description: description,
				})
				if err != nil {
					return fmt.Errorf("failed to roll dice: %w", err)
				}

				out := cmd.OutOrStdout()
				roll := resp.Roll
				_, _ = fmt.Fprintf(out, "%s: %v %+d = %d\n", roll.Notation, roll.Dice, roll.Modifier, roll.Total)
				_, _ = fmt.Fprintf(out, "roll id: %s\n", roll.RollID)
				_, _ = fmt.Fprintf(out, "rolls in session: %d, expires at %s\n",
					len(resp.Session.Rolls), resp.Session.ExpiresAt.Format("15:04:05"))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "what the roll is for")

	return cmd
}

func newSessionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "session <entity-id> <context>",
		Short: "Show the rolls of a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTimeout(cmd, opts, func(ctx context.Context, api gridapi.Client) error {
				session, err := api.GetRollSession(ctx, args[0], args[1])
				if err != nil {
					return fmt.Errorf("failed to get roll session: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), session)
			})
		},
	}
}

func newClearSessionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-session <entity-id> <context>",
		Short: "Delete a roll session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTimeout(cmd, opts, func(ctx context.Context, api gridapi.Client) error {
				deleted, err := api.ClearRollSession(ctx, args[0], args[1])
				if err != nil {
					return fmt.Errorf("failed to clear roll session: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d roll(s)\n", deleted)
				return nil
			})
		},
	}
}
