package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tabletop/internal/clients/gridapi"
	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

func newGridCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Shared grid commands",
	}

	cmd.AddCommand(
		newGridCreateCmd(opts),
		newGridGetCmd(opts),
		newGridListCmd(opts),
		newGridUpdateCmd(opts),
		newGridSubscribeCmd(opts),
	)

	return cmd
}

func newGridCreateCmd(opts *options) *cobra.Command {
	var label, descriptor string

	cmd := &cobra.Command{
		Use:   "create --label <label> --descriptor <descriptor>",
		Short: "Share a new grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateGrid(descriptor); err != nil {
				return err
			}
			return withTimeout(cmd, opts, func(ctx context.Context, api gridapi.Client) error {
				created, err := api.Create(ctx, grid.DTO{Label: label, Descriptor: descriptor})
				if err != nil {
					return fmt.Errorf("failed to create grid: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), created)
			})
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "grid label")
	cmd.Flags().StringVar(&descriptor, "descriptor", "", "grid descriptor")
	_ = cmd.MarkFlagRequired("descriptor")

	return cmd
}

func newGridUpdateCmd(opts *options) *cobra.Command {
	var label, descriptor string

	cmd := &cobra.Command{
		Use:   "update <id> --label <label> --descriptor <descriptor>",
		Short: "Replace a shared grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateGrid(descriptor); err != nil {
				return err
			}
			return withTimeout(cmd, opts, func(ctx context.Context, api gridapi.Client) error {
				updated, err := api.Update(ctx, args[0], grid.DTO{Label: label, Descriptor: descriptor})
				if err != nil {
					return fmt.Errorf("failed to update grid: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), updated)
			})
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "grid label")
	cmd.Flags().StringVar(&descriptor, "descriptor", "", "grid descriptor")
	_ = cmd.MarkFlagRequired("descriptor")

	return cmd
}

func newGridGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a shared grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTimeout(cmd, opts, func(ctx context.Context, api gridapi.Client) error {
				got, err := api.Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get grid: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), got)
			})
		},
	}
}

func newGridListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List shared grids, most recently modified first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withTimeout(cmd, opts, func(ctx context.Context, api gridapi.Client) error {
				grids, err := api.List(ctx)
				if err != nil {
					return fmt.Errorf("failed to list grids: %w", err)
				}
				out := cmd.OutOrStdout()
				for _, g := range grids {
					modified := ""
					if g.LastModified != nil {
						modified = g.LastModified.Format("2006-01-02 15:04")
					}
					_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", g.ID, g.Label, modified)
				}
				_, _ = fmt.Fprintf(out, "%d grid(s)\n", len(grids))
				return nil
			})
		},
	}
}

func newGridSubscribeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <id>",
		Short: "Print every snapshot of a shared grid until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := opts.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			grids, errs := c.Subscribe(ctx, args[0])
			out := cmd.OutOrStdout()
			for g := range grids {
				if err := printJSON(out, g); err != nil {
					return err
				}
			}
			if err, ok := <-errs; ok && err != nil {
				return fmt.Errorf("subscription ended: %w", err)
			}
			return nil
		},
	}
}

func validateGrid(descriptor string) error {
	if _, err := grid.Parse(descriptor); err != nil {
		return errors.Wrap(err, "invalid descriptor")
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
