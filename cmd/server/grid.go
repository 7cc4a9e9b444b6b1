package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tabletop/internal/clients/gridapi"
	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/battlemap"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/gamegrids"
)

func newGridCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Inspect and edit battle map grids",
		Long: `Grid commands work on descriptors (30x20:<background>:<tokens>:<walls>) and
routes (edit:<id>, view:<id> or an inline descriptor). Edits are saved to the
local library configured under storage.`,
	}

	cmd.AddCommand(
		newGridDecodeCmd(),
		newGridEncodeBlankCmd(),
		newGridResizeCmd(),
		newGridRouteCmd(),
		newGridLibraryCmd(),
		newGridOpenCmd(),
		newGridPlaceCmd(),
		newGridMoveCmd(),
		newGridPaintCmd(),
		newGridShareCmd(),
	)

	return cmd
}

func newGridDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <descriptor>",
		Short: "Print the contents of a descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grid.Parse(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printGridSummary(out, g)
			renderGrid(out, g)
			return nil
		},
	}
}

func newGridEncodeBlankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode-blank <cols> <rows>",
		Short: "Print the descriptor of an empty grid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, rows, err := parseSize(args[0], args[1])
			if err != nil {
				return err
			}
			g, err := grid.New(cols, rows)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), g.Descriptor())
			return nil
		},
	}
}

func newGridResizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resize <descriptor> <cols> <rows>",
		Short: "Resize a descriptor, keeping whatever still fits",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grid.Parse(args[0])
			if err != nil {
				return err
			}
			cols, rows, err := parseSize(args[1], args[2])
			if err != nil {
				return err
			}
			resized, err := g.Resize(cols, rows)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), resized.Descriptor())
			return nil
		},
	}
}

func newGridRouteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route <route>",
		Short: "Parse a route and print its canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := grid.ParseRoute(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "kind: %s\n", route.Kind)
			if route.Kind == grid.RouteDescriptor {
				g, err := grid.Parse(route.Descriptor)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "size: %dx%d\n", g.Cols(), g.Rows())
				_, _ = fmt.Fprintf(out, "route: %s\n", grid.DescriptorRoute(g))
				return nil
			}
			_, _ = fmt.Fprintf(out, "id: %s\n", route.ID)
			_, _ = fmt.Fprintf(out, "route: %s\n", route)
			return nil
		},
	}
}

func newGridLibraryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "library",
		Short: "List the grids of the local library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEditor(cmd.Context(), false, func(ctx context.Context, editor battlemap.Service) error {
				lib, err := editor.Library(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(lib.Grids) == 0 {
					_, _ = fmt.Fprintln(out, "library is empty")
					return nil
				}
				for _, g := range lib.Grids {
					_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
						grid.EditRoute(g.ID), g.Label,
						g.LastModified.Format("2006-01-02 15:04"),
						fmt.Sprintf("%dx%d", g.Cols(), g.Rows()))
				}
				return nil
			})
		},
	}
}

func newGridOpenCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "open [route]",
		Short: "Open a route the way the editor would and render it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route := ""
			if len(args) == 1 {
				route = args[0]
			}
			return withEditor(cmd.Context(), remote, func(ctx context.Context, editor battlemap.Service) error {
				opened, err := editor.Open(ctx, &battlemap.OpenInput{Route: route})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if opened.Fallback {
					_, _ = fmt.Fprintf(out, "could not open %q, showing a blank grid\n", route)
				}
				if opened.ReadOnly {
					_, _ = fmt.Fprintln(out, "read-only")
				}
				printGridSummary(out, opened.Grid)
				renderGrid(out, opened.Grid)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "resolve view routes against the API")

	return cmd
}

// editCommand opens route, applies the edit built from the remaining args
// and prints where the result can be reopened
func editCommand(use, short string, nargs int, build func(args []string) (battlemap.Edit, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs + 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit, err := build(args[1:])
			if err != nil {
				return err
			}
			return withEditor(cmd.Context(), false, func(ctx context.Context, editor battlemap.Service) error {
				opened, err := editor.Open(ctx, &battlemap.OpenInput{Route: args[0]})
				if err != nil {
					return err
				}
				if opened.Fallback {
					return errors.InvalidArgumentf("cannot open route %q", args[0])
				}
				applied, err := editor.Apply(ctx, &battlemap.ApplyInput{Edit: edit})
				if err != nil {
					return err
				}
				printEditResult(cmd.OutOrStdout(), applied)
				return nil
			})
		},
	}
}

func newGridPlaceCmd() *cobra.Command {
	return editCommand("place <route> <col> <row> <token>", "Place a token such as pb (blue pawn)", 3,
		func(args []string) (battlemap.Edit, error) {
			col, row, err := parseCell(args[0], args[1])
			if err != nil {
				return nil, err
			}
			token, err := grid.ParseToken(args[2])
			if err != nil {
				return nil, err
			}
			return battlemap.PlaceToken{Col: col, Row: row, Token: token}, nil
		})
}

func newGridMoveCmd() *cobra.Command {
	return editCommand("move <route> <from-col> <from-row> <to-col> <to-row>", "Move a token", 4,
		func(args []string) (battlemap.Edit, error) {
			fromCol, fromRow, err := parseCell(args[0], args[1])
			if err != nil {
				return nil, err
			}
			toCol, toRow, err := parseCell(args[2], args[3])
			if err != nil {
				return nil, err
			}
			return battlemap.MoveToken{FromCol: fromCol, FromRow: fromRow, ToCol: toCol, ToRow: toRow}, nil
		})
}

func newGridPaintCmd() *cobra.Command {
	return editCommand("paint <route> <col> <row> <color>", "Paint a cell background such as g (green)", 3,
		func(args []string) (battlemap.Edit, error) {
			col, row, err := parseCell(args[0], args[1])
			if err != nil {
				return nil, err
			}
			color, err := grid.ParseColor(args[2])
			if err != nil {
				return nil, err
			}
			return battlemap.PaintBackground{Col: col, Row: row, Color: color}, nil
		})
}

func newGridShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <route>",
		Short: "Push a grid to the API and print the view route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEditor(cmd.Context(), true, func(ctx context.Context, editor battlemap.Service) error {
				opened, err := editor.Open(ctx, &battlemap.OpenInput{Route: args[0]})
				if err != nil {
					return err
				}
				if opened.Fallback {
					return errors.InvalidArgumentf("cannot open route %q", args[0])
				}
				shared, err := editor.Share(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "shared %q as %s\n", shared.Grid.Label, shared.Route)
				return nil
			})
		},
	}
}

// openEditor builds the editor service; tests replace it
var openEditor = openLocalEditor

// openLocalEditor builds an editor on the local library, optionally talking
// to the configured API. The returned func releases the library.
func openLocalEditor(ctx context.Context, remote bool) (battlemap.Service, func(), error) {
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

	library, err := gamegrids.NewLocal(&gamegrids.Config{
		Store:       store,
		IDGenerator: idgen.NewUUID(idgen.PrefixGrid),
		Clock:       clock.New(),
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	editorCfg := &battlemap.Config{
		Library: library,
		Logger:  logger.Named("battlemap"),
		Roller:  roller,
	}
	if remote {
		client, err := gridapi.New(&gridapi.Config{
			BaseURL: cfg.Client.BaseURL,
			Timeout: cfg.Client.Timeout,
		})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		editorCfg.Remote = client
	}

	editor, err := battlemap.NewOrchestrator(editorCfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return editor, cleanup, nil
}

func withEditor(ctx context.Context, remote bool, fn func(context.Context, battlemap.Service) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	editor, release, err := openEditor(ctx, remote)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx, editor)
}

func printEditResult(w io.Writer, applied *battlemap.ApplyOutput) {
	if applied.Saved {
		_, _ = fmt.Fprintf(w, "saved as %s\n", grid.EditRoute(applied.Grid.ID))
		return
	}
	_, _ = fmt.Fprintf(w, "grid is empty, not saved: %s\n", grid.DescriptorRoute(applied.Grid))
}

func printGridSummary(w io.Writer, g grid.GameGrid) {
	var tokens, walls, painted int
	for _, c := range g.Cells() {
		if !c.Token.IsZero() {
			tokens++
		}
		if !c.LeftWall.IsZero() {
			walls++
		}
		if !c.TopWall.IsZero() {
			walls++
		}
		if c.Background != "" {
			painted++
		}
	}
	if g.Label != "" {
		_, _ = fmt.Fprintf(w, "label: %s\n", g.Label)
	}
	_, _ = fmt.Fprintf(w, "size: %dx%d\n", g.Cols(), g.Rows())
	_, _ = fmt.Fprintf(w, "tokens: %d, walls: %d, painted cells: %d\n", tokens, walls, painted)
}

// renderGrid draws one line per row, two characters per cell: the token
// code, else the background code, else "."
func renderGrid(w io.Writer, g grid.GameGrid) {
	var b strings.Builder
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if t, ok := g.TokenAt(col, row); ok {
				b.WriteString(t.Code())
			} else if c, ok := g.BackgroundAt(col, row); ok {
				b.WriteString(c.Code() + " ")
			} else {
				b.WriteString(". ")
			}
		}
		b.WriteString("\n")
	}
	_, _ = io.WriteString(w, b.String())
}

func parseSize(colsText, rowsText string) (int, int, error) {
	cols, err := strconv.Atoi(colsText)
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("cols %q is not a number", colsText)
	}
	rows, err := strconv.Atoi(rowsText)
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("rows %q is not a number", rowsText)
	}
	return cols, rows, nil
}

func parseCell(colText, rowText string) (int, int, error) {
	col, err := strconv.Atoi(colText)
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("col %q is not a number", colText)
	}
	row, err := strconv.Atoi(rowText)
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("row %q is not a number", rowText)
	}
	return col, row, nil
}
