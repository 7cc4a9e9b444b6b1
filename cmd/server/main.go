// Package main is the entry point for the tabletop server and CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tabletop/cmd/server/client"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rpg-tabletop",
		Short: "Tabletop toolset: dice, encounter tracker and battle maps",
		Long: `rpg-tabletop rolls dice, tracks encounters and edits battle map grids locally,
and serves shared grids and dice sessions over HTTP.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newServerCmd())
	root.AddCommand(newRollCmd())
	root.AddCommand(newGridCmd())
	root.AddCommand(newTrackerCmd())
	root.AddCommand(client.NewClientCmd(loadConfig))

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
