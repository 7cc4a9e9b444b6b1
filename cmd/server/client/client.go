// Package client provides commands that talk to a running tabletop API
package client

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tabletop/internal/clients/gridapi"
	"github.com/KirkDiggler/rpg-tabletop/internal/config"
)

// ConfigLoader returns the application configuration
type ConfigLoader func() (config.Config, error)

type options struct {
	load      ConfigLoader
	serverURL string
	timeout   time.Duration

	// newClient is replaced in tests
	newClient func(cfg *gridapi.Config) (gridapi.Client, error)
}

// NewClientCmd builds the root command for all client commands
func NewClientCmd(load ConfigLoader) *cobra.Command {
	opts := &options{load: load, newClient: gridapi.New}
	return newClientCmd(opts)
}

func newClientCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Client commands for the tabletop API",
		Long:  `Client commands exercise a running API by making real HTTP requests.`,
	}

	cmd.PersistentFlags().StringVar(&opts.serverURL, "server", "", "API base URL, overrides client.base_url")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "request timeout, overrides client.timeout")

	cmd.AddCommand(newGridCmd(opts))
	cmd.AddCommand(newRollCmd(opts))
	cmd.AddCommand(newSessionCmd(opts))
	cmd.AddCommand(newClearSessionCmd(opts))

	return cmd
}

// client builds an API client from the config file, env and flags
func (o *options) client() (gridapi.Client, time.Duration, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, 0, err
	}
	if o.serverURL != "" {
		cfg.Client.BaseURL = o.serverURL
	}
	if o.timeout > 0 {
		cfg.Client.Timeout = o.timeout
	}

	c, err := o.newClient(&gridapi.Config{
		BaseURL: cfg.Client.BaseURL,
		Timeout: cfg.Client.Timeout,
	})
	if err != nil {
		return nil, 0, err
	}
	return c, cfg.Client.Timeout, nil
}

// withTimeout runs fn with a client and a context bounded by the timeout
func withTimeout(cmd *cobra.Command, opts *options, fn func(context.Context, gridapi.Client) error) error {
	c, timeout, err := opts.client()
	if err != nil {
		return err
	}
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx := parent
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, timeout)
		defer cancel()
	}
	return fn(ctx, c)
}
