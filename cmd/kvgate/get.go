package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/kvgate"
	"github.com/sagarc03/kvgate/config"
)

var getCmd = &cobra.Command{
	Use:   "get <request-path>",
	Short: "Look up a request path without starting the server",
	Long: `Resolve a request path against the configured routes and print the value
the server would return, using the same key extraction and store access.

Examples:
  # Look up key "42" in the global store
  kvgate get --store-path images.db /images/42

  # Show what a configured route would serve
  kvgate get --config config.yaml /images/thumbs/42`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	routes, err := cfg.ResolveRoutes()
	if err != nil {
		return fmt.Errorf("resolve routes: %w", err)
	}

	rawPath := args[0]
	route, ok := matchRoute(routes, rawPath)
	if !ok {
		return fmt.Errorf("no route serves %s", rawPath)
	}

	gateway, err := newGateway(cfg)
	if err != nil {
		return fmt.Errorf("create gateway: %w", err)
	}

	obj, err := gateway.Get(cmd.Context(), route.Config, rawPath)
	if errors.Is(err, kvgate.ErrNotFound) {
		return fmt.Errorf("%s: not found", rawPath)
	}
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(obj.Body)
	return err
}
