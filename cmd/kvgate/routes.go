package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagarc03/kvgate"
	"github.com/sagarc03/kvgate/config"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the resolved route table",
	Long: `Print every served route with its fully merged settings, after
inheritance from enclosing scopes and defaults have been applied.`,
	Args: cobra.NoArgs,
	RunE: runRoutes,
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func runRoutes(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	routes, err := cfg.ResolveRoutes()
	if err != nil {
		return fmt.Errorf("resolve routes: %w", err)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(struct {
		Routes []kvgate.Route `yaml:"routes"`
	}{routes})
}

// matchRoute returns the route with the longest pattern that serves rawPath,
// mirroring how the router picks between nested prefixes.
func matchRoute(routes []kvgate.Route, rawPath string) (kvgate.Route, bool) {
	var (
		best  kvgate.Route
		found bool
	)
	for _, r := range routes {
		if !servesPath(r.Pattern, rawPath) {
			continue
		}
		if !found || len(r.Pattern) > len(best.Pattern) {
			best, found = r, true
		}
	}
	return best, found
}

func servesPath(pattern, rawPath string) bool {
	if pattern == "/" {
		return strings.HasPrefix(rawPath, "/")
	}
	return rawPath == pattern || strings.HasPrefix(rawPath, pattern+"/")
}
