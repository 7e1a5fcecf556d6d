package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/kvgate/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "kvgate",
	Short:   "Read-only HTTP gateway for bbolt key-value stores",
	Long: `kvgate serves values from embedded bbolt stores over HTTP.

The last segment of the request path is looked up as a key in the store
configured for the matching route, and the value is returned as the
response body.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file paths, merged left to right (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("store-path", "", "store file for the global scope (env: KVGATE_STORE_STORE_PATH)")
	rootCmd.PersistentFlags().String("content-type", "", "content type for the global scope (default: application/octet-stream)")
	rootCmd.PersistentFlags().String("bucket", "", "bucket for the global scope (default: default)")
	rootCmd.PersistentFlags().Duration("lock-timeout", 0, "maximum wait for the store file lock (default: 100ms)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: debug in dev, info in prod, env: KVGATE_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
