package main

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagarc03/kvgate"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file interactively",
	Long: `Write a starter config file.

You will be prompted for:
  - Server port
  - Store file for the global scope
  - Content type served for found keys
  - Bucket holding the keys

The file is written to ./config.yaml unless --output is given.`,
	Args: cobra.NoArgs,
	// init must work even when an existing config file does not load.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runInit,
}

var initOutput string

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "config.yaml", "path of the config file to write")

	rootCmd.AddCommand(initCmd)
}

type starterServer struct {
	Port          int `yaml:"port"`
	MaxPathLength int `yaml:"max_path_length"`
}

type starterStore struct {
	kvgate.RouteSettings `yaml:",inline"`
	LockTimeout          string `yaml:"lock_timeout"`
}

type starterLog struct {
	Level string `yaml:"level"`
}

type starterConfig struct {
	Env    string        `yaml:"env"`
	Server starterServer `yaml:"server"`
	Store  starterStore  `yaml:"store"`
	Log    starterLog    `yaml:"log"`
}

func runInit(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(initOutput); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("'%s' already exists. Overwrite it", initOutput),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: "5708",
		Validate: func(input string) error {
			port, err := strconv.Atoi(input)
			if err != nil || port < 1 || port > 65535 {
				return errors.New("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portVal, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	storePrompt := promptui.Prompt{
		Label: "Store file",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("store file is required")
			}
			return nil
		},
	}
	storePath, err := storePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	contentTypePrompt := promptui.Prompt{
		Label:   "Content type",
		Default: kvgate.DefaultContentType,
		Validate: func(input string) error {
			if _, _, parseErr := mime.ParseMediaType(input); parseErr != nil {
				return fmt.Errorf("invalid content type: %w", parseErr)
			}
			return nil
		},
	}
	contentType, err := contentTypePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	bucketPrompt := promptui.Prompt{
		Label:   "Bucket",
		Default: kvgate.DefaultBucket,
	}
	bucket, err := bucketPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	if _, statErr := os.Stat(storePath); statErr != nil {
		fmt.Printf("Warning: store file %s is not readable yet: %v\n", storePath, statErr)
	}

	port, _ := strconv.Atoi(portVal)
	cfg := starterConfig{
		Env: "dev",
		Server: starterServer{
			Port:          port,
			MaxPathLength: kvgate.DefaultMaxPathLength,
		},
		Store: starterStore{
			RouteSettings: kvgate.RouteSettings{
				StorePath:   storePath,
				ContentType: contentType,
				Bucket:      bucket,
			},
			LockTimeout: "100ms",
		},
		Log: starterLog{Level: "info"},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(initOutput, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Config written to %s.\n", initOutput)
	fmt.Println("Run 'kvgate serve' to start the server.")
	return nil
}

func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
