package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/corewizard/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create corewizard configuration file",
	Long: `Create a corewizard configuration file with sensible defaults.

By default, creates a global config at ~/.config/corewizard/corewizard.yml.
Use --project to create a project-local config in the current directory.
The global --server and --api-key flags are written into the file.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'corewizard run' to get started.")
	return nil
}

// defaultConfig is the config written by setup, with the global flags
// applied.
func defaultConfig() *config.Config {
	cfg := &config.Config{
		ServerURL: config.DefaultServerURL,
		Timeout:   config.DefaultTimeout,
		DataDir:   config.DefaultDataDir,
		Journal:   true,
		LogLevel:  "info",
	}
	if globalFlags.server != "" {
		cfg.ServerURL = globalFlags.server
	}
	if globalFlags.apiKey != "" {
		cfg.APIKey = globalFlags.apiKey
	}
	if globalFlags.dataDir != "" {
		cfg.DataDir = globalFlags.dataDir
	}
	if globalFlags.noJournal {
		cfg.Journal = false
	}
	return cfg
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
