package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/mark3labs/corewizard/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀▀ █▀█ █▀█ █▀▀ █ █ █ █ ▀█ ▄▀█ █▀█ █▀▄"
	logoText2 = "█▄▄ █▄█ █▀▄ ██▄ ▀▄▀▄▀ █ █▄ █▀█ █▀▄ █▄▀"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "corewizard",
	Short: "First-run setup wizard for OctoPrint servers",
}

func renderLogo() string {
	line1 := theme.ApplyGradient(logoText1, theme.Mauve, theme.Lavender)
	line2 := theme.ApplyGradient(logoText2, theme.Mauve, theme.Lavender)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

corewizard walks a freshly installed OctoPrint server through its first-run
setup: access control, SSH, webcam, server commands and the default printer
profile. Every submission is journaled locally in an embedded NATS JetStream
store.`

	rootCmd.PersistentFlags().StringVar(&globalFlags.server, "server", "", "Server URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.apiKey, "api-key", "", "API key (overrides config)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.dataDir, "data-dir", "", "Journal data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.noJournal, "no-journal", false, "Do not journal submissions")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(historyCmd)
}
