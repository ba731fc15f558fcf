package main

import (
	"errors"
	"fmt"

	tuiwizard "github.com/mark3labs/corewizard/internal/tui/wizard"
	"github.com/spf13/cobra"
)

var runFlags struct {
	name string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive setup wizard",
	Long: `Run the setup wizard in the terminal.

Move between tabs with tab/shift+tab or the arrow keys. A tab with invalid
input cannot be left. Press ctrl+s to finish; the settings are submitted to
the server and you are told whether the web interface needs a reload.`,
	RunE: runWizard,
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.name, "name", "n", "", "Run name used in the journal (default: timestamp)")
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	dialog := tuiwizard.NewDialog()
	notifier := tuiwizard.NewNotifier()
	a, err := assemble(ctx, cfg, runFlags.name, dialog, notifier.Notify)
	if err != nil {
		return fmt.Errorf("failed to assemble wizard: %w", err)
	}
	defer a.Close()

	res, err := tuiwizard.Run(ctx, a.controller, dialog, notifier, a.steps)
	if errors.Is(err, tuiwizard.ErrCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Wizard cancelled, nothing was submitted.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Submitting...")
	if err := a.settle(ctx, res.Pending); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Some settings were not applied:\n%v\n", err)
	}
	if list := describeProfiles(a.profiles.Cached()); list != "" {
		fmt.Fprintln(cmd.OutOrStdout(), list)
	}
	fmt.Fprintln(cmd.OutOrStdout(), describe(res.Outcome))
	return nil
}
