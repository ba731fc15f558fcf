package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/mark3labs/corewizard/internal/wizard"
	"github.com/spf13/cobra"
)

var applyFlags struct {
	file string
	name string
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply setup answers without the interactive UI",
	Long: `Apply a setup answers file without the interactive UI.

Every tab is validated in order exactly as in the interactive wizard. The
command fails without submitting anything when a tab cannot be left.`,
	Example: `  corewizard apply -f answers.yaml`,
	RunE:    runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyFlags.file, "file", "f", "", "Answers YAML file")
	applyCmd.Flags().StringVarP(&applyFlags.name, "name", "n", "", "Run name used in the journal (default: timestamp)")
	_ = applyCmd.MarkFlagRequired("file")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.LogFile == "" {
		logger.Default.SetOutput(os.Stderr)
	}

	answers, err := LoadAnswers(applyFlags.file)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	dialog := wizard.DialogFunc(func(title, message string) {
		fmt.Fprintf(stderr, "%s\n  %s\n", title, message)
	})

	ctx := cmd.Context()
	a, err := assemble(ctx, cfg, applyFlags.name, dialog, func() {
		logger.Debug("Step state changed")
	})
	if err != nil {
		return fmt.Errorf("failed to assemble wizard: %w", err)
	}
	defer a.Close()

	if err := a.controller.Start(ctx).Wait(); err != nil {
		logger.Warn("Loading wizard data: %v", err)
	}

	answers.fill(a.steps)
	if err := walk(a.controller); err != nil {
		return err
	}

	outcome, pending := a.controller.Finish(ctx)
	if err := a.settle(ctx, pending); err != nil {
		return fmt.Errorf("some settings were not applied: %w", err)
	}
	if list := describeProfiles(a.profiles.Cached()); list != "" {
		fmt.Fprintln(cmd.OutOrStdout(), list)
	}
	fmt.Fprintln(cmd.OutOrStdout(), describe(outcome))
	return nil
}
