package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mark3labs/corewizard/internal/journal"
	"github.com/spf13/cobra"
)

var historyFlags struct {
	run string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show journaled submissions",
	Long: `Show the submissions recorded by previous wizard runs.

Passwords are never journaled. Use --run to show a single run.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyFlags.run, "run", "r", "", "Only show this run")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := journal.Open(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.History(ctx, historyFlags.run)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	printHistory(cmd.OutOrStdout(), entries)
	return nil
}

func printHistory(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No submissions recorded.")
		return
	}

	run := ""
	for _, e := range entries {
		if e.Run != run {
			if run != "" {
				fmt.Fprintln(w)
			}
			run = e.Run
			fmt.Fprintf(w, "Run %s\n", run)
		}

		status := "ok"
		if !e.OK {
			status = "failed: " + e.Error
		}
		fmt.Fprintf(w, "  %s  %-4s %s  %s\n",
			e.Time.Local().Format("2006-01-02 15:04:05"), e.Endpoint, formatPayload(e.Payload), status)
	}
}

// formatPayload renders a payload as sorted key=value pairs.
func formatPayload(p map[string]any) string {
	if len(p) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, p[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
