package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/S0urC10ud/audiveris/internal/report"
)

var flagLimit int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "List recorded reprocessing runs",
	Long:  "Reads the session log database and prints the most recent reprocessing runs, newest first.",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().IntVar(&flagLimit, "limit", 20, "maximum number of runs to list")
}

type runOutput struct {
	ID        int64  `json:"id"`
	Batch     string `json:"batch"`
	Mode      string `json:"mode"`
	WholePage bool   `json:"whole_page"`
	Stacks    int    `json:"stacks"`
	Swaps     int    `json:"swaps"`
	Millis    int64  `json:"duration_ms"`
	At        string `json:"at"`
}

func runReport(cmd *cobra.Command, args []string) error {
	if flagDB == "" {
		return fmt.Errorf("report requires --db")
	}
	store, err := report.Open(flagDB)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		return err
	}

	runs, err := store.Runs(flagLimit)
	if err != nil {
		return err
	}

	var out []runOutput
	for _, r := range runs {
		out = append(out, runOutput{
			ID:        r.ID,
			Batch:     r.BatchID,
			Mode:      r.Mode,
			WholePage: r.WholePage,
			Stacks:    r.Stacks,
			Swaps:     r.Swaps,
			Millis:    r.Duration.Milliseconds(),
			At:        r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if flagFormat == "json" {
		return outputJSON(out)
	}
	for _, r := range out {
		scope := fmt.Sprintf("%d stack(s)", r.Stacks)
		if r.WholePage {
			scope = "whole page"
		}
		fmt.Printf("#%d %s %-5s %-12s swaps=%d %dms %s\n",
			r.ID, r.At, r.Mode, scope, r.Swaps, r.Millis, r.Batch)
	}
	return nil
}
