package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDB     string
	flagFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "audiveris",
	Short:         "Voice identity unification and incremental rhythm reprocessing",
	Long:          "Audiveris connects the voices of a recognized score across measures, systems and pages, and reprocesses rhythm data incrementally after edits.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run: prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "session log database path (optional)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: json|text")

	rootCmd.AddCommand(voicesCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(reportCmd)
}

func validateFormat(format string) error {
	switch format {
	case "json", "text":
		return nil
	}
	return fmt.Errorf("invalid format %q (want json or text)", format)
}
