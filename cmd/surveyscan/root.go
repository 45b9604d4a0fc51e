// Package main provides the entry point for the surveyscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for surveyscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surveyscan",
		Short: "Survey analysis tool for mobile brand questionnaires",
		Long: `Surveyscan analyzes mobile brand survey data exported as CSV.
It computes descriptive statistics, counts existing and preferred brand
responses, renders bar charts, and writes a text report.

Analysis runs are saved to a local history database so brand preference
shifts between runs can be compared.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
